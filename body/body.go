package body

import (
	"github.com/starling-physics/manifold/shape"
	"github.com/starling-physics/manifold/spatial"
)

// Body is the per-entity collision record: pose, shape, optional material,
// world-space AABB, and sleep state. A nil Material means the body carries
// no physical response (spec §4.4.5: "Constraints are only built for pairs
// where both bodies carry material") — useful for pure sensor/trigger
// bodies, mirroring the teacher's RigidBody.IsTrigger split at a coarser
// grain (no material at all, rather than a material plus a flag).
type Body struct {
	Pose     spatial.Pose
	Shape    shape.Shape
	Material *Material
	AABB     spatial.AABB
	Sleeping bool
}

// RefreshAABB recomputes AABB from the current pose and shape (spec §4.1).
// Sleeping bodies are the caller's responsibility to skip — kept out of
// this method so it stays usable for the initial AABB computation of a
// newly-created, not-yet-sleeping body.
func (b *Body) RefreshAABB() {
	b.AABB = b.Shape.WorldAABB(b.Pose)
}
