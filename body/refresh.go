package body

import "github.com/starling-physics/manifold/entity"

// RefreshAABBs recomputes the world-space AABB of every awake body with a
// shape, per spec §4.1. Sleeping bodies are skipped — their AABB remains
// valid from the last step they were active, matching the teacher's
// RigidBody.Sleep, which freezes ComputeAABB's output at the moment of
// sleeping rather than recomputing it every subsequent (unmoving) step.
func RefreshAABBs(bodies *entity.Column[Body]) {
	bodies.Each(func(_ entity.Handle, b *Body) {
		if b.Sleeping || b.Shape == nil {
			return
		}
		b.AABB = b.Shape.WorldAABB(b.Pose)
	})
}
