package shape

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/starling-physics/manifold/spatial"
)

// Capsule is a sphere of Radius swept along the local Y axis over
// [-HalfHeight, +HalfHeight]. Added per spec §9's shape list
// ("sphere, box, plane, cylinder, capsule...").
type Capsule struct {
	Radius     float64
	HalfHeight float64
}

func (c Capsule) Kind() Kind { return KindCapsule }

func (c Capsule) WorldAABB(pose spatial.Pose) spatial.AABB {
	return boxCornersAABB(pose, mgl64.Vec3{c.Radius, c.HalfHeight + c.Radius, c.Radius})
}

// Support follows the standard swept-sphere construction: pick whichever
// segment endpoint direction favors, then extend by the radius along the
// support direction.
func (c Capsule) Support(direction mgl64.Vec3) mgl64.Vec3 {
	end := c.HalfHeight
	if direction.Y() < 0 {
		end = -end
	}
	core := mgl64.Vec3{0, end, 0}
	return core.Add(direction.Normalize().Mul(c.Radius))
}

func (c Capsule) ContactFeature(direction mgl64.Vec3) []mgl64.Vec3 {
	return []mgl64.Vec3{c.Support(direction)}
}
