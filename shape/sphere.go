package shape

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/starling-physics/manifold/spatial"
)

// Sphere is a spherical collision shape, ported from actor.Sphere.
type Sphere struct {
	Radius float64
}

func (s Sphere) Kind() Kind { return KindSphere }

func (s Sphere) WorldAABB(pose spatial.Pose) spatial.AABB {
	r := mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	return spatial.AABB{Min: pose.Position.Sub(r), Max: pose.Position.Add(r)}
}

func (s Sphere) Support(direction mgl64.Vec3) mgl64.Vec3 {
	return direction.Normalize().Mul(s.Radius)
}

func (s Sphere) ContactFeature(direction mgl64.Vec3) []mgl64.Vec3 {
	return []mgl64.Vec3{s.Support(direction)}
}
