package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/starling-physics/manifold/spatial"
)

// boxCornersAABB computes the world AABB of the box circumscribing
// half-extents at pose, by transforming its 8 corners and taking their
// min/max. Shared by Box, Capsule and Cylinder, whose WorldAABB is a
// (possibly conservative, for the round shapes) bounding box of this form —
// the same pragmatic approximation the teacher accepts for Plane ("can
// obviously break for bigger planes").
func boxCornersAABB(pose spatial.Pose, halfExtents mgl64.Vec3) spatial.AABB {
	hx, hy, hz := halfExtents.X(), halfExtents.Y(), halfExtents.Z()
	corners := [8]mgl64.Vec3{
		{-hx, -hy, -hz}, {hx, -hy, -hz},
		{-hx, hy, -hz}, {hx, hy, -hz},
		{-hx, -hy, hz}, {hx, -hy, hz},
		{-hx, hy, hz}, {hx, hy, hz},
	}

	first := pose.ToWorld(corners[0])
	min, max := first, first
	for i := 1; i < len(corners); i++ {
		c := pose.ToWorld(corners[i])
		min[0] = math.Min(min[0], c[0])
		min[1] = math.Min(min[1], c[1])
		min[2] = math.Min(min[2], c[2])
		max[0] = math.Max(max[0], c[0])
		max[1] = math.Max(max[1], c[1])
		max[2] = math.Max(max[2], c[2])
	}
	return spatial.AABB{Min: min, Max: max}
}
