package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/starling-physics/manifold/spatial"
)

// Plane is an infinite plane: Normal·p + Distance = 0, always static.
// Ported from actor.Plane.
type Plane struct {
	Normal   mgl64.Vec3
	Distance float64
}

func (p Plane) Kind() Kind { return KindPlane }

func (p Plane) WorldAABB(pose spatial.Pose) spatial.AABB {
	const thickness = 1.0
	const infinity = 1e10

	planePoint := p.Normal.Mul(-p.Distance)
	min := planePoint.Sub(p.Normal.Mul(thickness)).Add(pose.Position)
	max := planePoint.Add(pose.Position)

	absNormal := mgl64.Vec3{math.Abs(p.Normal.X()), math.Abs(p.Normal.Y()), math.Abs(p.Normal.Z())}
	const dominantThreshold = 1.0

	if absNormal.X() < dominantThreshold {
		min[0], max[0] = -infinity, infinity
	}
	if absNormal.Y() < dominantThreshold {
		min[1], max[1] = -infinity, infinity
	}
	if absNormal.Z() < dominantThreshold {
		min[2], max[2] = -infinity, infinity
	}

	return spatial.AABB{Min: min, Max: max}
}

func (p Plane) Support(direction mgl64.Vec3) mgl64.Vec3 {
	const halfWidth, halfHeight, halfDepth = 1000.0, 0.5, 1000.0

	x, y, z := halfWidth, -halfHeight, halfDepth
	if direction.X() < 0 {
		x = -halfWidth
	}
	if direction.Y() > 0 {
		y = 0
	}
	if direction.Z() < 0 {
		z = -halfDepth
	}
	return mgl64.Vec3{x, y, z}
}

func (p Plane) ContactFeature(direction mgl64.Vec3) []mgl64.Vec3 {
	t1, t2 := TangentBasis(p.Normal)
	center := p.Normal.Mul(-p.Distance)
	const size = 1000.0
	return []mgl64.Vec3{
		center.Add(t1.Mul(-size)).Add(t2.Mul(-size)),
		center.Add(t1.Mul(-size)).Add(t2.Mul(size)),
		center.Add(t1.Mul(size)).Add(t2.Mul(size)),
		center.Add(t1.Mul(size)).Add(t2.Mul(-size)),
	}
}

// TangentBasis produces two vectors orthogonal to normal and to each other,
// used to build a local coordinate frame on a plane. Ported from the
// teacher's getTangentBasis (duplicated in actor.Plane and epa.manifold in
// the original; unified here as the one place that needs it).
func TangentBasis(normal mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	tangent1 := mgl64.Vec3{1, 0, 0}
	if math.Abs(normal.X()) > 0.9 {
		tangent1 = mgl64.Vec3{0, 1, 0}
	}
	tangent1 = tangent1.Sub(normal.Mul(tangent1.Dot(normal))).Normalize()
	tangent2 := normal.Cross(tangent1).Normalize()
	return tangent1, tangent2
}
