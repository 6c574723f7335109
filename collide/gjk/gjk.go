// Package gjk implements the Gilbert-Johnson-Keerthi algorithm over the
// shape.Shape/spatial.Pose pair instead of the teacher's *actor.RigidBody
// (akmonengine/feather, gjk/gjk.go), so it can run against any Shape
// implementation rather than a concrete body type.
package gjk

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/starling-physics/manifold/shape"
	"github.com/starling-physics/manifold/spatial"
)

// Simplex holds 1-4 points of the Minkowski difference accumulated during a
// GJK run. Reused across calls via SimplexPool to avoid per-call allocation.
type Simplex struct {
	Points [4]mgl64.Vec3
	Count  int
}

func (s *Simplex) Reset() { s.Count = 0 }

var SimplexPool = sync.Pool{New: func() interface{} { return &Simplex{} }}

// SupportWorld returns s's extreme point along a world-space direction,
// converting it into and back out of the shape's local frame around pose.
func SupportWorld(s shape.Shape, pose spatial.Pose, direction mgl64.Vec3) mgl64.Vec3 {
	local := s.Support(pose.InverseRotate(direction))
	return pose.ToWorld(local)
}

// MinkowskiSupport computes a support point of A's shape minus B's shape in
// the Minkowski difference, the single query both GJK and EPA build on.
// margin inflates the combined difference by margin along direction,
// equivalent to testing A (or B) grown by a ball of that radius — how
// collide's threshold parameter lets GJK/EPA detect near-misses, not just
// true overlaps.
func MinkowskiSupport(shapeA shape.Shape, poseA spatial.Pose, shapeB shape.Shape, poseB spatial.Pose, direction mgl64.Vec3, margin float64) mgl64.Vec3 {
	supportA := SupportWorld(shapeA, poseA, direction)
	supportB := SupportWorld(shapeB, poseB, direction.Mul(-1))
	diff := supportA.Sub(supportB)
	if margin == 0 {
		return diff
	}
	return diff.Add(direction.Normalize().Mul(margin))
}

// Overlap performs GJK between two posed shapes, filling simplex with the
// final 1-4 points. Returns true if the shapes' Minkowski difference,
// inflated by margin, contains the origin.
func Overlap(shapeA shape.Shape, poseA spatial.Pose, shapeB shape.Shape, poseB spatial.Pose, margin float64, simplex *Simplex) bool {
	direction := poseB.Position.Sub(poseA.Position)
	if direction.LenSqr() < 1e-8 {
		direction = mgl64.Vec3{1, 0, 0}
	}

	simplex.Points[0] = MinkowskiSupport(shapeA, poseA, shapeB, poseB, direction, margin)
	simplex.Count = 1

	direction = simplex.Points[0].Mul(-1)
	if direction.LenSqr() < 1e-16 {
		return true
	}

	const maxIterations = 32
	for i := 0; i < maxIterations; i++ {
		newPoint := MinkowskiSupport(shapeA, poseA, shapeB, poseB, direction, margin)
		if newPoint.Dot(direction) <= 0 {
			return false
		}

		simplex.Points[simplex.Count] = newPoint
		simplex.Count++

		if containsOrigin(simplex, &direction) {
			return true
		}
	}

	return false
}

func containsOrigin(simplex *Simplex, direction *mgl64.Vec3) bool {
	switch simplex.Count {
	case 2:
		return line(simplex, direction)
	case 3:
		return triangle(simplex, direction)
	case 4:
		return tetrahedron(simplex, direction)
	}
	return false
}

func line(simplex *Simplex, direction *mgl64.Vec3) bool {
	a := simplex.Points[1]
	b := simplex.Points[0]
	ab := b.Sub(a)
	ao := a.Mul(-1)

	if ab.LenSqr() < 1e-8 {
		if ao.LenSqr() < 1e-8 {
			return true
		}
		simplex.Points[0] = a
		simplex.Count = 1
		*direction = ao
		return false
	}

	if ab.Dot(ao) <= 0 {
		simplex.Points[0] = a
		simplex.Count = 1
		*direction = ao
		return false
	}

	abPerp := ab.Cross(ao).Cross(ab)
	if abPerp.LenSqr() < 1e-8 {
		return true
	}

	*direction = abPerp
	return false
}

func triangle(simplex *Simplex, direction *mgl64.Vec3) bool {
	a := simplex.Points[2]
	b := simplex.Points[1]
	c := simplex.Points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)

	abc := ab.Cross(ac)

	if abc.LenSqr() < 1e-10 {
		simplex.Points[0] = b
		simplex.Points[1] = a
		simplex.Count = 2
		return line(simplex, direction)
	}

	abPerp := ab.Cross(abc)
	if abPerp.Dot(ao) > 0 {
		simplex.Points[0] = b
		simplex.Points[1] = a
		simplex.Count = 2
		*direction = ab.Cross(ao).Cross(ab)
		return false
	}

	acPerp := abc.Cross(ac)
	if acPerp.Dot(ao) > 0 {
		simplex.Points[0] = c
		simplex.Points[1] = a
		simplex.Count = 2
		*direction = ac.Cross(ao).Cross(ac)
		return false
	}

	if abc.Dot(ao) > 0 {
		*direction = abc
	} else {
		simplex.Points[0] = a
		simplex.Points[1] = c
		simplex.Points[2] = b
		simplex.Count = 3
		*direction = abc.Mul(-1)
	}

	return false
}

func tetrahedron(simplex *Simplex, direction *mgl64.Vec3) bool {
	a := simplex.Points[3]
	b := simplex.Points[2]
	c := simplex.Points[1]
	d := simplex.Points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	ao := a.Mul(-1)

	abc := ab.Cross(ac)
	if abc.Dot(ad) > 0 {
		abc = abc.Mul(-1)
	}

	acd := ac.Cross(ad)
	if acd.Dot(ab) > 0 {
		acd = acd.Mul(-1)
	}

	adb := ad.Cross(ab)
	if adb.Dot(ac) > 0 {
		adb = adb.Mul(-1)
	}

	if abc.LenSqr() < 1e-10 || acd.LenSqr() < 1e-10 || adb.LenSqr() < 1e-10 {
		simplex.Points[0] = c
		simplex.Points[1] = b
		simplex.Points[2] = a
		simplex.Count = 3
		return triangle(simplex, direction)
	}

	if abc.Dot(ao) > 0 {
		simplex.Points[0] = c
		simplex.Points[1] = b
		simplex.Points[2] = a
		simplex.Count = 3
		return triangle(simplex, direction)
	}

	if acd.Dot(ao) > 0 {
		simplex.Points[0] = d
		simplex.Points[1] = c
		simplex.Points[2] = a
		simplex.Count = 3
		return triangle(simplex, direction)
	}

	if adb.Dot(ao) > 0 {
		simplex.Points[0] = b
		simplex.Points[1] = d
		simplex.Points[2] = a
		simplex.Count = 3
		return triangle(simplex, direction)
	}

	return true
}
