package collide

import (
	"github.com/starling-physics/manifold/collide/epa"
	"github.com/starling-physics/manifold/collide/gjk"
	"github.com/starling-physics/manifold/shape"
	"github.com/starling-physics/manifold/spatial"
)

// planeRoutine handles any pair where one side is a Plane, adapted from the
// teacher's collidePlane (collision.go): analytic rather than GJK/EPA, since
// a Plane's unbounded support makes the Minkowski-difference approach
// degenerate. Ported to operate on shape.Shape/spatial.Pose pairs instead of
// *actor.RigidBody, and to honor collide's threshold the same way the plane
// equation naturally does (no margin inflation needed — the signed distance
// is exact).
func planeRoutine(shapeA shape.Shape, poseA spatial.Pose, shapeB shape.Shape, poseB spatial.Pose, threshold float64) ResultSet {
	plane, planePose, other, otherPose, flip := pickPlane(shapeA, poseA, shapeB, poseB)
	if other == nil {
		return ResultSet{}
	}

	normalWorld := planePose.Rotate(plane.Normal)
	deepest := gjk.SupportWorld(other, otherPose, normalWorld.Mul(-1))
	signedDistance := normalWorld.Dot(deepest.Sub(planePose.Position)) + plane.Distance

	if signedDistance > threshold {
		return ResultSet{}
	}

	points := epa.GenerateManifold(plane, planePose, other, otherPose, normalWorld)
	rs := toLocalFrame(planePose, otherPose, normalWorld, signedDistance, points)
	if flip {
		return flipPivots(rs, planePose, normalWorld)
	}
	return rs
}

// pickPlane identifies which side of the pair is the Plane and returns the
// shapes reordered (plane, other) along with flip indicating whether the
// caller's original (A,B) order had the plane as B.
func pickPlane(shapeA shape.Shape, poseA spatial.Pose, shapeB shape.Shape, poseB spatial.Pose) (shape.Plane, spatial.Pose, shape.Shape, spatial.Pose, bool) {
	if p, ok := shapeA.(shape.Plane); ok {
		return p, poseA, shapeB, poseB, false
	}
	if p, ok := shapeB.(shape.Plane); ok {
		return p, poseB, shapeA, poseA, true
	}
	return shape.Plane{}, spatial.Pose{}, nil, spatial.Pose{}, false
}
