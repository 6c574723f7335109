// Package epa implements the Expanding Polytope Algorithm, run after GJK
// confirms an overlap, to recover the penetration depth, separating normal,
// and contact manifold between two posed shapes. Adapted from the teacher's
// epa package (akmonengine/feather, epa/epa.go, epa/polytope.go,
// epa/manifold.go) to operate on shape.Shape+spatial.Pose pairs and to
// return world-space results for collide's local-frame conversion, rather
// than building a *constraint.ContactConstraint directly.
package epa

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/starling-physics/manifold/collide/gjk"
	"github.com/starling-physics/manifold/shape"
	"github.com/starling-physics/manifold/spatial"
)

const (
	maxIterations           = 32
	convergenceTolerance    = 0.001
	minFaceDistance         = 0.0001
	normalSnapThreshold     = 1e-8
	degeneratePenetration   = 0.01
	polytopeInitialCapacity = 8
)

// Result is the world-space outcome of a penetrating shape pair: Normal
// points from A toward B, Depth is the positive penetration amount, and
// Points are the world-space contact locations on the contact patch.
type Result struct {
	Normal mgl64.Vec3
	Depth  float64
	Points []mgl64.Vec3
}

// Run expands simplex (GJK's final tetrahedron) into the full polytope and
// returns the deepest-penetration face's manifold; a simplex of fewer than
// 4 points goes to degenerateResult instead. margin must match the one
// Overlap used to produce simplex.
func Run(shapeA shape.Shape, poseA spatial.Pose, shapeB shape.Shape, poseB spatial.Pose, margin float64, simplex *gjk.Simplex) (Result, error) {
	if simplex.Count < 4 {
		return degenerateResult(shapeA, poseA, shapeB, poseB, simplex), nil
	}

	poly := newPolytope()
	poly.buildInitial(simplex.Points)

	var closest Face
	for i := 0; i < maxIterations; i++ {
		if len(poly.faces) == 0 {
			break
		}

		idx := poly.closestFaceIndex()
		closest = poly.faces[idx]
		if closest.Distance < minFaceDistance {
			poly.dropFace(idx)
			continue
		}

		support := gjk.MinkowskiSupport(shapeA, poseA, shapeB, poseB, closest.Normal, margin)
		distance := support.Dot(closest.Normal)

		if distance-closest.Distance < convergenceTolerance {
			points := GenerateManifold(shapeA, poseA, shapeB, poseB, closest.Normal)
			return Result{Normal: closest.Normal, Depth: closest.Distance, Points: points}, nil
		}

		poly.expand(support, idx)
	}

	if closest.Normal != (mgl64.Vec3{}) {
		points := GenerateManifold(shapeA, poseA, shapeB, poseB, closest.Normal)
		return Result{Normal: closest.Normal, Depth: closest.Distance, Points: points}, nil
	}

	return Result{}, fmt.Errorf("epa: failed to converge after %d iterations", maxIterations)
}

// degenerateResult estimates a contact when GJK's simplex never reached a
// full tetrahedron — for example when GJK's first support points lie on a
// line through the origin, as for two spheres or two axis-aligned boxes
// offset along one axis, however deep the overlap. With 2 or more points,
// the shorter of the first two gives the normal and depth.
func degenerateResult(shapeA shape.Shape, poseA spatial.Pose, shapeB shape.Shape, poseB spatial.Pose, simplex *gjk.Simplex) Result {
	if simplex.Count >= 2 {
		a, b := simplex.Points[0], simplex.Points[1]
		distA, distB := a.Len(), b.Len()

		var normal mgl64.Vec3
		var depth float64
		if distA < distB {
			depth, normal = distA, a.Normalize()
		} else {
			depth, normal = distB, b.Normalize()
		}
		points := GenerateManifold(shapeA, poseA, shapeB, poseB, normal)
		return Result{Normal: normal, Depth: depth, Points: points}
	}

	normal := poseB.Position.Sub(poseA.Position)
	length := normal.Len()
	if length < normalSnapThreshold {
		normal = mgl64.Vec3{0, 1, 0}
	} else {
		normal = normal.Mul(1.0 / length)
	}
	points := GenerateManifold(shapeA, poseA, shapeB, poseB, normal)
	return Result{Normal: normal, Depth: degeneratePenetration, Points: points}
}
