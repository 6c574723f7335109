package collide

import (
	"github.com/starling-physics/manifold/collide/epa"
	"github.com/starling-physics/manifold/collide/gjk"
	"github.com/starling-physics/manifold/shape"
	"github.com/starling-physics/manifold/spatial"
)

// convexRoutine is the default collide() backend for any shape pair neither
// side of which is a Plane: GJK confirms overlap of the pair's Minkowski
// difference inflated by threshold (so near-misses within threshold are
// still reported, per spec §4.4.2), then EPA recovers the penetration depth
// and contact patch of that inflated pair. The true, uninflated separation
// is threshold minus the inflated penetration depth.
func convexRoutine(shapeA shape.Shape, poseA spatial.Pose, shapeB shape.Shape, poseB spatial.Pose, threshold float64) ResultSet {
	simplex := gjk.SimplexPool.Get().(*gjk.Simplex)
	defer gjk.SimplexPool.Put(simplex)
	simplex.Reset()

	if !gjk.Overlap(shapeA, poseA, shapeB, poseB, threshold, simplex) {
		return ResultSet{}
	}

	result, err := epa.Run(shapeA, poseA, shapeB, poseB, threshold, simplex)
	if err != nil {
		return ResultSet{}
	}

	distance := threshold - result.Depth
	return toLocalFrame(poseA, poseB, result.Normal, distance, result.Points)
}
