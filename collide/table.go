package collide

import (
	"github.com/starling-physics/manifold/shape"
	"github.com/starling-physics/manifold/spatial"
)

// Routine is a shape-pair collision backend, the function shape signature
// behind spec §6's collide(shapeA, poseA, shapeB, poseB, threshold).
type Routine func(shapeA shape.Shape, poseA spatial.Pose, shapeB shape.Shape, poseB spatial.Pose, threshold float64) ResultSet

// Table dispatches a shape pair to a Routine, keyed by the pair's (Kind,
// Kind), per spec §9's "double-dispatch table, not virtual calls" design
// note. Any (Kind, KindPlane) or (KindPlane, Kind) pair not explicitly
// registered falls back to planeRoutine; every other pair falls back to
// convexRoutine (GJK/EPA).
type Table struct {
	routines map[pairKey]Routine
}

type pairKey struct {
	a, b shape.Kind
}

// NewTable builds a dispatch table with the default GJK/EPA convex routine
// and the analytic plane routine wired in for every (*, KindPlane) pair.
func NewTable() *Table {
	return &Table{routines: make(map[pairKey]Routine)}
}

// Register installs an explicit routine for the (kindA, kindB) pair,
// overriding the default dispatch for both orderings. Lets a caller add,
// say, a cheaper analytic sphere-sphere routine without touching Collide's
// default path — the extensibility spec §9 calls for.
func (t *Table) Register(kindA, kindB shape.Kind, r Routine) {
	t.routines[pairKey{kindA, kindB}] = r
	t.routines[pairKey{kindB, kindA}] = r
}

// Collide dispatches shapeA/shapeB to the registered routine for their pair,
// or the built-in default if none was registered.
func (t *Table) Collide(shapeA shape.Shape, poseA spatial.Pose, shapeB shape.Shape, poseB spatial.Pose, threshold float64) ResultSet {
	key := pairKey{shapeA.Kind(), shapeB.Kind()}
	if r, ok := t.routines[key]; ok {
		return r(shapeA, poseA, shapeB, poseB, threshold)
	}

	if shapeA.Kind() == shape.KindPlane || shapeB.Kind() == shape.KindPlane {
		return planeRoutine(shapeA, poseA, shapeB, poseB, threshold)
	}
	return convexRoutine(shapeA, poseA, shapeB, poseB, threshold)
}
