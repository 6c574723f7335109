package manifold

import (
	"github.com/starling-physics/manifold/body"
	"github.com/starling-physics/manifold/entity"
)

// RefreshDistances recomputes every persisted contact point's signed
// distance from the current poses (spec §4.3), before any other
// narrowphase work in the step. A point whose owning manifold's bodies are
// no longer present is left untouched — the broadphase destroy pass (run
// first, each step) already removed it in that case.
func RefreshDistances(bodies *entity.Column[body.Body], points *entity.Column[ContactPoint], manifolds *entity.Column[Manifold]) {
	points.Each(func(_ entity.Handle, cp *ContactPoint) {
		m, ok := manifolds.Get(cp.Manifold)
		if !ok {
			return
		}

		bodyA, okA := bodies.Get(m.BodyA)
		bodyB, okB := bodies.Get(m.BodyB)
		if !okA || !okB {
			return
		}

		pivotAWorld := bodyA.Pose.ToWorld(cp.PivotA)
		pivotBWorld := bodyB.Pose.ToWorld(cp.PivotB)
		normalWorld := bodyB.Pose.Rotate(cp.NormalB)
		cp.Distance = normalWorld.Dot(pivotAWorld.Sub(pivotBWorld))
	})
}
