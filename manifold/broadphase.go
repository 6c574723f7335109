package manifold

import (
	"github.com/starling-physics/manifold/body"
	"github.com/starling-physics/manifold/entity"
)

// Broadphase maintains the pair table, creating and destroying manifolds
// on AABB overlap transitions (spec §4.2). Ported from the teacher's
// SpatialGrid.FindPairs pair enumeration and its IsSleeping gate
// (spatialgrid.go), replacing the grid with the spec's plain O(N²)
// pair table — the teacher's own scale (SpatialGrid sized for dozens to
// low hundreds of bodies) does not call for a spatial index here either.
type Broadphase struct {
	Pairs *PairTable
}

// NewBroadphase returns a broadphase with an empty pair table.
func NewBroadphase() *Broadphase {
	return &Broadphase{Pairs: NewPairTable()}
}

// PairEvent identifies a manifold creation or destruction for the caller's
// lifecycle-event bookkeeping (manifold.Events.Process): the manifold
// handle plus the body pair it covers, captured at the moment of the
// transition since a destroyed manifold's own Manifold component is gone
// by the time Update returns.
type PairEvent struct {
	Manifold, BodyA, BodyB entity.Handle
}

// Update brings the pair table into agreement with the current AABBs:
// destroy pass first (loose SeparationOffset margin), then create pass
// (tight BreakOffset margin). Returns the pair transitions from this call,
// for the caller's lifecycle-event bookkeeping.
func (bp *Broadphase) Update(store *entity.Store, bodies *entity.Column[body.Body], manifolds *entity.Column[Manifold], points *entity.Column[ContactPoint]) (created, destroyed []PairEvent) {
	destroyed = bp.destroyPass(store, bodies, manifolds, points)
	created = bp.createPass(store, bodies, manifolds)
	return created, destroyed
}

func (bp *Broadphase) destroyPass(store *entity.Store, bodies *entity.Column[body.Body], manifolds *entity.Column[Manifold], points *entity.Column[ContactPoint]) []PairEvent {
	var destroyed []PairEvent

	for _, mh := range manifolds.Handles() {
		m, _ := manifolds.Get(mh)

		bodyA, okA := bodies.Get(m.BodyA)
		bodyB, okB := bodies.Get(m.BodyB)

		if !okA || !okB {
			pair := PairEvent{Manifold: mh, BodyA: m.BodyA, BodyB: m.BodyB}
			bp.destroyManifold(store, manifolds, points, mh, m)
			destroyed = append(destroyed, pair)
			continue
		}

		// A manifold between two sleeping bodies is left alone: neither
		// body's AABB moves while asleep, so it cannot have newly
		// separated, and tearing it down would discard warm-start data
		// that is still valid once one of them wakes.
		if bodyA.Sleeping && bodyB.Sleeping {
			continue
		}

		// Kept while the AABB gap is below SeparationOffset.
		if bodyA.AABB.Inflate(SeparationOffset).Overlaps(bodyB.AABB) {
			continue
		}

		pair := PairEvent{Manifold: mh, BodyA: m.BodyA, BodyB: m.BodyB}
		bp.destroyManifold(store, manifolds, points, mh, m)
		destroyed = append(destroyed, pair)
	}

	return destroyed
}

func (bp *Broadphase) destroyManifold(store *entity.Store, manifolds *entity.Column[Manifold], points *entity.Column[ContactPoint], mh entity.Handle, m *Manifold) {
	for i := 0; i < m.NumPoints; i++ {
		ph := m.Points[i]
		points.Remove(ph)
		store.Destroy(ph)
	}
	bp.Pairs.Delete(m.BodyA, m.BodyB)
	manifolds.Remove(mh)
	store.Destroy(mh)
}

// createPass enumerates candidate pairs in a deterministic order (handles
// sorted, per entity.Column.Each's documented contract) so two runs over
// the same body set create manifolds in the same order, matching spec §8's
// determinism law.
func (bp *Broadphase) createPass(store *entity.Store, bodies *entity.Column[body.Body], manifolds *entity.Column[Manifold]) []PairEvent {
	handles := bodies.Handles()
	entity.SortHandles(handles)

	var created []PairEvent

	for i := 0; i < len(handles); i++ {
		e0 := handles[i]
		b0, _ := bodies.Get(e0)

		for j := i + 1; j < len(handles); j++ {
			e1 := handles[j]
			b1, _ := bodies.Get(e1)

			if b0.Sleeping && b1.Sleeping {
				continue
			}

			if _, ok := bp.Pairs.Get(e0, e1); ok {
				continue
			}

			// Created once the AABB gap is below BreakOffset.
			if !b0.AABB.Inflate(BreakOffset).Overlaps(b1.AABB) {
				continue
			}

			mh := store.Create()
			manifolds.Create(mh, Manifold{BodyA: e0, BodyB: e1})
			bp.Pairs.Set(e0, e1, mh)
			created = append(created, PairEvent{Manifold: mh, BodyA: e0, BodyB: e1})
		}
	}

	return created
}
