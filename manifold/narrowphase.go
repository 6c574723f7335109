package manifold

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/starling-physics/manifold/body"
	"github.com/starling-physics/manifold/collide"
	"github.com/starling-physics/manifold/entity"
)

// Narrowphase runs the per-manifold pipeline (spec §4.4): broad check,
// collide, merge, prune. Ported from the teacher's NarrowPhase/GJK/EPA
// channel pipeline (collision.go), replacing its always-rebuild
// constraint-constraint output with persistent per-manifold matching
// against original_source/src/edyn/collision/narrowphase.cpp's
// process_collision/prune.
type Narrowphase struct {
	Collide *collide.Table
}

// NewNarrowphase builds a narrowphase pipeline dispatching through table.
func NewNarrowphase(table *collide.Table) *Narrowphase {
	return &Narrowphase{Collide: table}
}

// pendingCommit carries the entity-mutating side effects of one manifold's
// pipeline run that must happen in the serial commit phase: new contact
// points to create, and existing ones pruned this step to destroy. In-place
// updates (merge, replace) are applied immediately inside Process via direct
// pointer mutation — they only touch data already owned by this manifold,
// which is safe even when Process runs concurrently with other manifolds'
// (spec §5). The dirty log is not partitioned that way, though: it's one
// shared slice across every worker, so the Updated annotations those
// mutations earn are recorded here instead and only flushed to the store
// from the serial commit phase.
type pendingCommit struct {
	manifold      entity.Handle
	appends       []ContactPoint
	pruned        []entity.Handle
	updatedPoints []entity.Handle
	manifoldDirty bool
}

// Process runs the pipeline for one manifold and returns the deferred
// entity-mutating work. It panics if either body referenced by the
// manifold no longer carries a Body component — a precondition violation
// per spec §7, since callers are expected to route body removal through a
// path that also tears down that body's manifolds (see Core.RemoveBody).
func (np *Narrowphase) Process(bodies *entity.Column[body.Body], manifolds *entity.Column[Manifold], points *entity.Column[ContactPoint], mh entity.Handle) pendingCommit {
	m := manifolds.MustGet(mh)

	bodyA, okA := bodies.Get(m.BodyA)
	bodyB, okB := bodies.Get(m.BodyB)
	if !okA || !okB {
		panic("manifold: narrowphase ran on a manifold with a missing body")
	}

	result := pendingCommit{manifold: mh}

	// 4.4.1 broad check — gates collide only; an existing manifold's
	// points still get pruned below even on a failing broad check, so a
	// point can age out purely from distance drift within the hysteresis
	// window (spec §8 scenario 2).
	if bodyA.AABB.Inflate(BreakOffset).Overlaps(bodyB.AABB) {
		rs := np.Collide.Collide(bodyA.Shape, bodyA.Pose, bodyB.Shape, bodyB.Pose, BreakOffset)
		np.merge(points, m, mh, bodyA.Material, bodyB.Material, rs, &result)
	}

	np.prune(bodyA, bodyB, points, m, &result)

	if len(result.pruned) > 0 {
		result.manifoldDirty = true
	}

	return result
}

// merge implements spec §4.4.3. It mutates existing contact points (match,
// replace) in place, and records appends for the commit phase to realize
// as new entities — tracking a local "virtual" point set so that several
// simultaneous new contacts (e.g. all four corners of a box landing on a
// plane in one step) get distinct, correctly-ordered slots even though
// none of them exist as entities yet.
func (np *Narrowphase) merge(points *entity.Column[ContactPoint], m *Manifold, mh entity.Handle, matA, matB *body.Material, rs collide.ResultSet, result *pendingCommit) {
	virtualNum := m.NumPoints
	var virtualPivotB [MaxContacts]mgl64.Vec3
	var virtualDistance [MaxContacts]float64
	for i := 0; i < m.NumPoints; i++ {
		cp := points.MustGet(m.Points[i])
		virtualPivotB[i] = cp.PivotB
		virtualDistance[i] = cp.Distance
	}

	for i := 0; i < rs.NumPoints; i++ {
		rp := rs.Points[i]

		if rp.NormalB == (mgl64.Vec3{}) {
			// Geometric degeneracy (spec §7): a zero-length normal is
			// discarded silently.
			continue
		}

		if idx := nearestMatch(points, m, rp); idx >= 0 {
			ph := m.Points[idx]
			cp := points.MustGet(ph)
			applyIncoming(cp, rp)
			cp.Lifetime++
			result.updatedPoints = append(result.updatedPoints, ph)
			virtualPivotB[idx] = rp.PivotB
			virtualDistance[idx] = rp.Distance
			continue
		}

		if virtualNum < MaxContacts {
			result.appends = append(result.appends, newContactPoint(mh, rp, matA, matB))
			virtualPivotB[virtualNum] = rp.PivotB
			virtualDistance[virtualNum] = rp.Distance
			virtualNum++
			continue
		}

		idx := insertIndex(virtualPivotB, virtualDistance, rp.PivotB, rp.Distance)
		if idx >= MaxContacts {
			continue // capacity saturation: discard
		}

		virtualPivotB[idx] = rp.PivotB
		virtualDistance[idx] = rp.Distance

		if idx < m.NumPoints {
			ph := m.Points[idx]
			cp := points.MustGet(ph)
			applyIncoming(cp, rp)
			cp.Lifetime = 0
			cp.Row = ConstraintRow{}
			result.updatedPoints = append(result.updatedPoints, ph)
			continue
		}

		result.appends[idx-m.NumPoints] = newContactPoint(mh, rp, matA, matB)
	}
}

func applyIncoming(cp *ContactPoint, rp collide.Point) {
	cp.PivotA = rp.PivotA
	cp.PivotB = rp.PivotB
	cp.NormalB = rp.NormalB
	cp.Distance = rp.Distance
}

// nearestMatch finds the existing point closest to rp in either pivotA or
// pivotB space, below CachingThreshold², per original_source's
// find_nearest_contact. Returns -1 if none qualifies.
func nearestMatch(points *entity.Column[ContactPoint], m *Manifold, rp collide.Point) int {
	shortest := CachingThreshold * CachingThreshold
	nearest := -1

	for i := 0; i < m.NumPoints; i++ {
		cp := points.MustGet(m.Points[i])
		dA := rp.PivotA.Sub(cp.PivotA).Dot(rp.PivotA.Sub(cp.PivotA))
		dB := rp.PivotB.Sub(cp.PivotB).Dot(rp.PivotB.Sub(cp.PivotB))

		if dA < shortest {
			shortest = dA
			nearest = i
		}
		if dB < shortest {
			shortest = dB
			nearest = i
		}
	}

	return nearest
}

// newContactPoint builds a fresh contact point from an incoming result
// point, with material-derived constants per spec §4.4.5. A nil material
// on either side (a trigger/sensor body) leaves all constants zero — the
// point is still recorded for lifecycle-event purposes but carries no
// physical response.
func newContactPoint(manifold entity.Handle, rp collide.Point, matA, matB *body.Material) ContactPoint {
	cp := ContactPoint{
		Manifold: manifold,
		PivotA:   rp.PivotA,
		PivotB:   rp.PivotB,
		NormalB:  rp.NormalB,
		Distance: rp.Distance,
	}

	if matA == nil || matB == nil {
		return cp
	}

	cp.Restitution = matA.Restitution * matB.Restitution
	cp.Friction = matA.Friction * matB.Friction

	if body.CombineRigid(*matA, *matB) {
		cp.Stiffness = body.LargeScalar
		cp.Damping = body.LargeScalar
	} else {
		cp.Stiffness = body.CombineSeries(matA.Stiffness, matB.Stiffness)
		cp.Damping = body.CombineSeries(matA.Damping, matB.Damping)
	}

	return cp
}

// prune implements spec §4.4.4, compacting m's live point array in place
// (safe: manifold i's own disjoint data) and recording destroyed handles
// for the commit phase to actually remove from the entity store.
func (np *Narrowphase) prune(bodyA, bodyB *body.Body, points *entity.Column[ContactPoint], m *Manifold, result *pendingCommit) {
	thresholdSqr := ContactBreakingThreshold * ContactBreakingThreshold

	for i := m.NumPoints - 1; i >= 0; i-- {
		ph := m.Points[i]
		cp := points.MustGet(ph)

		pA := bodyA.Pose.ToWorld(cp.PivotA)
		pB := bodyB.Pose.ToWorld(cp.PivotB)
		n := bodyB.Pose.Rotate(cp.NormalB)

		d := pA.Sub(pB)
		dn := d.Dot(n)
		dp := d.Sub(n.Mul(dn))

		if dn <= ContactBreakingThreshold && dp.Dot(dp) <= thresholdSqr {
			continue
		}

		last := m.NumPoints - 1
		if i != last {
			m.Points[i] = m.Points[last]
		}
		m.Points[last] = entity.Nil
		m.NumPoints--

		result.pruned = append(result.pruned, ph)
	}
}
