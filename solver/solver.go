package solver

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/starling-physics/manifold/body"
	"github.com/starling-physics/manifold/entity"
	"github.com/starling-physics/manifold/manifold"
)

// Solver resolves manifold contact points into pose and velocity changes.
// Ported from the teacher's ContactConstraint.SolvePosition/SolveVelocity
// (constraint/contact.go): a single aggregate XPBD position correction per
// manifold followed by a per-point sequential-impulse velocity pass, with
// material constants read straight from the already-combined contact point
// (spec §4.4.5) instead of recombining per-body materials every step.
type Solver struct{}

// Step runs one solve pass over every manifold with live points. Trigger
// pairs (Stiffness == 0, spec's "constraints are only built for pairs where
// both bodies carry material") are skipped entirely: their contact points
// exist only for lifecycle events, never for physical response.
func (s *Solver) Step(dt float64, bodies *entity.Column[body.Body], dynamics *entity.Column[DynamicState], manifolds *entity.Column[manifold.Manifold], points *entity.Column[manifold.ContactPoint]) {
	handles := manifolds.Handles()
	entity.SortHandles(handles)

	for _, mh := range handles {
		m := manifolds.MustGet(mh)
		if m.NumPoints == 0 {
			continue
		}

		first, _ := points.Get(m.Points[0])
		if first == nil || first.Stiffness == 0 {
			continue
		}

		bodyA := bodies.MustGet(m.BodyA)
		bodyB := bodies.MustGet(m.BodyB)
		dynA := dynamics.MustGet(m.BodyA)
		dynB := dynamics.MustGet(m.BodyB)

		s.solvePosition(dt, bodyA, bodyB, dynA, dynB, points, m)
		s.solveVelocity(bodyA, bodyB, dynA, dynB, points, m)
	}
}

// solvePosition applies one XPBD correction per manifold, aggregating every
// live point's penetration into a single linear push so opposite-corner
// contacts (e.g. a box flush on a plane) don't fight each other across
// sequential per-point corrections. The points' angular terms enter only
// the effective mass; orientations are not changed.
func (s *Solver) solvePosition(dt float64, bodyA, bodyB *body.Body, dynA, dynB *DynamicState, points *entity.Column[manifold.ContactPoint], m *manifold.Manifold) {
	normal := mgl64.Vec3{}
	var totalWeight, totalPenetration float64

	for i := 0; i < m.NumPoints; i++ {
		cp := points.MustGet(m.Points[i])
		penetration := -cp.Distance
		if penetration <= 0 {
			continue
		}
		// NormalB points from B toward A; n points from A toward B.
		n := bodyB.Pose.Rotate(cp.NormalB).Mul(-1)
		if normal == (mgl64.Vec3{}) {
			normal = n
		}

		pA := bodyB.Pose.ToWorld(cp.PivotB).Sub(bodyA.Pose.Position)
		pB := bodyB.Pose.ToWorld(cp.PivotB).Sub(bodyB.Pose.Position)

		rAxn := pA.Cross(n)
		rBxn := pB.Cross(n)
		angularA := dynA.InvInertiaWorld.Mul3x1(rAxn).Dot(rAxn)
		angularB := dynB.InvInertiaWorld.Mul3x1(rBxn).Dot(rBxn)

		totalWeight += dynA.InvMass + dynB.InvMass + angularA + angularB
		totalPenetration += penetration
	}

	if totalWeight <= 1e-8 || totalPenetration <= 0 {
		return
	}

	compliance := complianceOf(m, points)
	alphaTilde := compliance / (dt * dt)
	lambda := totalPenetration / (totalWeight + alphaTilde)
	impulse := normal.Mul(lambda)

	if !dynA.IsStatic() {
		bodyA.Pose.Position = bodyA.Pose.Position.Sub(impulse.Mul(dynA.InvMass))
	}
	if !dynB.IsStatic() {
		bodyB.Pose.Position = bodyB.Pose.Position.Add(impulse.Mul(dynB.InvMass))
	}
}

func complianceOf(m *manifold.Manifold, points *entity.Column[manifold.ContactPoint]) float64 {
	cp := points.MustGet(m.Points[0])
	if cp.Stiffness <= 0 {
		return 0
	}
	return 1.0 / cp.Stiffness
}

// solveVelocity runs a single sequential-impulse pass per point, seeding
// each from its warm-start impulse (spec's "the solver reuses the impulse
// on the slightly moved contact") and writing the updated accumulator back
// to cp.Row.Impulse for the next step.
func (s *Solver) solveVelocity(bodyA, bodyB *body.Body, dynA, dynB *DynamicState, points *entity.Column[manifold.ContactPoint], m *manifold.Manifold) {
	for i := 0; i < m.NumPoints; i++ {
		ph := m.Points[i]
		cp := points.MustGet(ph)

		// NormalB points from B toward A; n points from A toward B.
		n := bodyB.Pose.Rotate(cp.NormalB).Mul(-1)
		rA := bodyB.Pose.ToWorld(cp.PivotB).Sub(bodyA.Pose.Position)
		rB := bodyB.Pose.ToWorld(cp.PivotB).Sub(bodyB.Pose.Position)

		vA := dynA.Velocity.Add(dynA.AngularVelocity.Cross(rA))
		vB := dynB.Velocity.Add(dynB.AngularVelocity.Cross(rB))
		relativeVel := vB.Sub(vA)
		normalVel := relativeVel.Dot(n)

		rAxn := rA.Cross(n)
		rBxn := rB.Cross(n)
		angularA := dynA.InvInertiaWorld.Mul3x1(rAxn).Dot(rAxn)
		angularB := dynB.InvInertiaWorld.Mul3x1(rBxn).Dot(rBxn)
		effMassNormal := dynA.InvMass + dynB.InvMass + angularA + angularB
		if effMassNormal < 1e-10 {
			continue
		}

		prevImpulse := cp.Row.Impulse.Dot(n)
		targetVel := -cp.Restitution * normalVel
		deltaLambda := (targetVel - normalVel) / effMassNormal
		newImpulse := math.Max(0, prevImpulse+deltaLambda)
		appliedImpulse := n.Mul(newImpulse - prevImpulse)

		applyImpulse(dynA, dynB, rA, rB, appliedImpulse.Mul(-1), appliedImpulse)

		tangentVel := relativeVel.Sub(n.Mul(normalVel))
		tangentSpeed := tangentVel.Len()
		frictionImpulse := mgl64.Vec3{}
		if tangentSpeed > 1e-6 && newImpulse > 0 {
			tangentDir := tangentVel.Mul(1.0 / tangentSpeed)
			rAxt := rA.Cross(tangentDir)
			rBxt := rB.Cross(tangentDir)
			effMassTangent := dynA.InvMass + dynB.InvMass +
				dynA.InvInertiaWorld.Mul3x1(rAxt).Dot(rAxt) +
				dynB.InvInertiaWorld.Mul3x1(rBxt).Dot(rBxt)
			if effMassTangent >= 1e-10 {
				lambdaTangent := -tangentSpeed / effMassTangent
				maxFriction := cp.Friction * newImpulse
				mag := math.Min(math.Abs(lambdaTangent), maxFriction)
				frictionImpulse = tangentDir.Mul(math.Copysign(mag, lambdaTangent))
				applyImpulse(dynA, dynB, rA, rB, frictionImpulse.Mul(-1), frictionImpulse)
			}
		}

		points.Update(ph, func(cp *manifold.ContactPoint) {
			cp.Row.Impulse = n.Mul(newImpulse).Add(frictionImpulse)
		})
	}
}

func applyImpulse(dynA, dynB *DynamicState, rA, rB, impulseOnA, impulseOnB mgl64.Vec3) {
	dynA.Velocity = dynA.Velocity.Add(impulseOnA.Mul(dynA.InvMass))
	dynB.Velocity = dynB.Velocity.Add(impulseOnB.Mul(dynB.InvMass))
	dynA.AngularVelocity = dynA.AngularVelocity.Add(dynA.InvInertiaWorld.Mul3x1(rA.Cross(impulseOnA)))
	dynB.AngularVelocity = dynB.AngularVelocity.Add(dynB.InvInertiaWorld.Mul3x1(rB.Cross(impulseOnB)))
}
