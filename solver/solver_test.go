package solver

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/starling-physics/manifold/body"
	"github.com/starling-physics/manifold/entity"
	"github.com/starling-physics/manifold/manifold"
	"github.com/starling-physics/manifold/shape"
	"github.com/starling-physics/manifold/spatial"
)

func setup() (*entity.Store, *entity.Column[body.Body], *entity.Column[DynamicState], *entity.Column[manifold.Manifold], *entity.Column[manifold.ContactPoint]) {
	store := entity.NewStore()
	bodies := entity.NewColumn[body.Body](store, "Body")
	dynamics := entity.NewColumn[DynamicState](store, "DynamicState")
	manifolds := entity.NewColumn[manifold.Manifold](store, "Manifold")
	points := entity.NewColumn[manifold.ContactPoint](store, "ContactPoint")
	return store, bodies, dynamics, manifolds, points
}

// TestSolvePositionPushesBodiesApartOnPenetration exercises the aggregate
// XPBD position pass: a falling dynamic sphere resting 0.1 units into a
// static sphere should be pushed back along the contact normal.
func TestSolvePositionPushesBodiesApartOnPenetration(t *testing.T) {
	store, bodies, dynamics, manifolds, points := setup()

	a := store.Create()
	b := store.Create()

	bodies.Create(a, body.Body{Pose: spatial.Pose{Position: mgl64.Vec3{0, 2, 0}, Orientation: mgl64.QuatIdent()}, Shape: shape.Sphere{Radius: 0.5}, Material: &body.Material{Stiffness: body.LargeScalar, Damping: body.LargeScalar}})
	bodies.Create(b, body.Body{Pose: spatial.Pose{Position: mgl64.Vec3{0, 0, 0}, Orientation: mgl64.QuatIdent()}, Shape: shape.Sphere{Radius: 0.5}, Material: &body.Material{Stiffness: body.LargeScalar, Damping: body.LargeScalar}})

	dynamics.Create(a, Uniform(1.0, 2.5))
	dynamics.Create(b, Static())

	mh := store.Create()
	m := manifolds.Create(mh, manifold.Manifold{BodyA: a, BodyB: b})

	ph := store.Create()
	m.Points[0] = ph
	m.NumPoints = 1
	points.Create(ph, manifold.ContactPoint{
		Manifold:  mh,
		PivotA:    mgl64.Vec3{0, -0.5, 0},
		PivotB:    mgl64.Vec3{0, 0.5, 0},
		NormalB:   mgl64.Vec3{0, 1, 0},
		Distance:  -0.1,
		Stiffness: body.LargeScalar,
		Damping:   body.LargeScalar,
	})

	s := &Solver{}
	s.Step(1.0/60.0, bodies, dynamics, manifolds, points)

	bA, _ := bodies.Get(a)
	if bA.Pose.Position.Y() <= 2.0 {
		t.Errorf("bodyA.Y = %v, want pushed away from bodyB, above its starting y=2.0", bA.Pose.Position.Y())
	}
}

// TestSolveVelocityAppliesRestitution exercises the sequential-impulse
// velocity pass: a sphere approaching a static sphere head-on with
// restitution 1.0 should leave with its normal velocity fully reversed.
func TestSolveVelocityAppliesRestitution(t *testing.T) {
	store, bodies, dynamics, manifolds, points := setup()

	a := store.Create()
	b := store.Create()

	bodies.Create(a, body.Body{Pose: spatial.Pose{Position: mgl64.Vec3{0, 0, 0}, Orientation: mgl64.QuatIdent()}, Shape: shape.Sphere{Radius: 0.5}})
	bodies.Create(b, body.Body{Pose: spatial.Pose{Position: mgl64.Vec3{0, 0, 1}, Orientation: mgl64.QuatIdent()}, Shape: shape.Sphere{Radius: 0.5}})

	dynA := Uniform(1.0, 2.5)
	dynA.Velocity = mgl64.Vec3{0, 0, 1}
	dynamics.Create(a, dynA)
	dynamics.Create(b, Static())

	mh := store.Create()
	m := manifolds.Create(mh, manifold.Manifold{BodyA: a, BodyB: b})

	ph := store.Create()
	m.Points[0] = ph
	m.NumPoints = 1
	points.Create(ph, manifold.ContactPoint{
		Manifold:    mh,
		PivotA:      mgl64.Vec3{0, 0, 0.5},
		PivotB:      mgl64.Vec3{0, 0, -0.5},
		NormalB:     mgl64.Vec3{0, 0, -1},
		Distance:    0,
		Restitution: 1.0,
		Stiffness:   body.LargeScalar,
		Damping:     body.LargeScalar,
	})

	s := &Solver{}
	s.Step(1.0/60.0, bodies, dynamics, manifolds, points)

	dA, _ := dynamics.Get(a)
	if dA.Velocity.Z() >= 0 {
		t.Errorf("velocity.Z = %v, want negative (bounced back)", dA.Velocity.Z())
	}
	if math.Abs(dA.Velocity.Z()+1.0) > 1e-6 {
		t.Errorf("velocity.Z = %v, want ~ -1.0 (fully elastic)", dA.Velocity.Z())
	}

	cp, _ := points.Get(ph)
	if cp.Row.Impulse.Len() == 0 {
		t.Error("warm-start impulse was not recorded on the contact point")
	}
}

// TestSolveSkipsTriggerManifolds verifies a Stiffness-0 manifold (a trigger
// pair) produces no velocity or position change.
func TestSolveSkipsTriggerManifolds(t *testing.T) {
	store, bodies, dynamics, manifolds, points := setup()

	a := store.Create()
	b := store.Create()

	start := mgl64.Vec3{0, 0, 0}
	bodies.Create(a, body.Body{Pose: spatial.Pose{Position: start, Orientation: mgl64.QuatIdent()}, Shape: shape.Sphere{Radius: 0.5}})
	bodies.Create(b, body.Body{Pose: spatial.Pose{Position: mgl64.Vec3{0, 0, 0.9}, Orientation: mgl64.QuatIdent()}, Shape: shape.Sphere{Radius: 0.5}})

	dynA := Uniform(1.0, 2.5)
	dynamics.Create(a, dynA)
	dynamics.Create(b, Static())

	mh := store.Create()
	m := manifolds.Create(mh, manifold.Manifold{BodyA: a, BodyB: b})

	ph := store.Create()
	m.Points[0] = ph
	m.NumPoints = 1
	points.Create(ph, manifold.ContactPoint{Manifold: mh, Distance: -0.1, Stiffness: 0})

	s := &Solver{}
	s.Step(1.0/60.0, bodies, dynamics, manifolds, points)

	bA, _ := bodies.Get(a)
	if bA.Pose.Position != start {
		t.Errorf("trigger manifold moved a body: %v", bA.Pose.Position)
	}
}
