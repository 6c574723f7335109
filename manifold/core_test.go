package manifold

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/starling-physics/manifold/body"
	"github.com/starling-physics/manifold/collide"
	"github.com/starling-physics/manifold/shape"
	"github.com/starling-physics/manifold/spatial"
)

func rigidMaterial() *body.Material {
	return &body.Material{Restitution: 0.5, Friction: 0.5, Stiffness: body.LargeScalar, Damping: body.LargeScalar}
}

func poseAt(x, y, z float64) spatial.Pose {
	return spatial.Pose{Position: mgl64.Vec3{x, y, z}, Orientation: mgl64.QuatIdent()}
}

// TestCoreTwoSpheresProduceOneContact exercises spec §8 scenario 1 end to
// end through Core.Step.
func TestCoreTwoSpheresProduceOneContact(t *testing.T) {
	core := NewCore(collide.NewTable())

	s := shape.Sphere{Radius: 0.5}
	a := core.AddBody(body.Body{Pose: poseAt(0, 0, 0), Shape: s, Material: rigidMaterial()})
	b := core.AddBody(body.Body{Pose: poseAt(0, 0, 0.9), Shape: s, Material: rigidMaterial()})

	core.Step()

	mh, ok := core.Broadphase.Pairs.Get(a, b)
	if !ok {
		t.Fatal("no manifold registered for the overlapping pair")
	}
	m, _ := core.Manifolds.Get(mh)
	if m.NumPoints != 1 {
		t.Fatalf("NumPoints = %d, want 1", m.NumPoints)
	}

	cp, _ := core.Points.Get(m.Points[0])
	if math.Abs(cp.Distance-(-0.1)) > 1e-6 {
		t.Errorf("distance = %v, want ~ -0.1", cp.Distance)
	}
	if cp.NormalB.Sub(mgl64.Vec3{0, 0, -1}).Len() > 1e-6 {
		t.Errorf("normalB = %v, want ~ (0,0,-1)", cp.NormalB)
	}
	if cp.Restitution != 0.25 {
		t.Errorf("restitution = %v, want 0.25 (0.5*0.5)", cp.Restitution)
	}
	if cp.PivotA.Sub(mgl64.Vec3{0, 0, 0.5}).Len() > 1e-6 {
		t.Errorf("pivotA = %v, want ~ (0,0,0.5)", cp.PivotA)
	}

	// A second step with the poses unchanged runs RefreshDistances against
	// the now-persisted point, rather than a freshly created one. The
	// point's distance must still read as the true separation along the
	// world normal, not collapse toward zero.
	core.Step()

	m, _ = core.Manifolds.Get(mh)
	if m.NumPoints != 1 {
		t.Fatalf("NumPoints after second step = %d, want 1", m.NumPoints)
	}
	cp, _ = core.Points.Get(m.Points[0])

	bodyA, _ := core.Bodies.Get(a)
	bodyB, _ := core.Bodies.Get(b)
	pivotAWorld := bodyA.Pose.ToWorld(cp.PivotA)
	pivotBWorld := bodyB.Pose.ToWorld(cp.PivotB)
	normalWorld := bodyB.Pose.Rotate(cp.NormalB)
	wantDistance := normalWorld.Dot(pivotAWorld.Sub(pivotBWorld))

	if math.Abs(cp.Distance-wantDistance) > 1e-6 {
		t.Errorf("distance = %v, want dot(n_world, pA_world-pB_world) = %v", cp.Distance, wantDistance)
	}
	if math.Abs(cp.Distance-(-0.1)) > 1e-6 {
		t.Errorf("distance after refresh = %v, want ~ -0.1 (unchanged poses)", cp.Distance)
	}
	if cp.PivotA.Sub(mgl64.Vec3{0, 0, 0.5}).Len() > 1e-6 {
		t.Errorf("pivotA after refresh = %v, want ~ (0,0,0.5)", cp.PivotA)
	}
}

// TestCoreBoxOnPlaneFourContacts exercises spec §8 scenario 3.
func TestCoreBoxOnPlaneFourContacts(t *testing.T) {
	core := NewCore(collide.NewTable())

	box := core.AddBody(body.Body{
		Pose:     poseAt(0, 0.5, 0),
		Shape:    shape.Box{HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}},
		Material: rigidMaterial(),
	})
	ground := core.AddBody(body.Body{
		Pose:     poseAt(0, 0, 0),
		Shape:    shape.Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: 0},
		Material: rigidMaterial(),
	})

	core.Step()

	mh, ok := core.Broadphase.Pairs.Get(box, ground)
	if !ok {
		t.Fatal("no manifold registered for the box/plane pair")
	}
	m, _ := core.Manifolds.Get(mh)
	if m.NumPoints != 4 {
		t.Fatalf("NumPoints = %d, want 4", m.NumPoints)
	}
}

// TestCoreHysteresisLifecycle drives the two-sphere pair from separated to
// overlapping to separated again, checking Enter/Stay/Exit fire exactly
// once each and the pair table empties out at the end.
func TestCoreHysteresisLifecycle(t *testing.T) {
	core := NewCore(collide.NewTable())

	s := shape.Sphere{Radius: 0.5}
	a := core.AddBody(body.Body{Pose: poseAt(0, 0, 0), Shape: s, Material: rigidMaterial()})
	b := core.AddBody(body.Body{Pose: poseAt(0, 0, 3), Shape: s, Material: rigidMaterial()})

	var enters, stays, exits int
	core.Events.Subscribe(CollisionEnter, func(Event) { enters++ })
	core.Events.Subscribe(CollisionStay, func(Event) { stays++ })
	core.Events.Subscribe(CollisionExit, func(Event) { exits++ })

	core.Step() // far apart: no pair yet
	if _, ok := core.Broadphase.Pairs.Get(a, b); ok {
		t.Fatal("pair registered while bodies are far apart")
	}

	core.Bodies.Update(b, func(bd *body.Body) {
		bd.Pose.Position = mgl64.Vec3{0, 0, 0.9}
		bd.AABB = bd.Shape.WorldAABB(bd.Pose)
	})
	core.Step() // overlapping: pair created -> Enter
	if _, ok := core.Broadphase.Pairs.Get(a, b); !ok {
		t.Fatal("pair not registered once bodies overlap")
	}

	core.Step() // unchanged: Stay

	core.Bodies.Update(b, func(bd *body.Body) {
		bd.Pose.Position = mgl64.Vec3{0, 0, 3}
		bd.AABB = bd.Shape.WorldAABB(bd.Pose)
	})
	core.Step() // far apart again: Exit

	if enters != 1 {
		t.Errorf("enters = %d, want 1", enters)
	}
	if stays != 1 {
		t.Errorf("stays = %d, want 1", stays)
	}
	if exits != 1 {
		t.Errorf("exits = %d, want 1", exits)
	}
	if _, ok := core.Broadphase.Pairs.Get(a, b); ok {
		t.Error("pair still registered after separation past SeparationOffset")
	}
}

// TestCoreTriggerBodyProducesNoMaterialConstants exercises the domain
// supplement: a body with no Material (a trigger) still gets a contact
// point recorded, but with zero material-derived constants.
func TestCoreTriggerBodyProducesNoMaterialConstants(t *testing.T) {
	core := NewCore(collide.NewTable())

	s := shape.Sphere{Radius: 0.5}
	a := core.AddBody(body.Body{Pose: poseAt(0, 0, 0), Shape: s, Material: rigidMaterial()})
	trigger := core.AddBody(body.Body{Pose: poseAt(0, 0, 0.9), Shape: s, Material: nil})

	var triggerEnters int
	core.Events.Subscribe(TriggerEnter, func(Event) { triggerEnters++ })

	core.Step()

	mh, ok := core.Broadphase.Pairs.Get(a, trigger)
	if !ok {
		t.Fatal("no manifold registered for the trigger pair")
	}
	m, _ := core.Manifolds.Get(mh)
	if m.NumPoints != 1 {
		t.Fatalf("NumPoints = %d, want 1", m.NumPoints)
	}
	cp, _ := core.Points.Get(m.Points[0])
	if cp.Stiffness != 0 || cp.Restitution != 0 {
		t.Errorf("trigger contact carries material constants: %+v", cp)
	}
	if triggerEnters != 1 {
		t.Errorf("triggerEnters = %d, want 1", triggerEnters)
	}
}
