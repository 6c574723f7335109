package collide

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/starling-physics/manifold/shape"
	"github.com/starling-physics/manifold/spatial"
)

func at(x, y, z float64) spatial.Pose {
	return spatial.Pose{Position: mgl64.Vec3{x, y, z}, Orientation: mgl64.QuatIdent()}
}

func near(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() < tol
}

// TestTwoOverlappingSpheres exercises spec §8 scenario 1: unit-radius-0.5
// spheres at (0,0,0) and (0,0,0.9) should produce one contact at
// distance ≈ -0.1 with normalB ≈ (0,0,-1).
func TestTwoOverlappingSpheres(t *testing.T) {
	table := NewTable()
	a := shape.Sphere{Radius: 0.5}
	b := shape.Sphere{Radius: 0.5}

	result := table.Collide(a, at(0, 0, 0), b, at(0, 0, 0.9), 0.02)
	if result.NumPoints != 1 {
		t.Fatalf("expected 1 contact point, got %d", result.NumPoints)
	}

	p := result.Points[0]
	if math.Abs(p.Distance-(-0.1)) > 1e-6 {
		t.Errorf("expected distance ~ -0.1, got %v", p.Distance)
	}
	if !near(p.NormalB, mgl64.Vec3{0, 0, -1}, 1e-6) {
		t.Errorf("expected normalB ~ (0,0,-1), got %v", p.NormalB)
	}
	if !near(p.PivotA, mgl64.Vec3{0, 0, 0.5}, 1e-6) {
		t.Errorf("expected pivotA ~ (0,0,0.5), got %v", p.PivotA)
	}
	if !near(p.PivotB, mgl64.Vec3{0, 0, -0.5}, 1e-6) {
		t.Errorf("expected pivotB ~ (0,0,-0.5), got %v", p.PivotB)
	}
}

func TestSeparatedSpheresBeyondThresholdProduceNoContact(t *testing.T) {
	table := NewTable()
	a := shape.Sphere{Radius: 0.5}
	b := shape.Sphere{Radius: 0.5}

	result := table.Collide(a, at(0, 0, 0), b, at(0, 0, 2), 0.02)
	if result.NumPoints != 0 {
		t.Fatalf("expected no contacts for far-apart spheres, got %d", result.NumPoints)
	}
}

func TestNearMissWithinThresholdProducesContact(t *testing.T) {
	table := NewTable()
	a := shape.Sphere{Radius: 0.5}
	b := shape.Sphere{Radius: 0.5}

	// gap of 0.015 < CONTACT_BREAKING_THRESHOLD (0.02)
	result := table.Collide(a, at(0, 0, 0), b, at(0, 0, 1.015), 0.02)
	if result.NumPoints != 1 {
		t.Fatalf("expected a predictive contact within threshold, got %d points", result.NumPoints)
	}
	if result.Points[0].Distance <= 0 {
		t.Errorf("expected a small positive separation, got %v", result.Points[0].Distance)
	}
}

// TestBoxRestingOnPlane exercises spec §8 scenario 3: a unit box sitting on
// a ground plane should produce 4 contacts, each at distance ~ 0, with the
// box as A and the plane as B (so normalB reads up).
func TestBoxRestingOnPlane(t *testing.T) {
	table := NewTable()
	box := shape.Box{HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}}
	ground := shape.Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: 0}

	result := table.Collide(box, at(0, 0.5, 0), ground, at(0, 0, 0), 0.02)
	if result.NumPoints != 4 {
		t.Fatalf("expected 4 contacts for a box resting flush on a plane, got %d", result.NumPoints)
	}
	for i := 0; i < result.NumPoints; i++ {
		p := result.Points[i]
		if math.Abs(p.Distance) > 1e-6 {
			t.Errorf("contact %d: expected distance ~ 0, got %v", i, p.Distance)
		}
		if !near(p.NormalB, mgl64.Vec3{0, 1, 0}, 1e-6) {
			t.Errorf("contact %d: expected normalB ~ (0,1,0), got %v", i, p.NormalB)
		}
	}
}

func TestPlaneAsShapeAFlipsNormalConsistently(t *testing.T) {
	table := NewTable()
	box := shape.Box{HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}}
	ground := shape.Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: 0}

	result := table.Collide(ground, at(0, 0, 0), box, at(0, 0.5, 0), 0.02)
	if result.NumPoints != 4 {
		t.Fatalf("expected 4 contacts, got %d", result.NumPoints)
	}
	for i := 0; i < result.NumPoints; i++ {
		p := result.Points[i]
		if !near(p.NormalB, mgl64.Vec3{0, -1, 0}, 1e-6) {
			t.Errorf("contact %d: expected normalB ~ (0,-1,0) with plane as A, got %v", i, p.NormalB)
		}
	}
}

func TestRegisterOverridesDefaultRoutine(t *testing.T) {
	table := NewTable()
	called := false
	table.Register(shape.KindSphere, shape.KindSphere, func(shapeA shape.Shape, poseA spatial.Pose, shapeB shape.Shape, poseB spatial.Pose, threshold float64) ResultSet {
		called = true
		var rs ResultSet
		rs.Add(Point{Distance: -1})
		return rs
	})

	a := shape.Sphere{Radius: 0.5}
	b := shape.Sphere{Radius: 0.5}
	result := table.Collide(a, at(0, 0, 0), b, at(0, 0, 0.5), 0.02)

	if !called {
		t.Fatal("expected the registered override to run instead of the default")
	}
	if result.NumPoints != 1 || result.Points[0].Distance != -1 {
		t.Errorf("expected the override's result to be returned unchanged, got %+v", result)
	}
}
