package spatial

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestAABBOverlaps(t *testing.T) {
	a := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}
	b := AABB{Min: mgl64.Vec3{0.5, 0.5, 0.5}, Max: mgl64.Vec3{1.5, 1.5, 1.5}}
	c := AABB{Min: mgl64.Vec3{2, 2, 2}, Max: mgl64.Vec3{3, 3, 3}}

	if !a.Overlaps(b) {
		t.Error("expected overlap")
	}
	if a.Overlaps(c) {
		t.Error("expected no overlap")
	}
	if !a.Overlaps(a) {
		t.Error("a box always overlaps itself")
	}
}

func TestAABBInflateShrink(t *testing.T) {
	a := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}

	grown := a.Inflate(0.1)
	if grown.Min.X() != -0.1 || grown.Max.X() != 1.1 {
		t.Errorf("unexpected inflate: %+v", grown)
	}

	shrunk := a.Inflate(-0.1)
	if shrunk.Min.X() != 0.1 || shrunk.Max.X() != 0.9 {
		t.Errorf("unexpected shrink: %+v", shrunk)
	}
}

func TestAABBInflateCanFlipSeparatedToOverlap(t *testing.T) {
	// Two boxes 0.01 apart do not overlap until they are grown by a
	// margin — the shape of the broadphase's hysteresis test.
	a := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}
	b := AABB{Min: mgl64.Vec3{1.01, 0, 0}, Max: mgl64.Vec3{2, 1, 1}}

	if a.Overlaps(b) {
		t.Fatal("unshrunk boxes should not overlap in this fixture")
	}

	a2 := a.Inflate(0.02)
	b2 := b.Inflate(0.02)
	if !a2.Overlaps(b2) {
		t.Error("expected inflated boxes to overlap across the 0.01 gap")
	}
}

func TestAABBContainsPoint(t *testing.T) {
	a := AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}
	if !a.ContainsPoint(mgl64.Vec3{0, 0, 0}) {
		t.Error("origin should be contained")
	}
	if a.ContainsPoint(mgl64.Vec3{2, 0, 0}) {
		t.Error("point outside box should not be contained")
	}
}

func TestAABBUnion(t *testing.T) {
	a := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}
	b := AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{0.5, 0.5, 0.5}}

	u := a.Union(b)
	want := AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}
	if u != want {
		t.Errorf("expected %+v, got %+v", want, u)
	}
}

func TestPoseToWorld(t *testing.T) {
	p := Pose{Position: mgl64.Vec3{1, 2, 3}, Orientation: mgl64.QuatIdent()}
	got := p.ToWorld(mgl64.Vec3{1, 0, 0})
	want := mgl64.Vec3{2, 2, 3}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestPoseRotateRoundTrip(t *testing.T) {
	p := Pose{Orientation: mgl64.QuatRotate(1.0, mgl64.Vec3{0, 1, 0})}
	v := mgl64.Vec3{1, 0, 0}

	rotated := p.Rotate(v)
	back := p.InverseRotate(rotated)

	const eps = 1e-9
	if back.Sub(v).Len() > eps {
		t.Errorf("expected round-trip to recover %+v, got %+v", v, back)
	}
}
