package spatial

import "github.com/go-gl/mathgl/mgl64"

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Overlaps reports whether two AABBs intersect on all three axes.
func (a AABB) Overlaps(other AABB) bool {
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// ContainsPoint reports whether point lies within the box.
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Inflate grows (margin > 0) or shrinks (margin < 0) the box by margin on
// every face. The broadphase and the narrowphase broad check grow one box
// by their hysteresis margin before testing overlap against the other, so
// the test passes while the gap between the two boxes is below the margin.
func (a AABB) Inflate(margin float64) AABB {
	v := mgl64.Vec3{margin, margin, margin}
	return AABB{Min: a.Min.Sub(v), Max: a.Max.Add(v)}
}

// Union returns the smallest AABB containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: mgl64.Vec3{min3(a.Min.X(), b.Min.X()), min3(a.Min.Y(), b.Min.Y()), min3(a.Min.Z(), b.Min.Z())},
		Max: mgl64.Vec3{max3(a.Max.X(), b.Max.X()), max3(a.Max.Y(), b.Max.Y()), max3(a.Max.Z(), b.Max.Z())},
	}
}

func min3(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max3(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
