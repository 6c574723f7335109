package epa

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Face is one triangle of the expanding polytope: its three Minkowski-space
// vertices, outward normal, and the plane's distance from the origin.
type Face struct {
	Points   [3]mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// createFaceOutward builds a Face from three points, orienting Normal away
// from oppositePoint (the polytope's fourth reference vertex) so Distance is
// always the origin's distance to the outward side of the plane.
func createFaceOutward(p0, p1, p2, oppositePoint mgl64.Vec3) Face {
	edge1 := p1.Sub(p0)
	edge2 := p2.Sub(p0)
	normal := edge1.Cross(edge2)

	length := math.Sqrt(normal.Dot(normal))
	if length < 1e-8 {
		return Face{Points: [3]mgl64.Vec3{p0, p1, p2}, Normal: mgl64.Vec3{0, 1, 0}, Distance: minFaceDistance}
	}
	normal = normal.Mul(1.0 / length)

	if normal.Dot(oppositePoint.Sub(p0)) > 0 {
		normal = normal.Mul(-1)
	}

	distance := p0.Dot(normal)
	if distance < 0 {
		normal = normal.Mul(-1)
		distance = -distance
	}
	if distance < minFaceDistance {
		distance = minFaceDistance
	}

	return Face{Points: [3]mgl64.Vec3{p0, p1, p2}, Normal: snapNormalToAxis(normal), Distance: distance}
}

// snapNormalToAxis clamps near-zero components of normal to exactly zero and
// renormalizes, avoiding tangent-direction jitter on axis-aligned contacts.
func snapNormalToAxis(normal mgl64.Vec3) mgl64.Vec3 {
	const threshold = 1e-8
	x, y, z := normal.X(), normal.Y(), normal.Z()
	if math.Abs(x) < threshold {
		x = 0
	}
	if math.Abs(y) < threshold {
		y = 0
	}
	if math.Abs(z) < threshold {
		z = 0
	}
	clamped := mgl64.Vec3{x, y, z}
	length := math.Sqrt(clamped.Dot(clamped))
	if length < 1e-8 {
		return mgl64.Vec3{0, 1, 0}
	}
	return clamped.Mul(1.0 / length)
}

func compareVec3(a, b mgl64.Vec3) int {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func vec3Equal(a, b mgl64.Vec3) bool {
	return a[0] == b[0] && a[1] == b[1] && a[2] == b[2]
}
