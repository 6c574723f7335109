package epa

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/starling-physics/manifold/shape"
	"github.com/starling-physics/manifold/spatial"
)

// GenerateManifold clips the incident shape's contact feature against the
// reference shape's feature (Sutherland-Hodgman) to produce 1-4 world-space
// contact points on the patch where the two shapes actually touch, rather
// than a single point at the deepest-penetration vertex.
func GenerateManifold(shapeA shape.Shape, poseA spatial.Pose, shapeB shape.Shape, poseB spatial.Pose, normal mgl64.Vec3) []mgl64.Vec3 {
	localNormalA := poseA.InverseRotate(normal)
	localNormalB := poseB.InverseRotate(normal.Mul(-1))

	featureA := transformFeature(shapeA.ContactFeature(localNormalA), poseA, shapeA)
	featureB := transformFeature(shapeB.ContactFeature(localNormalB), poseB, shapeB)

	var incident, reference []mgl64.Vec3
	if len(featureB) <= len(featureA) {
		incident, reference = featureB, featureA
	} else {
		incident, reference = featureA, featureB
	}

	if len(incident) == 1 {
		return incident
	}

	clipped := clipIncidentAgainstReference(incident, reference, normal)

	var points []mgl64.Vec3
	if len(clipped) > 0 && len(reference) >= 3 {
		edge1 := reference[1].Sub(reference[0])
		edge2 := reference[2].Sub(reference[0])
		refNormal := edge1.Cross(edge2).Normalize()
		if refNormal.Dot(normal) < 0 {
			refNormal = refNormal.Mul(-1)
		}

		offset := reference[0].Dot(refNormal)
		for _, point := range clipped {
			if point.Dot(refNormal)-offset <= 0 {
				points = append(points, point)
			}
		}
	}

	if len(points) == 0 {
		points = []mgl64.Vec3{gjkDeepest(shapeB, poseB, normal)}
	}

	if len(points) > 4 {
		points = reduceTo4Points(points, normal)
	}

	return points
}

func gjkDeepest(s shape.Shape, pose spatial.Pose, normal mgl64.Vec3) mgl64.Vec3 {
	local := s.Support(pose.InverseRotate(normal.Mul(-1)))
	return pose.ToWorld(local)
}

func clipIncidentAgainstReference(incident, reference []mgl64.Vec3, normal mgl64.Vec3) []mgl64.Vec3 {
	if isLargePlane(reference) || len(reference) < 2 {
		return incident
	}

	output := incident
	for i := 0; i < len(reference) && len(output) > 0; i++ {
		v1 := reference[i]
		v2 := reference[(i+1)%len(reference)]

		edge := v2.Sub(v1)
		clipNormal := edge.Cross(normal).Normalize()

		center := computeCenter(reference)
		if center.Sub(v1).Dot(clipNormal) < 0 {
			clipNormal = clipNormal.Mul(-1)
		}

		output = clipPolygonAgainstPlane(output, v1, clipNormal)
	}
	return output
}

func clipPolygonAgainstPlane(polygon []mgl64.Vec3, planePoint, planeNormal mgl64.Vec3) []mgl64.Vec3 {
	if len(polygon) == 0 {
		return polygon
	}

	const tolerance = 1e-6
	var output []mgl64.Vec3
	for i := 0; i < len(polygon); i++ {
		current := polygon[i]
		next := polygon[(i+1)%len(polygon)]

		currentDist := current.Sub(planePoint).Dot(planeNormal)
		nextDist := next.Sub(planePoint).Dot(planeNormal)

		if currentDist >= -tolerance {
			output = append(output, current)
			if nextDist < -tolerance {
				output = append(output, lineIntersectPlane(current, next, planePoint, planeNormal))
			}
		} else if nextDist >= -tolerance {
			output = append(output, lineIntersectPlane(current, next, planePoint, planeNormal))
		}
	}
	return output
}

func lineIntersectPlane(p1, p2, planePoint, planeNormal mgl64.Vec3) mgl64.Vec3 {
	dir := p2.Sub(p1)
	dist := p1.Sub(planePoint).Dot(planeNormal)
	denom := dir.Dot(planeNormal)
	if math.Abs(denom) < 1e-10 {
		return p1
	}
	t := math.Max(0, math.Min(1, -dist/denom))
	return p1.Add(dir.Mul(t))
}

func computeCenter(points []mgl64.Vec3) mgl64.Vec3 {
	if len(points) == 0 {
		return mgl64.Vec3{}
	}
	sum := mgl64.Vec3{}
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(points)))
}

// isLargePlane flags a 4-point feature spanning more than 100 units as the
// teacher's plane feature (fixed-size 1000-unit square), which clips as an
// infinite half-space rather than a finite polygon.
func isLargePlane(feature []mgl64.Vec3) bool {
	if len(feature) != 4 {
		return false
	}
	for i := 0; i < len(feature); i++ {
		for j := i + 1; j < len(feature); j++ {
			if feature[i].Sub(feature[j]).Len() > 100 {
				return true
			}
		}
	}
	return false
}

func transformFeature(feature []mgl64.Vec3, pose spatial.Pose, s shape.Shape) []mgl64.Vec3 {
	result := make([]mgl64.Vec3, len(feature))
	for i, p := range feature {
		result[i] = pose.ToWorld(p)
	}
	return result
}

func reduceTo4Points(points []mgl64.Vec3, normal mgl64.Vec3) []mgl64.Vec3 {
	tangent1, tangent2 := shape.TangentBasis(normal)

	minX, maxX, minY, maxY := 0, 0, 0, 0
	minXval, maxXval := math.Inf(1), math.Inf(-1)
	minYval, maxYval := math.Inf(1), math.Inf(-1)

	for i, p := range points {
		x := p.Dot(tangent1)
		y := p.Dot(tangent2)
		if x < minXval {
			minXval, minX = x, i
		}
		if x > maxXval {
			maxXval, maxX = x, i
		}
		if y < minYval {
			minYval, minY = y, i
		}
		if y > maxYval {
			maxYval, maxY = y, i
		}
	}

	seen := map[int]bool{minX: true, maxX: true, minY: true, maxY: true}
	indices := make([]int, 0, 4)
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	result := make([]mgl64.Vec3, 0, len(indices))
	for _, idx := range indices {
		result = append(result, points[idx])
	}
	return result
}
