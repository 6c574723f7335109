package manifold

import "github.com/go-gl/mathgl/mgl64"

// insertIndex chooses where an incoming point that matched no existing
// contact should land, given a full (MaxContacts-sized) set of existing
// pivotB/distance pairs. Ported from original_source's insert_index policy
// (edyn/collision/narrowphase.cpp), with spec §9's open-question fix
// applied: the reference implementation's two insertion passes both feed
// pivotB despite a comment claiming the first tries pivotA, so this
// implementation uses pivotB as the single canonical comparison space and
// does not attempt to replicate the duplicate pass.
//
// The heuristic maximizes the spread of the resulting point set: for each
// candidate replacement k, it measures the area spanned by substituting
// the incoming pivot for existing[k] (via the cross product of two
// diagonals of the remaining quadrilateral) and picks the largest, while
// protecting the deepest existing point from replacement unless the
// incoming point is deeper still.
func insertIndex(existing [MaxContacts]mgl64.Vec3, distances [MaxContacts]float64, candidate mgl64.Vec3, candidateDistance float64) int {
	deepest := 0
	for i := 1; i < MaxContacts; i++ {
		if distances[i] < distances[deepest] {
			deepest = i
		}
	}

	protect := -1
	if candidateDistance >= distances[deepest] {
		protect = deepest
	}

	baseline := quadArea(existing)

	best := -1
	var bestArea float64
	for k := 0; k < MaxContacts; k++ {
		if k == protect {
			continue
		}
		area := replacementArea(existing, candidate, k)
		if best == -1 || area > bestArea {
			best = k
			bestArea = area
		}
	}

	// No substitution spreads the points out more than they already are —
	// e.g. a point landing near the centroid of an existing quad (spec §8
	// scenario 5) — so the incoming point is dropped rather than forced in.
	if best == -1 || bestArea <= baseline {
		return MaxContacts
	}
	return best
}

// quadArea measures the current spread of the four existing points via the
// cross product of their two diagonals, the reference spread that a
// replacement must beat to be worth making.
func quadArea(existing [MaxContacts]mgl64.Vec3) float64 {
	diag1 := existing[2].Sub(existing[0])
	diag2 := existing[3].Sub(existing[1])
	cross := diag1.Cross(diag2)
	return cross.Dot(cross)
}

// replacementArea approximates the area swept by replacing existing[k]
// with candidate, using the cross product of the quadrilateral's two
// diagonals formed by the other three points plus candidate.
func replacementArea(existing [MaxContacts]mgl64.Vec3, candidate mgl64.Vec3, k int) float64 {
	var a, b mgl64.Vec3
	switch k {
	case 0:
		a = candidate.Sub(existing[1])
		b = existing[3].Sub(existing[2])
	case 1:
		a = candidate.Sub(existing[0])
		b = existing[3].Sub(existing[2])
	case 2:
		a = candidate.Sub(existing[0])
		b = existing[3].Sub(existing[1])
	default:
		a = candidate.Sub(existing[0])
		b = existing[2].Sub(existing[1])
	}
	cross := a.Cross(b)
	return cross.Dot(cross)
}
