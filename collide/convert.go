package collide

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/starling-physics/manifold/spatial"
)

// toLocalFrame converts a set of world-space contact points plus a single
// world-space separating normal (pointing from A toward B) into the
// body-local ResultSet the manifold stores, per spec §6's
// (pivotA, pivotB, normalB, distance) contract. normalB is stored pointing
// from B back toward A — e.g. for a box resting on a ground plane normal
// (0,1,0), the box's deepest point sits below the plane's own surface
// normal as seen from the box, matching spec §8 scenario 3's expectation
// that the stored normal for that pair reads (0,1,0) when the plane is B.
//
// Each wp is B's witness on the contact patch (the incident-side point the
// collision routines clip and return). A's witness is not wp itself — it is
// wp walked back along the normal by distance, so the two anchors sit
// distance apart in world space and dot(n_world, pA_world-pB_world) reduces
// to exactly distance, as RefreshDistances recomputes it every later step.
func toLocalFrame(poseA, poseB spatial.Pose, worldNormal mgl64.Vec3, distance float64, worldPoints []mgl64.Vec3) ResultSet {
	var out ResultSet
	normalB := poseB.InverseRotate(worldNormal.Mul(-1))
	for _, wp := range worldPoints {
		pivotAWorld := wp.Sub(worldNormal.Mul(distance))
		out.Add(Point{
			PivotA:   poseA.InverseRotate(pivotAWorld.Sub(poseA.Position)),
			PivotB:   poseB.InverseRotate(wp.Sub(poseB.Position)),
			NormalB:  normalB,
			Distance: distance,
		})
	}
	return out
}

// flipPivots re-expresses rs — built by toLocalFrame with plane as A and
// other as B — with other as A and plane as B instead, for planeRoutine's
// flip case. The pivots themselves don't move: each is still local to the
// same body, only which slot (A or B) that body occupies changes. Only
// NormalB is recomputed: rs.NormalB reads (other toward plane) local to
// other's frame; the flipped result needs (plane toward other) — the same
// world direction as oldNormalWorld itself — local to the plane's frame.
// oldNormalWorld is the world normal toLocalFrame was built with, pointing
// from the plane toward other.
func flipPivots(rs ResultSet, planePose spatial.Pose, oldNormalWorld mgl64.Vec3) ResultSet {
	var out ResultSet
	normalB := planePose.InverseRotate(oldNormalWorld)
	for i := 0; i < rs.NumPoints; i++ {
		p := rs.Points[i]
		out.Add(Point{
			PivotA:   p.PivotB,
			PivotB:   p.PivotA,
			NormalB:  normalB,
			Distance: p.Distance,
		})
	}
	return out
}
