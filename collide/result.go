// Package collide implements the shape-pair collision routines the
// narrowphase dispatches onto (spec §4.4.2/§8): given two shapes and their
// poses, produce the contact points between them expressed in each body's
// local frame so the manifold can carry them across poses that move every
// step without re-deriving them from scratch.
package collide

import "github.com/go-gl/mathgl/mgl64"

// MaxContacts bounds a single collide() call's output, mirroring the
// teacher's epa.GenerateManifold 4-point cap (box-box contact patches never
// need more than 4 points for a stable resting contact).
const MaxContacts = 4

// Point is one candidate contact between two shapes, in local frames:
// PivotA is local to body A, PivotB and NormalB are local to body B.
// Distance is signed separation — negative means the shapes interpenetrate
// by that amount, matching the manifold's persistent ContactPoint.Distance.
type Point struct {
	PivotA   mgl64.Vec3
	PivotB   mgl64.Vec3
	NormalB  mgl64.Vec3
	Distance float64
}

// ResultSet is the fixed-capacity output of a single collide() call.
type ResultSet struct {
	Points   [MaxContacts]Point
	NumPoints int
}

// Add appends p if there is room, returning whether it was stored.
func (r *ResultSet) Add(p Point) bool {
	if r.NumPoints >= MaxContacts {
		return false
	}
	r.Points[r.NumPoints] = p
	r.NumPoints++
	return true
}
