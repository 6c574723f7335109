package epa

import "github.com/go-gl/mathgl/mgl64"

// polytope holds the expanding set of faces EPA refines toward the origin,
// plus the scratch buffers its edge/visibility bookkeeping needs.
type polytope struct {
	faces   []Face
	edges   []edgeEntry
	visible []int
	unique  []mgl64.Vec3
}

type edgeEntry struct {
	a, b  mgl64.Vec3
	count int
}

func newPolytope() *polytope {
	return &polytope{
		faces:   make([]Face, 0, polytopeInitialCapacity),
		edges:   make([]edgeEntry, 0, polytopeInitialCapacity),
		visible: make([]int, 0, polytopeInitialCapacity),
		unique:  make([]mgl64.Vec3, 0, polytopeInitialCapacity),
	}
}

// buildInitial seeds the polytope with the 4 faces of a GJK tetrahedron
// simplex, discarding any that collapse to (near) zero area.
func (p *polytope) buildInitial(simplex [4]mgl64.Vec3) {
	p0, p1, p2, p3 := simplex[0], simplex[1], simplex[2], simplex[3]
	candidates := [4]Face{
		createFaceOutward(p0, p1, p2, p3),
		createFaceOutward(p0, p2, p3, p1),
		createFaceOutward(p0, p3, p1, p2),
		createFaceOutward(p1, p3, p2, p0),
	}

	for _, f := range candidates {
		if f.Distance >= minFaceDistance {
			p.faces = append(p.faces, f)
		}
	}
	if len(p.faces) < 3 {
		p.faces = p.faces[:0]
		p.faces = append(p.faces, candidates[:]...)
	}
}

func (p *polytope) closestFaceIndex() int {
	closest := 0
	for i := 1; i < len(p.faces); i++ {
		if p.faces[i].Distance < p.faces[closest].Distance {
			closest = i
		}
	}
	return closest
}

func (p *polytope) dropFace(index int) {
	p.faces[index] = p.faces[len(p.faces)-1]
	p.faces = p.faces[:len(p.faces)-1]
}

func (p *polytope) centroid() mgl64.Vec3 {
	p.unique = p.unique[:0]
	for i := range p.faces {
		for _, pt := range p.faces[i].Points {
			if !p.containsPoint(pt) {
				p.unique = append(p.unique, pt)
			}
		}
	}
	if len(p.unique) == 0 {
		return mgl64.Vec3{}
	}
	sum := mgl64.Vec3{}
	for _, pt := range p.unique {
		sum = sum.Add(pt)
	}
	return sum.Mul(1.0 / float64(len(p.unique)))
}

func (p *polytope) containsPoint(pt mgl64.Vec3) bool {
	for _, have := range p.unique {
		if vec3Equal(have, pt) {
			return true
		}
	}
	return false
}

// expand removes every face visible from support and stitches new faces
// connecting support to the boundary edges of the hole it left behind — one
// round of EPA's polytope-expansion step.
func (p *polytope) expand(support mgl64.Vec3, closestIndex int) {
	centroid := p.centroid()

	p.visible = p.visible[:0]
	for i := range p.faces {
		if support.Sub(p.faces[i].Points[0]).Dot(p.faces[i].Normal) > 0 {
			p.visible = append(p.visible, i)
		}
	}
	if len(p.visible) >= len(p.faces) {
		p.visible = p.visible[:0]
		p.visible = append(p.visible, closestIndex)
	}

	p.collectBoundaryEdges()

	for i := len(p.visible) - 1; i >= 0; i-- {
		p.dropFace(p.visible[i])
	}

	for _, e := range p.edges {
		if e.count == 1 {
			p.faces = append(p.faces, createFaceOutward(e.a, e.b, support, centroid))
		}
	}

	if len(p.faces) == 0 {
		p.faces = append(p.faces, Face{Points: [3]mgl64.Vec3{support, support, support}, Normal: mgl64.Vec3{0, 1, 0}, Distance: minFaceDistance})
	}
}

func (p *polytope) collectBoundaryEdges() {
	p.edges = p.edges[:0]
	for _, faceIdx := range p.visible {
		face := &p.faces[faceIdx]
		triEdges := [3][2]mgl64.Vec3{
			{face.Points[0], face.Points[1]},
			{face.Points[1], face.Points[2]},
			{face.Points[2], face.Points[0]},
		}
		for _, e := range triEdges {
			a, b := e[0], e[1]
			if compareVec3(a, b) > 0 {
				a, b = b, a
			}
			if idx := p.findEdge(a, b); idx >= 0 {
				p.edges[idx].count++
			} else {
				p.edges = append(p.edges, edgeEntry{a: a, b: b, count: 1})
			}
		}
	}
}

func (p *polytope) findEdge(a, b mgl64.Vec3) int {
	for i := range p.edges {
		if vec3Equal(p.edges[i].a, a) && vec3Equal(p.edges[i].b, b) {
			return i
		}
	}
	return -1
}
