package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/starling-physics/manifold/spatial"
)

// Cylinder is a capped cylinder of Radius and HalfHeight, axis along local
// Y. Added per spec §9's shape list.
type Cylinder struct {
	Radius     float64
	HalfHeight float64
}

func (c Cylinder) Kind() Kind { return KindCylinder }

func (c Cylinder) WorldAABB(pose spatial.Pose) spatial.AABB {
	return boxCornersAABB(pose, mgl64.Vec3{c.Radius, c.HalfHeight, c.Radius})
}

func (c Cylinder) Support(direction mgl64.Vec3) mgl64.Vec3 {
	radial := math.Hypot(direction.X(), direction.Z())

	y := c.HalfHeight
	if direction.Y() < 0 {
		y = -c.HalfHeight
	}

	if radial < 1e-9 {
		return mgl64.Vec3{0, y, 0}
	}

	scale := c.Radius / radial
	return mgl64.Vec3{direction.X() * scale, y, direction.Z() * scale}
}

// ContactFeature returns an octagon approximating the cap rim when
// direction is predominantly axial (flat contact against the cap, e.g.
// resting on a plane), or the single support point along direction
// otherwise (edge contact when the cylinder is lying on its side).
func (c Cylinder) ContactFeature(direction mgl64.Vec3) []mgl64.Vec3 {
	const capRimPoints = 8

	axial := math.Abs(direction.Y())
	radial := math.Hypot(direction.X(), direction.Z())

	if axial > radial {
		y := c.HalfHeight
		if direction.Y() < 0 {
			y = -c.HalfHeight
		}
		rim := make([]mgl64.Vec3, capRimPoints)
		for i := 0; i < capRimPoints; i++ {
			theta := 2 * math.Pi * float64(i) / capRimPoints
			rim[i] = mgl64.Vec3{c.Radius * math.Cos(theta), y, c.Radius * math.Sin(theta)}
		}
		return rim
	}

	return []mgl64.Vec3{c.Support(direction)}
}
