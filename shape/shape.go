// Package shape implements the tagged-variant collision shapes consumed by
// the narrowphase's collide() dispatch table (spec §9: "dispatch by pair
// tag, not virtual calls"). Sphere, Box and Plane are ported from the
// teacher's actor package (akmonengine/feather); Capsule and Cylinder are
// added per spec §9's example shape list.
package shape

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/starling-physics/manifold/spatial"
)

// Kind tags a Shape's concrete variant, used by collide.Table to select a
// collision routine without a type switch at every call site.
type Kind int

const (
	KindSphere Kind = iota
	KindBox
	KindPlane
	KindCapsule
	KindCylinder
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindBox:
		return "box"
	case KindPlane:
		return "plane"
	case KindCapsule:
		return "capsule"
	case KindCylinder:
		return "cylinder"
	default:
		return "unknown"
	}
}

// Shape is the interface every collision shape variant implements. Support
// and ContactFeature operate in the shape's own local frame; callers
// rotate/translate by the owning body's pose. WorldAABB takes the pose
// itself and returns a world-space box.
type Shape interface {
	Kind() Kind
	// WorldAABB computes the shape's axis-aligned bounding box at pose.
	// Ported from the teacher's Shape.ComputeAABB; kept pure (returns a
	// value rather than caching into the shape) since shapes here are
	// immutable geometry shared across poses via the entity store's Body
	// component.
	WorldAABB(pose spatial.Pose) spatial.AABB
	// Support returns the extreme point of the shape along direction, in
	// local space.
	Support(direction mgl64.Vec3) mgl64.Vec3
	// ContactFeature returns the face/edge/point (in local space) most
	// aligned with direction, used by manifold generation to clip a
	// contact patch (ported from the teacher's GetContactFeature).
	ContactFeature(direction mgl64.Vec3) []mgl64.Vec3
}
