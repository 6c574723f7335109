// Package spatial holds the low-level position/orientation/bounding-volume
// types shared by the shape and body packages, ported from the teacher's
// actor.Transform and actor.AABB (akmonengine/feather).
package spatial

import "github.com/go-gl/mathgl/mgl64"

// Pose is a rigid transform: world-space position plus orientation.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// Identity returns the pose at the origin with no rotation.
func Identity() Pose {
	return Pose{Orientation: mgl64.QuatIdent()}
}

// Rotate applies the pose's orientation to a local-space vector.
func (p Pose) Rotate(v mgl64.Vec3) mgl64.Vec3 {
	return p.Orientation.Rotate(v)
}

// InverseRotate applies the inverse of the pose's orientation, mapping a
// world-space direction into the pose's local frame.
func (p Pose) InverseRotate(v mgl64.Vec3) mgl64.Vec3 {
	return p.Orientation.Conjugate().Rotate(v)
}

// ToWorld maps a local-space point into world space.
func (p Pose) ToWorld(local mgl64.Vec3) mgl64.Vec3 {
	return p.Position.Add(p.Rotate(local))
}
