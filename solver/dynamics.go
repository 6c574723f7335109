// Package solver is a minimal stand-in for the downstream constraint solver
// the core treats as an external collaborator (spec's "out of scope:
// shape-specific closest-point routines, the constraint solver, the
// island/sleeping partitioner, and the world database"). It exists so
// manifold.Core can be exercised end to end by tests and the example
// program: it consumes exactly the views the core promises (contact points
// with warm-start impulses, manifolds, bodies) and nothing else, so a real
// solver can be substituted without touching the core.
package solver

import "github.com/go-gl/mathgl/mgl64"

// DynamicState is the per-body dynamics record the solver owns: inverse
// mass, inverse inertia tensor (world space), and velocities. Static or
// kinematic bodies carry InvMass 0 and a zero InvInertiaWorld, which
// naturally excludes them from every correction below without a separate
// body-type switch (ported from the teacher's BodyTypeStatic check in
// constraint/contact.go, expressed here as a zero inverse instead of a type
// tag).
type DynamicState struct {
	InvMass         float64
	InvInertiaWorld mgl64.Mat3
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
}

// Static returns a DynamicState for an immovable body (infinite mass).
func Static() DynamicState {
	return DynamicState{}
}

// IsStatic reports whether d carries infinite mass, the condition every
// correction below uses to exclude a body instead of switching on a body
// type tag.
func (d DynamicState) IsStatic() bool {
	return d.InvMass == 0
}

// Uniform returns a DynamicState for a dynamic body with a spherical inertia
// tensor of the given inverse mass and inverse moment, useful for tests and
// the example program where exact inertia tensors aren't the point.
func Uniform(invMass, invMoment float64) DynamicState {
	return DynamicState{
		InvMass: invMass,
		InvInertiaWorld: mgl64.Mat3{
			invMoment, 0, 0,
			0, invMoment, 0,
			0, 0, invMoment,
		},
	}
}
