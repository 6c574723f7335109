// Package manifold implements the contact-manifold maintenance core: the
// broadphase pair table, the persistent per-pair narrowphase pipeline, and
// the serial/parallel orchestrator around it. It is the reference
// implementation of the component the rest of this module exists to
// support; body/shape/collide are its inputs, entity is its storage.
//
// Grounded on the teacher's (akmonengine/feather) SpatialGrid pair
// enumeration, trigger.go's Events, and world.go's Step loop, generalized
// from direct *actor.RigidBody slices to entity-store columns, and on
// original_source/src/edyn/collision/narrowphase.cpp for the exact
// merge/insertion/prune semantics a from-scratch rewrite would otherwise
// have to guess at.
package manifold

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/starling-physics/manifold/entity"
)

const (
	// ContactBreakingThreshold is the max separation at which a contact
	// point is still kept, and the margin collide() is asked to search
	// within for near-misses.
	ContactBreakingThreshold = 0.02
	// CachingThreshold is the max pivot drift for an incoming point to be
	// considered "the same" as a persisted one.
	CachingThreshold = ContactBreakingThreshold
	// BreakOffset is the tight hysteresis margin broadphase uses to create
	// pairs and narrowphase uses for its own broad check.
	BreakOffset = ContactBreakingThreshold
	// SeparationOffset is the loose hysteresis margin broadphase uses to
	// destroy pairs.
	SeparationOffset = 2 * ContactBreakingThreshold
	// MaxContacts is the per-manifold capacity.
	MaxContacts = 4
)

// Manifold is the persistent, fixed-capacity set of contact points for one
// body pair. BodyA/BodyB is the ordered pair the broadphase assigned it;
// Points holds up to MaxContacts contact-point handles in [0, NumPoints),
// the rest are entity.Nil.
type Manifold struct {
	BodyA, BodyB entity.Handle
	Points       [MaxContacts]entity.Handle
	NumPoints    int
}

// ConstraintRow is the warm-start accumulator a contact point carries for
// the (external) constraint solver, as a single impulse vector (the
// solver package stores its normal and friction impulse summed in world
// space). The core never interprets these values, only
// preserves them across a merge and zeroes them across a replacement
// (spec invariant 4).
type ConstraintRow struct {
	Impulse mgl64.Vec3
}

// ContactPoint is one persisted contact: anchors in each body's local
// frame, the separating normal in body B's local frame, signed distance
// along that normal, a lifetime tick counter, material-derived constants,
// and the constraint row's warm-start state.
type ContactPoint struct {
	Manifold              entity.Handle
	PivotA, PivotB        mgl64.Vec3
	NormalB               mgl64.Vec3
	Distance              float64
	Lifetime              int
	Friction, Restitution float64
	Stiffness, Damping    float64
	Row                   ConstraintRow
}
