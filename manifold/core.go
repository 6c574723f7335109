package manifold

import (
	"github.com/starling-physics/manifold/body"
	"github.com/starling-physics/manifold/collide"
	"github.com/starling-physics/manifold/entity"
)

// Core wires the entity store, its component columns, and the broadphase/
// narrowphase/orchestrator/events stages into the single runnable unit
// spec §2's data flow describes. It is the concrete stand-in for the
// otherwise-external entity store and world loop (SPEC_FULL §1), playing
// the role the teacher's World struct does (world.go) but built on
// entity.Store views instead of a direct []*actor.RigidBody slice.
type Core struct {
	Entities  *entity.Store
	Bodies    *entity.Column[body.Body]
	Manifolds *entity.Column[Manifold]
	Points    *entity.Column[ContactPoint]

	Broadphase   *Broadphase
	Orchestrator *Orchestrator
	Events       *Events
}

// NewCore builds an empty Core dispatching narrowphase collision through
// table.
func NewCore(table *collide.Table) *Core {
	store := entity.NewStore()
	return &Core{
		Entities:     store,
		Bodies:       entity.NewColumn[body.Body](store, "Body"),
		Manifolds:    entity.NewColumn[Manifold](store, "Manifold"),
		Points:       entity.NewColumn[ContactPoint](store, "ContactPoint"),
		Broadphase:   NewBroadphase(),
		Orchestrator: NewOrchestrator(NewNarrowphase(table)),
		Events:       NewEvents(),
	}
}

// AddBody creates an entity, attaches b as its Body component with a
// freshly computed AABB, and returns the handle.
func (c *Core) AddBody(b body.Body) entity.Handle {
	h := c.Entities.Create()
	b.AABB = b.Shape.WorldAABB(b.Pose)
	c.Bodies.Create(h, b)
	return h
}

// RemoveBody detaches h's Body component and tears down every manifold
// referencing it — including its contact points and pair-table entries —
// mirroring the teacher's World.RemoveBody cleanup of stale event/pair
// state (world.go). Callers must go through this rather than removing a
// body out from under a live manifold, which the narrowphase pipeline
// treats as a precondition violation (spec §7).
func (c *Core) RemoveBody(h entity.Handle) {
	for _, mh := range c.Manifolds.Handles() {
		m, _ := c.Manifolds.Get(mh)
		if m.BodyA != h && m.BodyB != h {
			continue
		}

		for i := 0; i < m.NumPoints; i++ {
			c.Points.Remove(m.Points[i])
			c.Entities.Destroy(m.Points[i])
		}
		c.Broadphase.Pairs.Delete(m.BodyA, m.BodyB)
		c.Manifolds.Remove(mh)
		c.Entities.Destroy(mh)
	}

	c.Bodies.Remove(h)
	c.Entities.Destroy(h)
}

// isTrigger reports whether h is a sensor-only body: one with no Material,
// the coarser-grained stand-in this module uses for the teacher's
// RigidBody.IsTrigger flag (see body.Body's doc comment).
func (c *Core) isTrigger(h entity.Handle) bool {
	b, ok := c.Bodies.Get(h)
	return ok && b.Material == nil
}

// Step runs one full maintenance pass: AABB refresh, broadphase pair-table
// update, contact-distance refresh, the narrowphase orchestrator, and
// lifecycle-event dispatch, in the order spec §2/§4.3 specify. The dirty
// log accumulated this step is available via c.Entities.Dirty until the
// caller drains it with ClearDirty.
func (c *Core) Step() {
	body.RefreshAABBs(c.Bodies)

	created, destroyed := c.Broadphase.Update(c.Entities, c.Bodies, c.Manifolds, c.Points)

	RefreshDistances(c.Bodies, c.Points, c.Manifolds)

	c.Orchestrator.Step(c.Entities, c.Bodies, c.Manifolds, c.Points)

	c.Events.Process(c.Manifolds, created, destroyed, c.isTrigger)
	c.Events.Flush()
}
