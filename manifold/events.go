package manifold

import "github.com/starling-physics/manifold/entity"

// EventType identifies a collision-lifecycle transition, ported from the
// teacher's EventType/trigger.go split between physical collisions and
// sensor-only triggers.
type EventType uint8

const (
	TriggerEnter EventType = iota
	CollisionEnter
	TriggerStay
	CollisionStay
	TriggerExit
	CollisionExit
)

func (t EventType) String() string {
	switch t {
	case TriggerEnter:
		return "TriggerEnter"
	case CollisionEnter:
		return "CollisionEnter"
	case TriggerStay:
		return "TriggerStay"
	case CollisionStay:
		return "CollisionStay"
	case TriggerExit:
		return "TriggerExit"
	case CollisionExit:
		return "CollisionExit"
	default:
		return "unknown"
	}
}

// Event is one lifecycle notification for a body pair.
type Event struct {
	Type         EventType
	BodyA, BodyB entity.Handle
}

// Listener receives events of the type it was subscribed to.
type Listener func(Event)

// Events is the collision/trigger lifecycle notifier. Unlike the teacher's
// Events (trigger.go), which diffs an active-pair set rebuilt from scratch
// each substep, this is driven directly by the broadphase's own pair-table
// transitions (spec's pair table already carries create/destroy precisely,
// per SPEC_FULL §6) — Enter/Exit come from Broadphase.Update's return
// values, Stay from every manifold that persisted across the step.
type Events struct {
	listeners map[EventType][]Listener
	buffer    []Event
}

// NewEvents returns an empty event notifier.
func NewEvents() *Events {
	return &Events{listeners: make(map[EventType][]Listener)}
}

// Subscribe registers fn to be called for every event of the given type
// during the next Flush.
func (e *Events) Subscribe(t EventType, fn Listener) {
	e.listeners[t] = append(e.listeners[t], fn)
}

// Process buffers Enter events for created pairs, Exit events for
// destroyed pairs, and Stay events for every manifold still present that
// wasn't just created. isTrigger reports whether a body is a sensor-only
// trigger; a pair is a trigger pair if either side is.
func (e *Events) Process(manifolds *entity.Column[Manifold], created, destroyed []PairEvent, isTrigger func(entity.Handle) bool) {
	justCreated := make(map[entity.Handle]bool, len(created))

	for _, pair := range created {
		justCreated[pair.Manifold] = true
		e.emit(pair.BodyA, pair.BodyB, isTrigger, TriggerEnter, CollisionEnter)
	}

	for _, mh := range manifolds.Handles() {
		if justCreated[mh] {
			continue
		}
		m, _ := manifolds.Get(mh)
		e.emit(m.BodyA, m.BodyB, isTrigger, TriggerStay, CollisionStay)
	}

	for _, pair := range destroyed {
		e.emit(pair.BodyA, pair.BodyB, isTrigger, TriggerExit, CollisionExit)
	}
}

func (e *Events) emit(bodyA, bodyB entity.Handle, isTrigger func(entity.Handle) bool, triggerType, collisionType EventType) {
	t := collisionType
	if isTrigger(bodyA) || isTrigger(bodyB) {
		t = triggerType
	}
	e.buffer = append(e.buffer, Event{Type: t, BodyA: bodyA, BodyB: bodyB})
}

// Flush dispatches every buffered event to its subscribers and clears the
// buffer, matching the teacher's once-per-step Events.flush.
func (e *Events) Flush() {
	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}
