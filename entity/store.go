package entity

// ChangeKind identifies what happened to a component during a step.
type ChangeKind uint8

const (
	Created ChangeKind = iota
	Updated
	Destroyed
)

func (k ChangeKind) String() string {
	switch k {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// DirtyEvent is one (entity, component kind, change) annotation. Downstream
// island/solver stages drain these once per step via Store.Dirty and clear
// them with Store.ClearDirty.
type DirtyEvent struct {
	Entity    Handle
	Component string
	Kind      ChangeKind
}

// Store owns entity allocation (index + generation) and the dirty log that
// every Column in the same store contributes to. It does not itself hold
// component data — Columns do — so a Store is the minimal shared substrate
// multiple typed views can be built over.
type Store struct {
	generations []uint32
	freeList    []uint32
	dirty       []DirtyEvent
}

// NewStore creates an empty entity store.
func NewStore() *Store {
	return &Store{dirty: make([]DirtyEvent, 0, 64)}
}

// Create allocates a new entity handle. Generations start at 1, not 0: index
// 0's first allocation would otherwise produce Handle{index:0,generation:0},
// which is exactly entity.Nil — the empty-slot sentinel Manifold.Points
// relies on being distinguishable from every live handle.
func (s *Store) Create() Handle {
	if n := len(s.freeList); n > 0 {
		idx := s.freeList[n-1]
		s.freeList = s.freeList[:n-1]
		return Handle{index: idx, generation: s.generations[idx]}
	}

	idx := uint32(len(s.generations))
	s.generations = append(s.generations, 1)
	return Handle{index: idx, generation: 1}
}

// Destroy retires an entity's index for reuse and bumps its generation so
// any handle still held elsewhere is recognized as stale. It does not touch
// component columns — callers (or Column.Remove) are responsible for
// detaching a destroyed entity's components first.
func (s *Store) Destroy(h Handle) {
	if !s.Alive(h) {
		return
	}
	s.generations[h.index]++
	s.freeList = append(s.freeList, h.index)
}

// Alive reports whether h refers to an entity that has not been destroyed.
func (s *Store) Alive(h Handle) bool {
	if int(h.index) >= len(s.generations) {
		return false
	}
	return s.generations[h.index] == h.generation
}

func (s *Store) markDirty(h Handle, component string, kind ChangeKind) {
	s.dirty = append(s.dirty, DirtyEvent{Entity: h, Component: component, Kind: kind})
}

// Dirty returns the accumulated change log since the last ClearDirty.
func (s *Store) Dirty() []DirtyEvent {
	return s.dirty
}

// ClearDirty empties the change log. Called once per step after downstream
// consumers have drained Dirty.
func (s *Store) ClearDirty() {
	s.dirty = s.dirty[:0]
}
