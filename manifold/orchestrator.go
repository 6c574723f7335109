package manifold

import (
	"github.com/starling-physics/manifold/body"
	"github.com/starling-physics/manifold/entity"
	"github.com/starling-physics/manifold/pipeline"
)

// Orchestrator chooses the serial or parallel path over the current set of
// manifolds and always finishes with a serial commit phase (spec §4.5).
// Ported from the teacher's World.Step/task() (world.go, pipeline.go),
// generalized from a fixed goroutine-per-worker fan-out over body/
// constraint slices into pipeline.ParallelFor over manifold indices.
type Orchestrator struct {
	Narrowphase *Narrowphase
	// ChunkSize is the parallel_for granularity (spec §6); 0 lets
	// pipeline.ParallelFor choose a default.
	ChunkSize int
}

// NewOrchestrator builds an orchestrator around np.
func NewOrchestrator(np *Narrowphase) *Orchestrator {
	return &Orchestrator{Narrowphase: np}
}

// Step runs the narrowphase pipeline over every manifold, in parallel when
// there is more than one (spec §4.5: "may only enter parallel mode when
// num_manifolds > 1"), then commits every manifold's buffered side effects
// serially in manifold-index order.
func (o *Orchestrator) Step(store *entity.Store, bodies *entity.Column[body.Body], manifolds *entity.Column[Manifold], points *entity.Column[ContactPoint]) {
	handles := manifolds.Handles()
	entity.SortHandles(handles)

	if len(handles) == 0 {
		return
	}

	results := make([]pendingCommit, len(handles))

	if len(handles) > 1 {
		pipeline.ParallelFor(0, len(handles), o.ChunkSize, func() {}, func(i int) {
			results[i] = o.Narrowphase.Process(bodies, manifolds, points, handles[i])
		})
	} else {
		results[0] = o.Narrowphase.Process(bodies, manifolds, points, handles[0])
	}

	for _, result := range results {
		o.commit(store, manifolds, points, result)
	}
}

// commit applies one manifold's deferred entity creation/destruction, and
// flushes the Updated annotations its parallel pass earned but couldn't
// safely log itself. It never runs concurrently with another manifold's
// commit — entity creation/destruction and the dirty log are forbidden
// inside the parallel region (spec §5) precisely because the store's free
// list and dirty slice are shared, non-partitioned state.
func (o *Orchestrator) commit(store *entity.Store, manifolds *entity.Column[Manifold], points *entity.Column[ContactPoint], result pendingCommit) {
	for _, ph := range result.updatedPoints {
		points.MarkUpdated(ph)
	}
	if result.manifoldDirty {
		manifolds.MarkUpdated(result.manifold)
	}

	for _, ph := range result.pruned {
		points.Remove(ph)
		store.Destroy(ph)
	}

	if len(result.appends) == 0 {
		return
	}

	manifolds.Update(result.manifold, func(m *Manifold) {
		for _, cp := range result.appends {
			if m.NumPoints >= MaxContacts {
				break
			}
			ph := store.Create()
			points.Create(ph, cp)
			m.Points[m.NumPoints] = ph
			m.NumPoints++
		}
	})
}
