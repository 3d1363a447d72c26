// Package backfill drives chunked generation: train once, then
// generate → transform → load until the requested order count is reached.
package backfill

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/fatih/color"

	"github.com/shoplore/ordersynth/internal/gen"
	"github.com/shoplore/ordersynth/internal/schema"
)

// DefaultChunkSize bounds how many orders are held in memory at once.
const DefaultChunkSize = 1000

type State int

const (
	StateIdle State = iota
	StateTraining
	StateGenerating
	StateLoading
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTraining:
		return "training"
	case StateGenerating:
		return "generating"
	case StateLoading:
		return "loading"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

type TrainFunc func() (*gen.Snapshot, *gen.TextModel, error)

type TransformFunc func(table string, rows []map[string]any) ([]map[string]any, error)

type LoadFunc func(ctx context.Context, tables map[string][]map[string]any) error

// Runner owns one generation run. Chunks are processed strictly
// sequentially: each chunk is discarded before the next is generated, and
// the loader's dependency ordering is never reordered. A failed chunk
// aborts the run; earlier chunks stay committed and there is no resume
// marker.
type Runner struct {
	Train     TrainFunc
	Transform TransformFunc
	Load      LoadFunc
	Rand      *rand.Rand
	ChunkSize int

	state State
}

func (r *Runner) State() State {
	return r.state
}

// Run generates and loads total orders in chunks, returning how many were
// committed. On failure the returned count covers fully loaded chunks only;
// the in-flight chunk's writes are loader-dependent.
func (r *Runner) Run(ctx context.Context, total int, window *gen.DateWindow) (int, error) {
	chunkSize := r.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	r.state = StateTraining
	snap, model, err := r.Train()
	if err != nil {
		r.state = StateFailed
		return 0, fmt.Errorf("training failed: %w", err)
	}

	g := gen.NewGenerator(snap, model, r.Rand)

	committed := 0
	for committed < total {
		n := chunkSize
		if remaining := total - committed; remaining < n {
			n = remaining
		}

		r.state = StateGenerating
		color.Cyan("⚙️  Generating batch of %d orders...", n)
		batch := g.GenerateOrders(n, window)

		tables := batch.Tables()
		cleaned := make(map[string][]map[string]any, len(tables))
		for _, name := range schema.LoadOrder() {
			rows := tables[name]
			if len(rows) == 0 {
				continue
			}
			clean, err := r.Transform(name, rows)
			if err != nil {
				r.state = StateFailed
				return committed, fmt.Errorf("transform of %s failed after %d committed orders: %w", name, committed, err)
			}
			cleaned[name] = clean
		}

		r.state = StateLoading
		if err := r.Load(ctx, cleaned); err != nil {
			r.state = StateFailed
			return committed, fmt.Errorf("load failed after %d committed orders: %w", committed, err)
		}

		committed += n
		color.Green("✅ Batch complete. Total progress: %d/%d", committed, total)
	}

	r.state = StateCompleted
	return committed, nil
}
