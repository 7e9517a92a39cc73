package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/logger"
)

// ErrBatchActive reports a batch start while another batch is still running.
var ErrBatchActive = errors.New("queue: batch already running")

// Runner drives batch processing: one pass over the items that needed work
// when the pass started, strictly sequential, with a fixed pause between
// items so the service is never hit back to back.
type Runner struct {
	queue *Queue
	pace  time.Duration
	log   logger.Logger

	mu     sync.Mutex
	active bool
}

// NewRunner creates a Runner with the given inter-item pace.
func NewRunner(q *Queue, pace time.Duration, log logger.Logger) *Runner {
	return &Runner{queue: q, pace: pace, log: log}
}

// Active reports whether a batch is currently running.
func (r *Runner) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Run processes every item that was Pending or Error at call time. The
// snapshot is fixed: items enqueued mid-run wait for the next batch. Item
// failures are absorbed onto the items themselves and never stop the pass.
// Returns how many items were attempted.
func (r *Runner) Run(ctx context.Context) (int, error) {
	r.mu.Lock()
	if r.active {
		r.mu.Unlock()
		return 0, ErrBatchActive
	}
	r.active = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.active = false
		r.mu.Unlock()
	}()

	ids := r.queue.PendingIDs()
	if len(ids) == 0 {
		r.log.Info(ctx, "batch: nothing to process")
		return 0, nil
	}

	batchID := uuid.NewString()
	r.log.Info(ctx, "batch %s: %d items", batchID, len(ids))

	for i, id := range ids {
		r.log.Info(ctx, "batch %s: [%d/%d] %s", batchID, i+1, len(ids), id)
		if err := r.queue.ProcessOne(ctx, id); err != nil {
			r.log.Warn(ctx, "batch %s: item %s failed: %v", batchID, id, err)
		}

		// No pause after the last item.
		if i < len(ids)-1 {
			select {
			case <-time.After(r.pace):
			case <-ctx.Done():
				return i + 1, ctx.Err()
			}
		}
	}

	r.log.Info(ctx, "batch %s finished: %d items attempted", batchID, len(ids))
	return len(ids), nil
}
