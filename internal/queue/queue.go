// Package queue owns the processing pipeline state: an ordered set of items,
// their status transitions, and the stage sequence that moves each item from
// Pending to Completed against the remote service.
package queue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/api"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/logger"
)

var (
	// ErrNotFound reports an id with no item behind it.
	ErrNotFound = errors.New("queue: item not found")
	// ErrBusy reports an item that is already mid-processing.
	ErrBusy = errors.New("queue: item already processing")
	// ErrNotCompleted reports an improve request against an item that has
	// not finished the pipeline.
	ErrNotCompleted = errors.New("queue: item not completed")
)

// RemoteClient is the slice of the service client the queue depends on.
type RemoteClient interface {
	TranscribeUpload(ctx context.Context, audio io.Reader, fileName string) (api.UploadResult, error)
	TranscribeFromDrive(ctx context.Context, driveID string, instructions []string) (api.DriveResult, error)
	SummarizeGeneral(ctx context.Context, transcription string) (string, error)
	SummarizeBusiness(ctx context.Context, transcription string, instructions []string) (string, error)
	ImproveSummary(ctx context.Context, transcription, summary, instructionText string, instructions []string) (string, error)
}

// InstructionSource supplies the permanent instruction list. It is read
// fresh at each business-summary call, so instructions added mid-batch apply
// to the items that follow.
type InstructionSource interface {
	Current() []string
}

// Queue is the authoritative container for items. All mutations are
// read-modify-write against live state under one mutex; processing is
// serialized queue-wide so no two items are ever in flight at once.
type Queue struct {
	client RemoteClient
	instr  InstructionSource
	log    logger.Logger

	mu    sync.Mutex
	items map[string]*Item
	order []string
	seq   int

	// procMu serializes ProcessOne and ImproveBusinessSummary calls.
	procMu sync.Mutex

	updates chan struct{}
}

// New creates an empty queue.
func New(client RemoteClient, instr InstructionSource, log logger.Logger) *Queue {
	return &Queue{
		client:  client,
		instr:   instr,
		log:     log,
		items:   make(map[string]*Item),
		updates: make(chan struct{}, 1),
	}
}

// Updates signals after every state change. The channel coalesces: a reader
// that drains it and re-reads the queue always observes the latest state.
func (q *Queue) Updates() <-chan struct{} {
	return q.updates
}

func (q *Queue) notify() {
	select {
	case q.updates <- struct{}{}:
	default:
	}
}

// EnqueueLocal appends one Pending item per file path. Empty paths are
// skipped. Returns the new ids in order.
func (q *Queue) EnqueueLocal(paths ...string) []string {
	now := time.Now()

	q.mu.Lock()
	var ids []string
	for _, path := range paths {
		if path == "" {
			continue
		}
		name := filepath.Base(path)
		it := &Item{
			ID:          q.nextID(name, now),
			Source:      LocalFile{Path: path},
			DisplayName: name,
			Status:      StatusPending,
			CreatedAt:   now,
		}
		q.items[it.ID] = it
		q.order = append(q.order, it.ID)
		ids = append(ids, it.ID)
	}
	q.mu.Unlock()

	if len(ids) > 0 {
		q.notify()
		q.log.Info(context.Background(), "enqueued %d local files", len(ids))
	}
	return ids
}

// EnqueueDrive extracts Drive file identifiers from free text and appends
// one Pending item per unique identifier. Returns the new ids in order.
func (q *Queue) EnqueueDrive(text string) []string {
	driveIDs := ExtractDriveIDs(text)
	if len(driveIDs) == 0 {
		return nil
	}
	now := time.Now()

	q.mu.Lock()
	var ids []string
	for _, driveID := range driveIDs {
		it := &Item{
			ID:          q.nextID(driveID, now),
			Source:      DriveFile{ID: driveID},
			DisplayName: driveDisplayName(driveID),
			Status:      StatusPending,
			CreatedAt:   now,
		}
		q.items[it.ID] = it
		q.order = append(q.order, it.ID)
		ids = append(ids, it.ID)
	}
	q.mu.Unlock()

	q.notify()
	q.log.Info(context.Background(), "enqueued %d drive files", len(ids))
	return ids
}

// nextID builds a unique item id. Caller holds q.mu.
func (q *Queue) nextID(name string, now time.Time) string {
	q.seq++
	return fmt.Sprintf("%s-%d-%d", name, now.UnixMilli(), q.seq)
}

// Items returns copies of every item in insertion order.
func (q *Queue) Items() []Item {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Item, 0, len(q.order))
	for _, id := range q.order {
		out = append(out, *q.items[id])
	}
	return out
}

// Item returns a copy of one item.
func (q *Queue) Item(id string) (Item, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	it, ok := q.items[id]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// PendingIDs returns the ids needing work (Pending or Error) in insertion
// order. Batch runs snapshot this once at start.
func (q *Queue) PendingIDs() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	var ids []string
	for _, id := range q.order {
		switch q.items[id].Status {
		case StatusPending, StatusError:
			ids = append(ids, id)
		}
	}
	return ids
}

// Remove deletes the item unconditionally. The queue does not check whether
// the item is mid-processing; callers disable removal while a batch runs.
func (q *Queue) Remove(id string) error {
	q.mu.Lock()
	if _, ok := q.items[id]; !ok {
		q.mu.Unlock()
		return ErrNotFound
	}
	delete(q.items, id)
	for i, oid := range q.order {
		if oid == id {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
	q.mu.Unlock()

	q.notify()
	return nil
}

// update applies fn to the live item under the state lock, so concurrent
// checkpoint writes never clobber each other.
func (q *Queue) update(id string, fn func(*Item)) bool {
	q.mu.Lock()
	it, ok := q.items[id]
	if ok {
		fn(it)
	}
	q.mu.Unlock()

	if ok {
		q.notify()
	}
	return ok
}

func (q *Queue) instructions() []string {
	if q.instr == nil {
		return nil
	}
	return q.instr.Current()
}

// ProcessOne runs the pipeline for a single item. A nil return means the
// item ended Completed; any error has already been recorded on the item as
// its Error state (except ErrNotFound and ErrBusy, which leave no item to
// mark). Reprocessing a Completed item is a no-op success with no remote
// calls. Stages whose output is already on the item from an earlier attempt
// are skipped, so a retry resumes where the failure happened.
func (q *Queue) ProcessOne(ctx context.Context, id string) error {
	q.procMu.Lock()
	defer q.procMu.Unlock()

	q.mu.Lock()
	it, ok := q.items[id]
	if !ok {
		q.mu.Unlock()
		return ErrNotFound
	}
	switch it.Status {
	case StatusCompleted:
		q.mu.Unlock()
		return nil
	case StatusProcessing:
		q.mu.Unlock()
		return ErrBusy
	}
	it.Status = StatusProcessing
	it.ErrorMessage = ""
	src := it.Source
	name := it.DisplayName
	q.mu.Unlock()
	q.notify()

	q.log.Info(ctx, "processing %s (%s)", id, name)

	if err := q.runStages(ctx, id, src); err != nil {
		q.update(id, func(it *Item) {
			it.Status = StatusError
			it.ErrorMessage = err.Error()
		})
		q.log.Warn(ctx, "processing %s failed: %v", id, err)
		return err
	}

	q.log.Info(ctx, "completed %s", id)
	return nil
}

func (q *Queue) runStages(ctx context.Context, id string, src Source) error {
	switch s := src.(type) {
	case LocalFile:
		return q.processLocal(ctx, id, s)
	case DriveFile:
		return q.processDrive(ctx, id, s)
	default:
		return errors.New("item has no usable audio source")
	}
}

// processLocal walks the three stages for an uploaded file, checkpointing
// after the transcript and after the general summary so partial progress
// survives a later failure.
func (q *Queue) processLocal(ctx context.Context, id string, src LocalFile) error {
	if src.Path == "" {
		return errors.New("item has no audio file attached")
	}

	cur, ok := q.Item(id)
	if !ok {
		return ErrNotFound
	}

	transcription := cur.Transcription
	if transcription == "" {
		f, err := os.Open(src.Path)
		if err != nil {
			return fmt.Errorf("open audio: %w", err)
		}
		res, err := q.client.TranscribeUpload(ctx, f, filepath.Base(src.Path))
		f.Close()
		if err != nil {
			return err
		}
		transcription = res.Transcription
		q.update(id, func(it *Item) {
			it.Transcription = res.Transcription
			if res.FileName != "" {
				it.DisplayName = res.FileName
			}
		})
		q.log.Debug(ctx, "transcript checkpointed for %s", id)
	}

	if cur, _ = q.Item(id); cur.GeneralSummary == "" {
		summary, err := q.client.SummarizeGeneral(ctx, transcription)
		if err != nil {
			return err
		}
		q.update(id, func(it *Item) {
			it.GeneralSummary = summary
		})
		q.log.Debug(ctx, "general summary checkpointed for %s", id)
	}

	business, err := q.client.SummarizeBusiness(ctx, transcription, q.instructions())
	if err != nil {
		return err
	}
	q.update(id, func(it *Item) {
		it.BusinessSummary = business
		it.Status = StatusCompleted
	})
	return nil
}

// processDrive is a single round-trip: the service runs all stages itself.
func (q *Queue) processDrive(ctx context.Context, id string, src DriveFile) error {
	if src.ID == "" {
		return errors.New("item has no Drive file identifier")
	}

	res, err := q.client.TranscribeFromDrive(ctx, src.ID, q.instructions())
	if err != nil {
		return err
	}

	q.update(id, func(it *Item) {
		it.Transcription = res.Transcription
		it.GeneralSummary = res.GeneralSummary
		it.BusinessSummary = res.BusinessSummary
		if res.FileName != "" {
			it.DisplayName = res.FileName
		}
		it.Status = StatusCompleted
	})
	return nil
}

// ImproveBusinessSummary reworks a Completed item's business summary with a
// one-off instruction. On failure the item keeps its current summary and
// stays Completed; the error only goes back to the caller.
func (q *Queue) ImproveBusinessSummary(ctx context.Context, id, instructionText string) error {
	q.procMu.Lock()
	defer q.procMu.Unlock()

	it, ok := q.Item(id)
	if !ok {
		return ErrNotFound
	}
	if it.Status != StatusCompleted {
		return ErrNotCompleted
	}

	summary, err := q.client.ImproveSummary(ctx, it.Transcription, it.BusinessSummary, instructionText, q.instructions())
	if err != nil {
		q.log.Warn(ctx, "improve summary for %s failed: %v", id, err)
		return err
	}

	q.update(id, func(it *Item) {
		it.BusinessSummary = summary
	})
	q.log.Info(ctx, "improved business summary for %s", id)
	return nil
}
