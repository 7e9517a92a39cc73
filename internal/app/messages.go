package app

import "github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/annotations"

// QueueUpdatedMsg signals that the queue changed and the item list should
// be re-read.
type QueueUpdatedMsg struct{}

// ProcessDoneMsg is sent when a single-item processing run finishes.
type ProcessDoneMsg struct {
	ID  string
	Err error
}

// BatchDoneMsg is sent when a batch pass over the queue finishes.
type BatchDoneMsg struct {
	Attempted int
	Err       error
}

// ImproveDoneMsg is sent when a business-summary rewrite finishes.
type ImproveDoneMsg struct {
	ID  string
	Err error
}

// ReportSavedMsg is sent after a single-item report was written to disk.
type ReportSavedMsg struct {
	Path string
	Err  error
}

// ArchiveSavedMsg is sent after a batch archive was written to disk.
type ArchiveSavedMsg struct {
	Path string
	Err  error
}

// AnnotationsLoadedMsg carries the records fetched from the annotations
// service, or the fetch error.
type AnnotationsLoadedMsg struct {
	Records []annotations.Record
	Err     error
}

// InstructionsChangedMsg carries the instruction list after a mutation.
type InstructionsChangedMsg struct {
	List []string
	Err  error
}

// ClearTransientErrorMsg clears a transient error after a timeout.
type ClearTransientErrorMsg struct{}
