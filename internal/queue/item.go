package queue

import "time"

// Status is the processing state of a queue item.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Source identifies where an item's audio comes from. The two
// implementations are LocalFile and DriveFile; an item carries exactly one.
type Source interface {
	isSource()
}

// LocalFile is an audio file on disk, uploaded to the service for
// transcription.
type LocalFile struct {
	Path string
}

func (LocalFile) isSource() {}

// DriveFile references a Google Drive file by identifier; the service reads
// it directly and runs the whole pipeline in one call.
type DriveFile struct {
	ID string
}

func (DriveFile) isSource() {}

// Item is one audio source tracked through the transcribe/summarize
// pipeline. Text fields fill in incrementally as stages complete and are
// never rolled back; an error keeps whatever had been captured.
type Item struct {
	ID              string
	Source          Source
	DisplayName     string
	Status          Status
	Transcription   string
	GeneralSummary  string
	BusinessSummary string
	ErrorMessage    string
	CreatedAt       time.Time
}
