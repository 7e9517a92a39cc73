// Package api provides the client and protocol types for communicating with
// the remote transcription service over HTTP using JSON.
package api

// driveRequest asks the service to run the full pipeline on a Drive file.
type driveRequest struct {
	DriveFileID  string   `json:"drive_file_id"`
	Instructions []string `json:"instructions"`
}

// generalRequest asks for a plain summary of a transcript.
type generalRequest struct {
	Transcription string `json:"transcription"`
}

// businessRequest asks for a business summary honoring the permanent
// instruction list.
type businessRequest struct {
	Transcription string   `json:"transcription"`
	Instructions  []string `json:"instructions"`
}

// improveRequest asks for a one-off refinement of an existing summary.
type improveRequest struct {
	Transcription   string   `json:"transcription"`
	Summary         string   `json:"summary"`
	InstructionText string   `json:"instruction_text"`
	Instructions    []string `json:"instructions"`
}

type transcribeResponse struct {
	Transcription string `json:"transcription"`
	FileName      string `json:"fileName"`
}

type driveResponse struct {
	Transcription   string `json:"transcription"`
	FileName        string `json:"fileName"`
	GeneralSummary  string `json:"generalSummary"`
	BusinessSummary string `json:"businessSummary"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

// errorResponse is the error body shape: FastAPI-style detail with a plain
// error field as the fallback.
type errorResponse struct {
	Detail string `json:"detail"`
	Err    string `json:"error"`
}

// UploadResult is the outcome of a transcribe-upload call.
type UploadResult struct {
	Transcription string
	FileName      string
}

// DriveResult is the outcome of a transcribe-from-drive call, which runs the
// whole pipeline server-side.
type DriveResult struct {
	Transcription   string
	FileName        string
	GeneralSummary  string
	BusinessSummary string
}

// nonNil keeps instruction lists serializing as [] instead of null.
func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
