package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Error is a non-2xx response from the service. Detail carries the
// server-supplied message when the body had one.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string { return e.Detail }

// Client wraps the remote transcription service. Each operation is a single
// blocking round-trip; there are no retries here. Retry policy lives with the
// queue as user-triggered reprocessing.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the service at baseURL. The timeout bounds every
// call end to end; transcription of long recordings is slow, so callers
// should pass a generous value.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// TranscribeUpload posts the audio stream as a multipart upload and returns
// the transcript plus the canonical file name, when the service supplies one.
func (c *Client) TranscribeUpload(ctx context.Context, audio io.Reader, fileName string) (UploadResult, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return UploadResult{}, fmt.Errorf("create multipart file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return UploadResult{}, fmt.Errorf("copy audio data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transcribe", body)
	if err != nil {
		return UploadResult{}, fmt.Errorf("create transcribe request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return UploadResult{}, fmt.Errorf("transcribe request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return UploadResult{}, decodeError(resp)
	}

	var payload transcribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return UploadResult{}, fmt.Errorf("decode transcribe response: %w", err)
	}

	return UploadResult{
		Transcription: strings.TrimSpace(payload.Transcription),
		FileName:      payload.FileName,
	}, nil
}

// TranscribeFromDrive runs the whole pipeline server-side for a Drive file.
func (c *Client) TranscribeFromDrive(ctx context.Context, driveID string, instructions []string) (DriveResult, error) {
	reqBody := driveRequest{
		DriveFileID:  driveID,
		Instructions: nonNil(instructions),
	}

	var payload driveResponse
	if err := c.postJSON(ctx, "/transcribe-from-drive", reqBody, &payload); err != nil {
		return DriveResult{}, err
	}

	return DriveResult{
		Transcription:   strings.TrimSpace(payload.Transcription),
		FileName:        payload.FileName,
		GeneralSummary:  strings.TrimSpace(payload.GeneralSummary),
		BusinessSummary: strings.TrimSpace(payload.BusinessSummary),
	}, nil
}

// SummarizeGeneral returns a plain summary of the transcript.
func (c *Client) SummarizeGeneral(ctx context.Context, transcription string) (string, error) {
	var payload summaryResponse
	if err := c.postJSON(ctx, "/summarize-general", generalRequest{Transcription: transcription}, &payload); err != nil {
		return "", err
	}
	return strings.TrimSpace(payload.Summary), nil
}

// SummarizeBusiness returns a business summary built under the permanent
// instruction list.
func (c *Client) SummarizeBusiness(ctx context.Context, transcription string, instructions []string) (string, error) {
	reqBody := businessRequest{
		Transcription: transcription,
		Instructions:  nonNil(instructions),
	}

	var payload summaryResponse
	if err := c.postJSON(ctx, "/summarize-business", reqBody, &payload); err != nil {
		return "", err
	}
	return strings.TrimSpace(payload.Summary), nil
}

// ImproveSummary asks the service to rework an existing business summary
// following a one-off instruction, still honoring the permanent list.
func (c *Client) ImproveSummary(ctx context.Context, transcription, summary, instructionText string, instructions []string) (string, error) {
	reqBody := improveRequest{
		Transcription:   transcription,
		Summary:         summary,
		InstructionText: instructionText,
		Instructions:    nonNil(instructions),
	}

	var payload summaryResponse
	if err := c.postJSON(ctx, "/improve", reqBody, &payload); err != nil {
		return "", err
	}
	return strings.TrimSpace(payload.Summary), nil
}

func (c *Client) postJSON(ctx context.Context, path string, reqBody, respBody any) error {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(reqBody); err != nil {
		return fmt.Errorf("encode %s payload: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, buf)
	if err != nil {
		return fmt.Errorf("create %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// decodeError extracts the server's detail message from a failed response,
// falling back to the error field and then to a generic message.
func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	body, _ := io.ReadAll(resp.Body)

	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Detail != "":
			apiErr.Detail = parsed.Detail
		case parsed.Err != "":
			apiErr.Detail = parsed.Err
		}
	}
	if apiErr.Detail == "" {
		apiErr.Detail = fmt.Sprintf("service error: status %d", resp.StatusCode)
	}

	return apiErr
}
