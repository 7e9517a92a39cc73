package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newTestClient starts a mock service with the given handler and returns a
// Client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(srv.URL, 5*time.Second)
}

func TestTranscribeUpload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/transcribe" {
			t.Errorf("path = %s, want /transcribe", r.URL.Path)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()

		if header.Filename != "llamada.mp3" {
			t.Errorf("filename = %q, want llamada.mp3", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "audio-bytes" {
			t.Errorf("file content = %q", data)
		}

		json.NewEncoder(w).Encode(map[string]string{
			"transcription": "hola mundo",
			"fileName":      "llamada-canonica.mp3",
		})
	})

	got, err := client.TranscribeUpload(context.Background(), strings.NewReader("audio-bytes"), "llamada.mp3")
	if err != nil {
		t.Fatalf("TranscribeUpload: %v", err)
	}

	if got.Transcription != "hola mundo" {
		t.Errorf("transcription = %q", got.Transcription)
	}
	if got.FileName != "llamada-canonica.mp3" {
		t.Errorf("fileName = %q", got.FileName)
	}
}

func TestTranscribeFromDrive(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe-from-drive" {
			t.Errorf("path = %s", r.URL.Path)
		}

		var req struct {
			DriveFileID  string   `json:"drive_file_id"`
			Instructions []string `json:"instructions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.DriveFileID != "abc123" {
			t.Errorf("drive_file_id = %q", req.DriveFileID)
		}
		if len(req.Instructions) != 2 || req.Instructions[0] != "corto" {
			t.Errorf("instructions = %v", req.Instructions)
		}

		json.NewEncoder(w).Encode(map[string]string{
			"transcription":   "texto",
			"fileName":        "audio.m4a",
			"generalSummary":  "resumen",
			"businessSummary": "negocio",
		})
	})

	got, err := client.TranscribeFromDrive(context.Background(), "abc123", []string{"corto", "formal"})
	if err != nil {
		t.Fatalf("TranscribeFromDrive: %v", err)
	}

	if got.Transcription != "texto" || got.FileName != "audio.m4a" {
		t.Errorf("result = %+v", got)
	}
	if got.GeneralSummary != "resumen" || got.BusinessSummary != "negocio" {
		t.Errorf("summaries = %+v", got)
	}
}

func TestSummarizeGeneral(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/summarize-general" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req struct {
			Transcription string `json:"transcription"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Transcription != "texto largo" {
			t.Errorf("transcription = %q", req.Transcription)
		}
		json.NewEncoder(w).Encode(map[string]string{"summary": "  resumen  "})
	})

	got, err := client.SummarizeGeneral(context.Background(), "texto largo")
	if err != nil {
		t.Fatalf("SummarizeGeneral: %v", err)
	}
	if got != "resumen" {
		t.Errorf("summary = %q, want trimmed %q", got, "resumen")
	}
}

func TestSummarizeBusinessNilInstructionsSerializeAsEmptyList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"instructions":[]`) {
			t.Errorf("body = %s, want instructions serialized as []", body)
		}
		json.NewEncoder(w).Encode(map[string]string{"summary": "ok"})
	})

	if _, err := client.SummarizeBusiness(context.Background(), "texto", nil); err != nil {
		t.Fatalf("SummarizeBusiness: %v", err)
	}
}

func TestImproveSummary(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/improve" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req struct {
			Transcription   string   `json:"transcription"`
			Summary         string   `json:"summary"`
			InstructionText string   `json:"instruction_text"`
			Instructions    []string `json:"instructions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Summary != "resumen viejo" || req.InstructionText != "más corto" {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]string{"summary": "resumen nuevo"})
	})

	got, err := client.ImproveSummary(context.Background(), "texto", "resumen viejo", "más corto", []string{"formal"})
	if err != nil {
		t.Fatalf("ImproveSummary: %v", err)
	}
	if got != "resumen nuevo" {
		t.Errorf("summary = %q", got)
	}
}

func TestErrorDetailSurfacedVerbatim(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "No se subió ningún archivo."})
	})

	_, err := client.TranscribeUpload(context.Background(), strings.NewReader("x"), "a.mp3")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if apiErr.Detail != "No se subió ningún archivo." {
		t.Errorf("detail = %q", apiErr.Detail)
	}
}

func TestErrorFallsBackToErrorField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "cuota agotada"})
	})

	_, err := client.SummarizeGeneral(context.Background(), "texto")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.Detail != "cuota agotada" {
		t.Errorf("detail = %q", apiErr.Detail)
	}
}

func TestErrorGenericWhenBodyUnusable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>gateway</html>"))
	})

	_, err := client.SummarizeBusiness(context.Background(), "texto", nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T", err)
	}
	if !strings.Contains(apiErr.Detail, "502") {
		t.Errorf("detail = %q, want generic message with status", apiErr.Detail)
	}
}

func TestTransportFailureIsNotAPIError(t *testing.T) {
	client := New("http://127.0.0.1:1", 200*time.Millisecond)

	_, err := client.SummarizeGeneral(context.Background(), "texto")
	if err == nil {
		t.Fatal("expected transport error")
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure should not be an *Error: %v", err)
	}
}
