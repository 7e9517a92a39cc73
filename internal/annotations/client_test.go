package annotations

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestFetchAll(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"contacto":"Juan Pérez","fecha":"2024-06-01","resumen":"Llamada sobre presupuesto","url":"https://example.com/1"},
			{"contacto":"Ana","fecha":"2024-01-01","resumen":"Seguimiento","url":""}
		]`))
	})

	records, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Contact != "Juan Pérez" || records[0].Date != "2024-06-01" {
		t.Errorf("first record = %+v", records[0])
	}
	if records[1].Summary != "Seguimiento" {
		t.Errorf("second record = %+v", records[1])
	}
}

func TestFetchAllEmptyList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	records, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %v, want none", records)
	}
}

func TestFetchAllErrorFieldDespiteSuccessStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"error":"Hoja de cálculo no encontrada"}`))
	})

	_, err := c.FetchAll(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Hoja de cálculo no encontrada") {
		t.Errorf("error = %v, want the service message", err)
	}
}

func TestFetchAllNonArrayBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"datos": []}`))
	})

	if _, err := c.FetchAll(context.Background()); !errors.Is(err, ErrBadPayload) {
		t.Errorf("error = %v, want ErrBadPayload", err)
	}
}

func TestFetchAllNotConfigured(t *testing.T) {
	c := New("")

	if _, err := c.FetchAll(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestFetchAllServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"cuota superada"}`))
	})

	_, err := c.FetchAll(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "cuota superada") {
		t.Errorf("error = %v, want the service message", err)
	}
}

func TestFetchAllServerErrorWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>bad gateway</html>`))
	})

	_, err := c.FetchAll(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error = %v, want the status code", err)
	}
}
