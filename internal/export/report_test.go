package export

import (
	"strings"
	"testing"
	"time"

	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/queue"
)

var testItem = queue.Item{
	ID:              "llamada.mp3-1700000000000-1",
	DisplayName:     "llamada.mp3",
	Status:          queue.StatusCompleted,
	Transcription:   "Buenos días, le llamo por el presupuesto.",
	GeneralSummary:  "Llamada sobre un presupuesto pendiente.",
	BusinessSummary: "Cliente espera presupuesto; enviar antes del viernes.",
}

func TestRenderReportContainsFieldsVerbatim(t *testing.T) {
	out, err := RenderReport(testItem, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RenderReport: %v", err)
	}

	for _, want := range []string{
		"llamada.mp3",
		"15/03/2024 10:30",
		"=== TRANSCRIPCIÓN ===",
		"=== RESUMEN GENERAL ===",
		"=== RESUMEN DE NEGOCIO ===",
		testItem.Transcription,
		testItem.GeneralSummary,
		testItem.BusinessSummary,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderReportSectionOrder(t *testing.T) {
	out, err := RenderReport(testItem, time.Now())
	if err != nil {
		t.Fatalf("RenderReport: %v", err)
	}

	ti := strings.Index(out, "=== TRANSCRIPCIÓN ===")
	gi := strings.Index(out, "=== RESUMEN GENERAL ===")
	bi := strings.Index(out, "=== RESUMEN DE NEGOCIO ===")
	if !(ti < gi && gi < bi) {
		t.Errorf("section order wrong: %d, %d, %d", ti, gi, bi)
	}
}

func TestRenderReportDeterministicForFixedTime(t *testing.T) {
	at := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	first, err := RenderReport(testItem, at)
	if err != nil {
		t.Fatalf("RenderReport: %v", err)
	}
	second, err := RenderReport(testItem, at)
	if err != nil {
		t.Fatalf("RenderReport: %v", err)
	}
	if first != second {
		t.Error("output varies for identical inputs")
	}
}

func TestReportFileName(t *testing.T) {
	tests := []struct {
		display string
		want    string
	}{
		{"llamada.mp3", "llamada.txt"},
		{"llamada.final.mp3", "llamada.final.txt"},
		{"Drive-ABC123", "Drive-ABC123.txt"},
		{".oculto", ".oculto.txt"},
	}

	for _, tt := range tests {
		it := queue.Item{DisplayName: tt.display}
		if got := ReportFileName(it); got != tt.want {
			t.Errorf("ReportFileName(%q) = %q, want %q", tt.display, got, tt.want)
		}
	}
}
