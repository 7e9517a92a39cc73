package annotations

import (
	"testing"
	"time"
)

var sampleRecords = []Record{
	{Contact: "Juan Pérez", Date: "2024-01-01", Summary: "Llamada sobre presupuesto"},
	{Contact: "Ana García", Date: "2024-06-01", Summary: "Seguimiento de pedido"},
	{Contact: "Luis", Date: "sin fecha", Summary: "Presupuesto ampliado"},
}

func TestFilterMatchesContactCaseInsensitive(t *testing.T) {
	got := FilterAndSort(sampleRecords, "ana", SortNewestFirst)
	if len(got) != 1 || got[0].Contact != "Ana García" {
		t.Errorf("got %+v, want only Ana García", got)
	}
}

func TestFilterMatchesSummary(t *testing.T) {
	got := FilterAndSort(sampleRecords, "PRESUPUESTO", SortNewestFirst)
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
}

func TestFilterEmptyTermKeepsAll(t *testing.T) {
	got := FilterAndSort(sampleRecords, "  ", SortNewestFirst)
	if len(got) != len(sampleRecords) {
		t.Errorf("got %d records, want %d", len(got), len(sampleRecords))
	}
}

func TestFilterNoMatches(t *testing.T) {
	got := FilterAndSort(sampleRecords, "inexistente", SortNewestFirst)
	if len(got) != 0 {
		t.Errorf("got %+v, want none", got)
	}
}

func TestSortNewestFirst(t *testing.T) {
	got := FilterAndSort(sampleRecords, "", SortNewestFirst)
	if got[0].Date != "2024-06-01" || got[1].Date != "2024-01-01" {
		t.Errorf("order = %q, %q", got[0].Date, got[1].Date)
	}
	if got[2].Contact != "Luis" {
		t.Errorf("unparseable date should sort last, got %+v", got[2])
	}
}

func TestSortOldestFirst(t *testing.T) {
	got := FilterAndSort(sampleRecords, "", SortOldestFirst)
	if got[0].Contact != "Luis" {
		t.Errorf("unparseable date should sort first, got %+v", got[0])
	}
	if got[1].Date != "2024-01-01" || got[2].Date != "2024-06-01" {
		t.Errorf("order = %q, %q", got[1].Date, got[2].Date)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	records := []Record{
		{Contact: "B", Date: "2024-06-01"},
		{Contact: "A", Date: "2024-01-01"},
	}

	FilterAndSort(records, "", SortOldestFirst)
	if records[0].Contact != "B" {
		t.Error("input slice was reordered")
	}
}

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-15T10:30:00Z", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-03-15 10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"15/03/2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"  2024-03-15  ", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"ayer", time.Unix(0, 0).UTC()},
		{"", time.Unix(0, 0).UTC()},
	}

	for _, tt := range tests {
		if got := parseDate(tt.in); !got.Equal(tt.want) {
			t.Errorf("parseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
