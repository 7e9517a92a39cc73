package annotations

import (
	"sort"
	"strings"
	"time"
)

// SortOrder selects the direction of the date ordering.
type SortOrder string

const (
	SortNewestFirst SortOrder = "desc"
	SortOldestFirst SortOrder = "asc"
)

// dateLayouts are the formats the spreadsheet has been seen to emit.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// FilterAndSort returns the records whose contact or summary contains
// term (case-insensitive), ordered by date. Records whose date cannot
// be parsed sort as the epoch, so they end up with the oldest.
func FilterAndSort(records []Record, term string, order SortOrder) []Record {
	needle := strings.ToLower(strings.TrimSpace(term))

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if needle == "" ||
			strings.Contains(strings.ToLower(r.Contact), needle) ||
			strings.Contains(strings.ToLower(r.Summary), needle) {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti := parseDate(out[i].Date)
		tj := parseDate(out[j].Date)
		if order == SortOldestFirst {
			return ti.Before(tj)
		}
		return tj.Before(ti)
	})
	return out
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Unix(0, 0).UTC()
}
