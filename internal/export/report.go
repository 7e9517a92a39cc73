// Package export renders completed queue items into shareable documents:
// a fixed-layout text report per item, and a zip archive bundling the
// reports of every completed item.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/queue"
)

// Section labels are part of the document format users share, so they
// stay in Spanish.
const reportTemplate = `ARCHIVO: {{.DisplayName}}
GENERADO: {{.GeneratedAt}}

=== TRANSCRIPCIÓN ===

{{.Transcription}}

=== RESUMEN GENERAL ===

{{.GeneralSummary}}

=== RESUMEN DE NEGOCIO ===

{{.BusinessSummary}}
`

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

type reportData struct {
	DisplayName     string
	GeneratedAt     string
	Transcription   string
	GeneralSummary  string
	BusinessSummary string
}

// RenderReport produces the text report for a single item. It does not
// inspect the item's status; callers decide what is exportable.
func RenderReport(it queue.Item, generatedAt time.Time) (string, error) {
	var buf bytes.Buffer
	data := reportData{
		DisplayName:     it.DisplayName,
		GeneratedAt:     generatedAt.Format("02/01/2006 15:04"),
		Transcription:   it.Transcription,
		GeneralSummary:  it.GeneralSummary,
		BusinessSummary: it.BusinessSummary,
	}
	if err := reportTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return buf.String(), nil
}

// ReportFileName returns the download name for a single-item report.
func ReportFileName(it queue.Item) string {
	return baseName(it.DisplayName) + ".txt"
}

// baseName strips the display name to the part before the last dot. A
// name without a dot is used whole.
func baseName(displayName string) string {
	if i := strings.LastIndex(displayName, "."); i > 0 {
		return displayName[:i]
	}
	return displayName
}
