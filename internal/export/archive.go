package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/queue"
)

// ErrNoCompleted reports an archive request with nothing to package.
var ErrNoCompleted = errors.New("export: no completed items")

// BuildArchive packages one text report per completed item into a zip.
// Items that are not completed are skipped. Entry names derive from the
// display name's base; repeated bases get a " (n)" suffix so every
// report survives extraction.
func BuildArchive(items []queue.Item, generatedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	written := 0
	seen := make(map[string]int)
	for _, it := range items {
		if it.Status != queue.StatusCompleted {
			continue
		}

		report, err := RenderReport(it, generatedAt)
		if err != nil {
			return nil, err
		}

		base := baseName(it.DisplayName)
		seen[base]++
		name := base + ".txt"
		if n := seen[base]; n > 1 {
			name = fmt.Sprintf("%s (%d).txt", base, n)
		}

		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("creating archive entry %s: %w", name, err)
		}
		if _, err := w.Write([]byte(report)); err != nil {
			return nil, fmt.Errorf("writing archive entry %s: %w", name, err)
		}
		written++
	}

	if written == 0 {
		zw.Close()
		return nil, ErrNoCompleted
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return buf.Bytes(), nil
}

// ArchiveName returns the download name for a batch archive.
func ArchiveName(generatedAt time.Time) string {
	return fmt.Sprintf("transcripciones-%s.zip", generatedAt.Format("2006-01-02"))
}
