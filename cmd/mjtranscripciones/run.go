package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/api"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/config"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/export"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/instructions"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/logger"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/queue"
)

var (
	runLinks     string
	runExportDir string
	runZip       bool
)

var runCmd = &cobra.Command{
	Use:   "run [audio-file...]",
	Short: "Process a batch headlessly and export the reports",
	Long: `Queue the given audio files plus any Google Drive links found in --links,
process everything as one paced batch, then write a text report for every
completed item. Items that fail are reported on stderr and do not stop the
batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(args)
	},
}

func init() {
	runCmd.Flags().StringVar(&runLinks, "links", "", "text containing Google Drive links to queue")
	runCmd.Flags().StringVar(&runExportDir, "export-dir", "", "directory for the reports (default from config)")
	runCmd.Flags().BoolVar(&runZip, "zip", false, "write one zip archive instead of individual reports")
}

func runBatch(files []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Paths.DataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	log := logger.New(cfg.Logging.Level, os.Stderr)

	store, err := instructions.Open(cfg.InstructionsDBPath(), log)
	if err != nil {
		return err
	}
	defer store.Close()
	store.Load()

	client := api.New(cfg.API.BaseURL, cfg.APITimeout())
	q := queue.New(client, store, log)
	runner := queue.NewRunner(q, cfg.Pace(), log)

	if len(files) > 0 {
		q.EnqueueLocal(files...)
	}
	if runLinks != "" {
		if ids := q.EnqueueDrive(runLinks); len(ids) == 0 {
			return fmt.Errorf("no Drive links found in --links")
		}
	}
	if len(q.Items()) == 0 {
		return fmt.Errorf("nothing to process: pass audio files or --links")
	}

	attempted, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("batch stopped after %d item(s): %w", attempted, err)
	}

	var completed, failed int
	for _, it := range q.Items() {
		switch it.Status {
		case queue.StatusCompleted:
			completed++
		case queue.StatusError:
			failed++
			fmt.Fprintf(os.Stderr, "failed: %s: %s\n", it.DisplayName, it.ErrorMessage)
		}
	}

	if completed > 0 {
		dir := runExportDir
		if dir == "" {
			dir = cfg.Paths.ExportDir
		}
		if runZip {
			path, err := writeArchive(q.Items(), dir)
			if err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
		} else {
			paths, err := writeReports(q.Items(), dir)
			if err != nil {
				return err
			}
			for _, path := range paths {
				fmt.Printf("wrote %s\n", path)
			}
		}
	}

	fmt.Printf("processed %d item(s): %d completed, %d failed\n", attempted, completed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d items failed", failed, attempted)
	}
	return nil
}

// writeReports saves one report per completed item. Duplicate display names
// get the same " (n)" suffix the zip archive uses.
func writeReports(items []queue.Item, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	now := time.Now()
	seen := make(map[string]int)
	var paths []string
	for _, it := range items {
		if it.Status != queue.StatusCompleted {
			continue
		}

		report, err := export.RenderReport(it, now)
		if err != nil {
			return paths, err
		}

		name := export.ReportFileName(it)
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s (%d).txt", strings.TrimSuffix(name, ".txt"), n)
		}

		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(report), 0644); err != nil {
			return paths, fmt.Errorf("write report: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeArchive(items []queue.Item, dir string) (string, error) {
	now := time.Now()
	data, err := export.BuildArchive(items, now)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, export.ArchiveName(now))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write archive: %w", err)
	}
	return path, nil
}
