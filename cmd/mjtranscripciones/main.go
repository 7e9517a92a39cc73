package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/annotations"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/api"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/app"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/config"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/instructions"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/logger"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/queue"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/watcher"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "mjtranscripciones [audio-file...]",
	Short: "Transcribe and summarize call recordings",
	Long: `Terminal front end for the MJ transcription service. Queue local audio
files or Google Drive links, transcribe and summarize them one at a time or
as a paced batch, and export the results as text reports.

Without a subcommand the interactive interface starts; any audio files given
as arguments are queued before it opens.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config.yaml", "path to the YAML config file")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(instructionsCmd)
	rootCmd.AddCommand(annotationsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(files []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Paths.DataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// The interface owns the terminal, so logs go to a file instead.
	logFile, err := os.OpenFile(cfg.LogFilePath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log := logger.New(cfg.Logging.Level, logFile)

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

	if cfg.Paths.WatchDir != "" {
		handler := func(ctx context.Context, path string) error {
			q.EnqueueLocal(path)
			return nil
		}
		w, err := watcher.New(cfg.Paths.WatchDir, handler, log)
		if err != nil {
			return fmt.Errorf("create watch folder: %w", err)
		}
		defer w.Stop()
		go func() {
			if err := w.Start(ctx); err != nil && err != context.Canceled {
				log.Error(ctx, "Watch folder stopped: %v", err)
			}
		}()
	}

	model := app.New(app.Deps{
		Queue:       q,
		Runner:      runner,
		Store:       store,
		Annotations: annotations.New(cfg.Annotations.URL),
		Log:         log,
		ExportDir:   cfg.Paths.ExportDir,
	})

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}

// withStore loads the config, opens the instruction store and hands it to fn.
// Shared by the headless instruction commands, which log to stderr.
func withStore(fn func(store *instructions.Store) error) error {
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

	return fn(store)
}
