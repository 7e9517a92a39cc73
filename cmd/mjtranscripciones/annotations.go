package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/annotations"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/config"
)

var (
	annFilter string
	annOldest bool
	annURL    string
)

var annotationsCmd = &cobra.Command{
	Use:   "annotations",
	Short: "List delivery annotations from the tracking sheet",
	Long: `Fetches the annotation records the delivery tracking service keeps for
already transcribed calls and prints them, newest first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listAnnotations()
	},
}

func init() {
	annotationsCmd.Flags().StringVar(&annFilter, "filter", "", "show only records whose contact or summary contains this text")
	annotationsCmd.Flags().BoolVar(&annOldest, "oldest", false, "sort oldest first")
	annotationsCmd.Flags().StringVar(&annURL, "url", "", "annotations endpoint (default from config)")
}

func listAnnotations() error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	url := cfg.Annotations.URL
	if annURL != "" {
		url = annURL
	}

	client := annotations.New(url)
	records, err := client.FetchAll(context.Background())
	if err != nil {
		return err
	}

	order := annotations.SortNewestFirst
	if annOldest {
		order = annotations.SortOldestFirst
	}
	records = annotations.FilterAndSort(records, annFilter, order)

	if len(records) == 0 {
		fmt.Println("no annotations found")
		return nil
	}
	for _, r := range records {
		fmt.Printf("%s  %s\n", r.Date, r.Contact)
		if r.Summary != "" {
			fmt.Printf("    %s\n", r.Summary)
		}
		if r.URL != "" {
			fmt.Printf("    %s\n", r.URL)
		}
		fmt.Println()
	}
	fmt.Printf("%d record(s)\n", len(records))
	return nil
}
