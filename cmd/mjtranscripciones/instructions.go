package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/instructions"
)

var instructionsCmd = &cobra.Command{
	Use:   "instructions",
	Short: "Manage the permanent business summary instructions",
	Long: `The instruction list is sent with every business summary request. It is
stored locally and survives restarts. Import replaces the whole list with the
lines of a text file; export writes it back out in the same format.`,
}

var instructionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the stored instructions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *instructions.Store) error {
			list := store.Current()
			if len(list) == 0 {
				fmt.Println("no instructions stored")
				return nil
			}
			for i, text := range list {
				fmt.Printf("%d. %s\n", i+1, text)
			}
			return nil
		})
	},
}

var instructionsAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Append an instruction to the list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return fmt.Errorf("instruction text is empty")
		}
		return withStore(func(store *instructions.Store) error {
			for _, existing := range store.Current() {
				if existing == text {
					return fmt.Errorf("instruction already in the list")
				}
			}
			if err := store.Add(text); err != nil {
				return err
			}
			fmt.Printf("added; %d instruction(s) stored\n", len(store.Current()))
			return nil
		})
	},
}

var instructionsRemoveCmd = &cobra.Command{
	Use:   "remove <number>",
	Short: "Remove an instruction by its list number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		num, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("not a list number: %s", args[0])
		}
		return withStore(func(store *instructions.Store) error {
			if err := store.Remove(num - 1); err != nil {
				return err
			}
			fmt.Printf("removed; %d instruction(s) stored\n", len(store.Current()))
			return nil
		})
	},
}

var instructionsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the list with the lines of a text file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read instructions file: %w", err)
		}
		list := instructions.ParseText(string(data))
		return withStore(func(store *instructions.Store) error {
			if err := store.Save(list); err != nil {
				return err
			}
			fmt.Printf("imported %d instruction(s)\n", len(list))
			return nil
		})
	},
}

var instructionsExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the list as text, one instruction per line",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *instructions.Store) error {
			text := instructions.JoinText(store.Current())
			if len(args) == 0 {
				fmt.Println(text)
				return nil
			}
			if err := os.WriteFile(args[0], []byte(text+"\n"), 0644); err != nil {
				return fmt.Errorf("write instructions file: %w", err)
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		})
	},
}

func init() {
	instructionsCmd.AddCommand(instructionsListCmd)
	instructionsCmd.AddCommand(instructionsAddCmd)
	instructionsCmd.AddCommand(instructionsRemoveCmd)
	instructionsCmd.AddCommand(instructionsImportCmd)
	instructionsCmd.AddCommand(instructionsExportCmd)
}
