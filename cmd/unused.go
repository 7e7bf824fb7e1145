package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cuedeck/internal/deck"
	"cuedeck/internal/script"
)

var unusedCmd = &cobra.Command{
	Use:   "unused <deck.json>",
	Short: "List script lines that ended up in no slide",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := deck.NewDeckStore(args[0])
		d, err := store.Load()
		if err != nil {
			if errors.Is(err, deck.ErrNoDeck) {
				return fmt.Errorf("no deck at %s", args[0])
			}
			return err
		}
		if d.SourcePath == "" {
			return fmt.Errorf("deck has no source script to compare against")
		}

		data, err := os.ReadFile(d.SourcePath)
		if err != nil {
			return fmt.Errorf("failed to read source script: %w", err)
		}

		lines := script.Unused(string(data), d.Slides)
		if len(lines) == 0 {
			cmd.Println("Every script line is placed in a slide.")
			return nil
		}
		cmd.Printf("%d script lines are in no slide:\n", len(lines))
		for _, line := range lines {
			cmd.Printf("  - %s\n", line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unusedCmd)
}
