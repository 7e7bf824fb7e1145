package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"cuedeck/internal/deck"
	"cuedeck/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <deck.json>",
	Short: "Adjust slide and fragment timing in the interactive editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(os.Stdout.Fd()) {
			return fmt.Errorf("edit needs an interactive terminal; use 'cuedeck view --plain' for plain output")
		}

		path := args[0]
		store := deck.NewDeckStore(path)
		d, err := store.Load()
		if err != nil {
			if errors.Is(err, deck.ErrNoDeck) {
				return fmt.Errorf("no deck at %s — create one with 'cuedeck import'", path)
			}
			return err
		}

		c := GetConfig()
		return tui.Run(d, store, deck.StyleRef(c.DefaultStyle), path, c.PixelsPerSecond)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
