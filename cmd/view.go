package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"cuedeck/internal/deck"
	"cuedeck/internal/tui"
)

var plainOutput bool

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "View a deck or a previously exported file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", path)
			}
			return err
		}

		var parser deck.DeckParser
		ext := strings.ToLower(filepath.Ext(path))
		switch ext {
		case ".json":
			parser = &deck.JSONParser{}
		case ".yaml", ".yml":
			parser = &deck.YAMLParser{}
		default:
			parser = &deck.MarkdownParser{}
		}

		d, err := parser.Parse(data)
		if err != nil {
			return err
		}

		// Native deck files open in the editor on a terminal; exports are
		// read-only and always print.
		if !plainOutput && ext == ".json" && term.IsTerminal(os.Stdout.Fd()) {
			c := GetConfig()
			store := deck.NewDeckStore(path)
			return tui.Run(d, store, deck.StyleRef(c.DefaultStyle), path, c.PixelsPerSecond)
		}

		printDeck(d)
		return nil
	},
}

// printDeck writes a plain-text timing summary to stdout.
func printDeck(d *deck.Deck) {
	fmt.Println("## Summary")
	fmt.Printf("  Title:    %s\n", d.Title)
	fmt.Printf("  Slides:   %d\n", len(d.Slides))
	fmt.Printf("  Runtime:  %.1fs\n", d.End())
	if d.SourcePath != "" {
		fmt.Printf("  Source:   %s\n", d.SourcePath)
	}
	if !d.UpdatedAt.IsZero() {
		fmt.Printf("  Updated:  %s\n", d.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Println()

	fmt.Println("## Timing")
	if len(d.Slides) == 0 {
		fmt.Println("  (empty deck)")
		fmt.Println()
		return
	}
	fmt.Printf("  %3s  %8s  %8s  %-10s  %s\n", "#", "start", "length", "type", "title")
	for i := range d.Slides {
		s := &d.Slides[i]
		fmt.Printf("  %3d  %7.1fs  %7.1fs  %-10s  %s\n",
			i+1, s.StartTimeSec, s.DurationSec, string(s.Kind), s.Title)
		for j, f := range s.Fragments {
			window := fmt.Sprintf("+%.1fs", f.DelaySec)
			if f.DurationSec > 0 {
				window += fmt.Sprintf(" for %.1fs", f.DurationSec)
			} else {
				window += " to end"
			}
			fmt.Printf("       · fragment %d (%s)  %s\n", j+1, window, f.Title)
		}
	}
	fmt.Println()
}

func init() {
	viewCmd.Flags().BoolVar(&plainOutput, "plain", false, "plain text output instead of the editor")
	rootCmd.AddCommand(viewCmd)
}
