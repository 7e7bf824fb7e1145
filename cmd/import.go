package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cuedeck/internal/deck"
	"cuedeck/internal/script"
)

var (
	importOut    string
	importTitle  string
	importUpdate bool
)

var importCmd = &cobra.Command{
	Use:   "import <script.txt|->",
	Short: "Parse a text script into a timed slide deck",
	Long: `Reads a raw text file (or stdin when the argument is "-"), recovers its
slide structure and writes a deck file next to your other decks. Each
heading becomes a slide with a duration estimated from its body length;
slides are laid out back to back starting at zero.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args[0]

		var data []byte
		var err error
		if src == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(src)
		}
		if err != nil {
			return fmt.Errorf("failed to read script: %w", err)
		}

		style := deck.StyleRef(GetConfig().DefaultStyle)
		slides := script.Parse(string(data), style)
		if len(slides) == 0 {
			return fmt.Errorf("no content found in %s", src)
		}

		outPath := importOut
		if outPath == "" {
			outPath = defaultDeckPath(src)
		}
		store := deck.NewDeckStore(outPath)

		var d *deck.Deck
		if importUpdate {
			d, err = store.Load()
			if err != nil {
				return fmt.Errorf("cannot update %s: %w", outPath, err)
			}
			d.Slides = script.Resync(d.Slides, slides)
			if importTitle != "" {
				d.Title = importTitle
			}
			d.Touch()
		} else {
			title := importTitle
			if title == "" {
				title = slides[0].Title
			}
			d = deck.New(title)
			d.Slides = slides
		}

		if src != "-" {
			if abs, err := filepath.Abs(src); err == nil {
				d.SourcePath = abs
			}
		}

		if err := store.Save(d); err != nil {
			return err
		}

		cmd.Printf("Imported %d slides (runtime %.1fs) → %s\n", len(d.Slides), d.End(), outPath)
		return nil
	},
}

// defaultDeckPath derives the deck file location from the script name: the
// script's base name with a .deck.json suffix, inside the configured output
// directory. Stdin imports land in deck.deck.json.
func defaultDeckPath(src string) string {
	base := "deck"
	if src != "-" {
		base = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	}
	dir := GetConfig().OutputDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, base+".deck.json")
}

func init() {
	importCmd.Flags().StringVarP(&importOut, "out", "o", "", "deck file to write (default: <script>.deck.json in the output dir)")
	importCmd.Flags().StringVar(&importTitle, "title", "", "deck title (default: the script's main heading)")
	importCmd.Flags().BoolVar(&importUpdate, "update", false, "merge into an existing deck, keeping timings of unchanged slides")
	rootCmd.AddCommand(importCmd)
}
