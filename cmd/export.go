package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cuedeck/internal/deck"
)

var (
	exportFormat string
	exportOutDir string
)

var exportCmd = &cobra.Command{
	Use:   "export <deck.json>",
	Short: "Render a deck to markdown, JSON or a YAML scenario",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		store := deck.NewDeckStore(path)
		d, err := store.Load()
		if err != nil {
			if errors.Is(err, deck.ErrNoDeck) {
				return fmt.Errorf("no deck at %s", path)
			}
			return err
		}

		// Select renderer based on --format flag or config DefaultFormat.
		format := exportFormat
		if format == "" {
			format = GetConfig().DefaultFormat
		}

		var renderer deck.DeckRenderer
		var ext string
		switch format {
		case "json":
			renderer = &deck.JSONRenderer{}
			ext = ".json"
		case "yaml", "yml":
			renderer = &deck.YAMLRenderer{}
			ext = ".yaml"
		case "markdown", "md", "":
			md := &deck.MarkdownRenderer{}
			if p := GetProfile(); p != nil {
				md.Author = p.Name
			}
			renderer = md
			ext = ".md"
		default:
			return fmt.Errorf("unknown format %q (markdown, json or yaml)", format)
		}

		data, err := renderer.Render(d)
		if err != nil {
			return fmt.Errorf("render deck: %w", err)
		}

		outDir := exportOutDir
		if outDir == "" {
			outDir = GetConfig().OutputDir
		}
		if outDir == "" {
			outDir = "."
		}
		outPath := filepath.Join(outDir, exportName(path)+ext)

		if err := os.WriteFile(outPath, data, 0644); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}

		cmd.Printf("Exported %s → %s\n", format, outPath)
		return nil
	},
}

// exportName strips the deck file suffixes from path's base name, so
// talk.deck.json exports as talk.md rather than talk.deck.md.
func exportName(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.TrimSuffix(name, ".deck")
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "output format: markdown, json or yaml (overrides config)")
	exportCmd.Flags().StringVar(&exportOutDir, "out-dir", "", "directory to write into (overrides config)")
	rootCmd.AddCommand(exportCmd)
}
