package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cuedeck/internal/deck"
)

var (
	translateEmit bool
	translateOut  string
)

var translateCmd = &cobra.Command{
	Use:   "translate <deck.json> [translations.json]",
	Short: "Exchange slide text with an external translation service",
	Long: `With --emit, writes the deck's text as a translation request: a JSON list
of {id, title, body} records. An external service fills in translated
strings without touching the ids; feeding the result back applies it.

Applying is all-or-nothing: if any record is missing a field or names an
unknown slide, the deck is left untouched.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := deck.NewDeckStore(args[0])
		d, err := store.Load()
		if err != nil {
			if errors.Is(err, deck.ErrNoDeck) {
				return fmt.Errorf("no deck at %s", args[0])
			}
			return err
		}

		if translateEmit {
			req := d.TranslationRequest()
			data, err := json.MarshalIndent(req, "", "  ")
			if err != nil {
				return err
			}
			if translateOut == "" {
				cmd.Println(string(data))
				return nil
			}
			if err := os.WriteFile(translateOut, data, 0644); err != nil {
				return fmt.Errorf("write translation request: %w", err)
			}
			cmd.Printf("Wrote translation request for %d slides → %s\n", len(req), translateOut)
			return nil
		}

		if len(args) < 2 {
			return fmt.Errorf("nothing to apply — pass a translations file or use --emit")
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read translations: %w", err)
		}
		var items []deck.Translation
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("failed to parse translations: %w", err)
		}

		if err := d.ApplyTranslations(items); err != nil {
			return err
		}
		if err := store.Save(d); err != nil {
			return err
		}

		cmd.Printf("Applied %d translations.\n", len(items))
		return nil
	},
}

func init() {
	translateCmd.Flags().BoolVar(&translateEmit, "emit", false, "write the translation request instead of applying one")
	translateCmd.Flags().StringVarP(&translateOut, "out", "o", "", "file to write the request to (default: stdout)")
	rootCmd.AddCommand(translateCmd)
}
