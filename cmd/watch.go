package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cuedeck/internal/deck"
	"cuedeck/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <deck.json>",
	Short: "Re-import the deck's source script whenever it changes",
	Long: `Watches the script the deck was imported from and folds every save back
into the deck. Slides whose text is unchanged keep their hand-tuned
timings; edited or new text gets fresh parser defaults.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := deck.NewDeckStore(args[0])
		style := deck.StyleRef(GetConfig().DefaultStyle)

		// Sync once up front so the deck starts consistent with the script.
		d, err := watch.Sync(store, style)
		if err != nil {
			if errors.Is(err, deck.ErrNoDeck) {
				return fmt.Errorf("no deck at %s", args[0])
			}
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cmd.Printf("Watching %s — ctrl-c to stop\n", d.SourcePath)
		return watch.Run(ctx, store, style, func(format string, args ...any) {
			cmd.Printf(format+"\n", args...)
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
