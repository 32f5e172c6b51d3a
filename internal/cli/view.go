package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/seqstorm/internal/render"
)

// viewCmd opens the interactive terminal viewer.
var viewCmd = &cobra.Command{
	Use:   "view <file.fasta>",
	Short: "View a sequence with its annotations in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sess, err := openSession(ctx, cfg, args[0])
		if err != nil {
			return err
		}
		defer sess.Close(ctx)

		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		app := render.NewApp(screen, sess, render.Options{
			BasesPerLine:   cfg.View.BasesPerLine,
			ShowComplement: cfg.View.ShowComplement,
			ColorScheme:    cfg.View.ColorScheme,
		})
		if err := app.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
