package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/seqstorm/internal/script"
)

var runOutPath string

// runCmd executes a Lua edit script against a sequence file.
var runCmd = &cobra.Command{
	Use:   "run <file.fasta> <script.lua>",
	Short: "Run a Lua edit script against a sequence",
	Args:  cobra.ExactArgs(2),
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

		runner := script.NewRunner(ctx, sess)
		defer runner.Close()
		if err := runner.RunFile(args[1]); err != nil {
			return err
		}

		if runOutPath != "" {
			if err := sess.SaveFASTA(runOutPath); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bp, %d annotations\n",
			sess.Name(), sess.Engine().Len(), sess.Engine().AnnotationCount())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runOutPath, "out", "o", "", "write the edited sequence to this FASTA file")
}
