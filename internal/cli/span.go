package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/seqstorm/internal/engine/coord"
)

// spanCmd parses span notation and reports its canonical form.
var spanCmd = &cobra.Command{
	Use:   "span <notation>",
	Short: "Parse span notation and print its canonical form",
	Long: `Parses feature span notation and prints the canonical
serialization plus derived facts. Examples of accepted notation:

  128                     a point
  0..72                   a plus-strand range
  (880..1022)             a minus-strand range
  12..30 + (44..60)       a joined multi-range span
  <0..72                  an indefinite start`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		span, err := coord.ParseSpan(text)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), describeSpan(span))
		return nil
	},
}

// describeSpan formats the parsed span report.
func describeSpan(span coord.Span) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "canonical:   %s\n", span)
	fmt.Fprintf(&sb, "ranges:      %d\n", len(span))
	fmt.Fprintf(&sb, "length:      %d\n", span.TotalLength())
	b := span.Bounds()
	fmt.Fprintf(&sb, "bounds:      %d..%d\n", b.Start, b.End)
	fmt.Fprintf(&sb, "orientation: %s\n", span.Orientation())
	return sb.String()
}

func init() {
	rootCmd.AddCommand(spanCmd)
}
