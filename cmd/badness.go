package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/justify/internal/justify"
	"github.com/papapumpkin/justify/internal/textio"
)

var badnessCmd = &cobra.Command{
	Use:   "badness <word>...",
	Short: "Show the optimal layout of the given words with per-line badness",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBadness,
}

func init() {
	rootCmd.AddCommand(badnessCmd)
}

func runBadness(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	words, err := textio.ReadWords(strings.NewReader(strings.Join(args, " ")))
	if err != nil {
		return err
	}
	return writeBadnessTable(cmd.OutOrStdout(), justify.Justify(words, cfg.Width))
}

// writeBadnessTable prints one row per line: its word range, badness, and
// rendered text between bars so the margins are visible.
func writeBadnessTable(w io.Writer, l justify.Layout) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "LINE\tWORDS\tBADNESS\t")
	for k, line := range l.Lines {
		fmt.Fprintf(tw, "%d\t%d-%d\t%d\t|%s|\n", k+1, line.Span.Start, line.Span.End-1, line.Badness, line.Text)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "total badness %d (width %d, %d words)\n", l.TotalBadness, l.Width, l.Words)
	return err
}
