package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/payrecon/internal/report"
	"github.com/cleared-dev/payrecon/internal/runlog"
)

func newHistoryCommand(g *globalFlags) *cobra.Command {
	var (
		runLog string
		format string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded reconciliation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			if format != formatText && format != formatJSON {
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}

			entries, err := runlog.Read(e.runLogPath(runLog))
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}
			if entries == nil {
				entries = []runlog.Entry{}
			}

			w := cmd.OutOrStdout()
			if format == formatJSON {
				return report.WriteJSON(w, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(w, "No recorded runs.")
				return nil
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tRUN\tSOURCE\tPAYMENTS\tMATCHED\tPARTIAL\tMISMATCH\tUNMATCHED\tDUPLICATE\tRATE")
			for _, en := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%s%%\n",
					en.Timestamp.Format(time.DateTime), en.RunID, en.Source, en.Payments,
					en.Matched, en.Partial, en.Mismatch, en.Unmatched, en.Duplicate,
					en.MatchRate.Shift(2).StringFixed(2))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&runLog, "run-log", "", "run log path (default from config)")
	cmd.Flags().StringVar(&format, "format", formatText, "output format: text or json")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the most recent runs")

	return cmd
}
