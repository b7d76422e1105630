package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/payrecon/internal/report"
	"github.com/cleared-dev/payrecon/internal/service"
)

func newSummaryCommand(g *globalFlags) *cobra.Command {
	var src sourceFlags
	var format string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print reconciliation totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			return runSummary(cmd, e, src, format)
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&format, "format", formatText, "output format: text or json")

	return cmd
}

func runSummary(cmd *cobra.Command, e *env, src sourceFlags, format string) error {
	if format != formatText && format != formatJSON {
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}

	engine, err := e.engine()
	if err != nil {
		return err
	}
	rep, err := service.New(src.source(cmd, e), engine, e.logger).Run(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if format == formatJSON {
		return report.WriteJSON(w, rep.Summary)
	}
	return writeSummaryText(w, rep)
}

func writeSummaryText(w io.Writer, rep *report.Report) error {
	fmt.Fprintf(w, "Source: %s\n\n", rep.Source)
	return report.WriteSummaryText(w, rep.Summary)
}
