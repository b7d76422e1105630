package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/payrecon/internal/model"
	"github.com/cleared-dev/payrecon/internal/report"
	"github.com/cleared-dev/payrecon/internal/runlog"
	"github.com/cleared-dev/payrecon/internal/service"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatCSV  = "csv"
)

type reconcileOptions struct {
	src    sourceFlags
	format string
	status string
	output string
	record bool
	runLog string
}

func newReconcileCommand(g *globalFlags) *cobra.Command {
	var opts reconcileOptions

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Match payments to invoices and print the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			return runReconcile(cmd, e, opts)
		},
	}

	opts.src.register(cmd)
	cmd.Flags().StringVar(&opts.format, "format", formatText, "output format: text, json or csv")
	cmd.Flags().StringVar(&opts.status, "status", "", "only show results with this status")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&opts.record, "record", false, "append the run's totals to the run log")
	cmd.Flags().StringVar(&opts.runLog, "run-log", "", "run log path (default from config)")

	return cmd
}

func runReconcile(cmd *cobra.Command, e *env, opts reconcileOptions) error {
	var filter report.Filter
	if opts.status != "" {
		status, err := model.ParseStatus(opts.status)
		if err != nil {
			return err
		}
		filter.Status = status
	}
	switch opts.format {
	case formatText, formatJSON, formatCSV:
	default:
		return fmt.Errorf("unknown format %q (want text, json or csv)", opts.format)
	}

	engine, err := e.engine()
	if err != nil {
		return err
	}
	svc := service.New(opts.src.source(cmd, e), engine, e.logger)

	rep, err := svc.Run(cmd.Context())
	if err != nil {
		return err
	}
	if opts.record {
		path := e.runLogPath(opts.runLog)
		if err := runlog.Append(path, runlog.FromReport(rep)); err != nil {
			return fmt.Errorf("recording run: %w", err)
		}
		e.logger.Info("recorded run", "run_id", rep.ID, "path", path)
	}
	rep.Results = filter.Apply(rep.Results)

	return withOutput(cmd, opts.output, func(w io.Writer) error {
		switch opts.format {
		case formatJSON:
			return report.WriteJSON(w, rep)
		case formatCSV:
			return report.WriteResultsCSV(w, rep.Results)
		default:
			return report.WriteText(w, rep)
		}
	})
}

// withOutput runs write against path, or stdout when path is empty.
func withOutput(cmd *cobra.Command, path string, write func(w io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
