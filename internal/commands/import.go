package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/payrecon/internal/dataset"
	"github.com/cleared-dev/payrecon/internal/importer"
	"github.com/cleared-dev/payrecon/internal/model"
)

type importOptions struct {
	format  string
	dataDir string
	inbox   string
	dryRun  bool
}

func newImportCommand(g *globalFlags) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Add payments from bank statement exports to the dataset",
		Long: `Parse bank CSV exports and append their credits to payments.csv.

With no arguments, every CSV in the inbox is imported and then moved to
the inbox's processed/ directory. Payments whose ID is already in the
dataset are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			return runImport(cmd, e, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "chase", "bank export format")
	cmd.Flags().StringVar(&opts.dataDir, "data", "", "dataset directory (default from config)")
	cmd.Flags().StringVar(&opts.inbox, "inbox", "", "inbox directory (default from config)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "parse and report without writing")

	return cmd
}

func runImport(cmd *cobra.Command, e *env, opts importOptions, files []string) error {
	parser, err := importer.DefaultRegistry().Lookup(opts.format)
	if err != nil {
		return err
	}

	dataDir := e.cfg.Data.Dir
	if opts.dataDir != "" {
		dataDir = opts.dataDir
	}
	inbox := e.cfg.Data.Inbox
	if opts.inbox != "" {
		inbox = opts.inbox
	}

	// Explicit files are left in place; inbox files move once imported.
	fromInbox := len(files) == 0
	var inboxNames []string
	if fromInbox {
		found, err := importer.Scan(inbox)
		if err != nil {
			return err
		}
		for _, f := range found {
			files = append(files, f.Path)
			inboxNames = append(inboxNames, f.Name)
		}
	}

	out := cmd.OutOrStdout()
	if len(files) == 0 {
		fmt.Fprintf(out, "No files to import in %s\n", inbox)
		return nil
	}

	var payments []model.Payment
	for _, path := range files {
		parsed, err := importer.ParseFile(parser, path)
		if err != nil {
			return err
		}
		e.logger.Debug("parsed bank export", "path", path, "payments", len(parsed))
		payments = append(payments, parsed...)
	}

	if opts.dryRun {
		fmt.Fprintf(out, "Would import up to %d payments from %d file(s)\n", len(payments), len(files))
		return nil
	}

	added, err := dataset.AppendPayments(cmd.Context(), dataDir, payments)
	if err != nil {
		return fmt.Errorf("appending payments: %w", err)
	}

	if fromInbox {
		for _, name := range inboxNames {
			if err := importer.MarkProcessed(inbox, name); err != nil {
				return err
			}
		}
	}

	e.logger.Info("imported payments", "files", len(files), "parsed", len(payments), "added", added)
	fmt.Fprintf(out, "Imported %d new payments (%d already present) from %s\n",
		added, len(payments)-added, strings.Join(files, ", "))
	return nil
}
