package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/payrecon/internal/dataset"
)

func newSimulateCommand(g *globalFlags) *cobra.Command {
	var seed uint64
	var invoices, payments int
	var outDir string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Write a simulated dataset as CSV files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}

			sim := e.cfg.Simulation
			if cmd.Flags().Changed("seed") {
				sim.Seed = seed
			}
			if cmd.Flags().Changed("invoices") {
				sim.ExtraInvoices = invoices
			}
			if cmd.Flags().Changed("payments") {
				sim.ExtraPayments = payments
			}
			if outDir == "" {
				outDir = e.cfg.Data.Dir
			}

			ds, err := sim.Generator().Generate()
			if err != nil {
				return err
			}
			if err := dataset.Save(outDir, ds); err != nil {
				return err
			}

			e.logger.Debug("simulated dataset written", "dir", outDir, "seed", sim.Seed)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d invoices, %d payments, %d ledger entries to %s\n",
				len(ds.Invoices), len(ds.Payments), len(ds.LedgerEntries), outDir)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "simulation seed (default from config)")
	cmd.Flags().IntVar(&invoices, "invoices", 0, "extra invoices beyond the sample (default from config)")
	cmd.Flags().IntVar(&payments, "payments", 0, "extra payments beyond the sample (default from config)")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default from config)")

	return cmd
}
