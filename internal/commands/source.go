package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/payrecon/internal/dataset"
	"github.com/cleared-dev/payrecon/internal/service"
)

// sourceFlags select where a dataset comes from.
type sourceFlags struct {
	dataDir  string
	simulate bool
	seed     uint64
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dataDir, "data", "", "dataset directory (default from config)")
	cmd.Flags().BoolVar(&f.simulate, "simulate", false, "use simulated data instead of CSV files")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "simulation seed (default from config)")
	cmd.MarkFlagsMutuallyExclusive("data", "simulate")
}

func (f *sourceFlags) source(cmd *cobra.Command, e *env) service.DataSource {
	if f.simulate {
		sim := e.cfg.Simulation
		if cmd.Flags().Changed("seed") {
			sim.Seed = f.seed
		}
		return sim.Generator()
	}

	dir := e.cfg.Data.Dir
	if f.dataDir != "" {
		dir = f.dataDir
	}
	return dataset.NewDirSource(dir)
}
