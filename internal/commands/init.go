package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/payrecon/internal/config"
	"github.com/cleared-dev/payrecon/internal/dataset"
	"github.com/cleared-dev/payrecon/internal/gitops"
	"github.com/cleared-dev/payrecon/internal/simulate"
)

func newInitCommand() *cobra.Command {
	var (
		force bool
		git   bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a project with a config file and sample data",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, force); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Initialized payrecon project at %s\n", absDir)

			if git {
				hash, err := commitProject(absDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Committed project files (%s)\n", hash)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	cmd.Flags().BoolVar(&git, "git", false, "version the project with git and commit the initial files")

	return cmd
}

func runInit(dir string, force bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	// Write payrecon.yaml.
	cfg := config.Default()
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write sample CSVs.
	if err := dataset.Save(filepath.Join(dir, cfg.Data.Dir), simulate.SampleDataset()); err != nil {
		return fmt.Errorf("writing sample data: %w", err)
	}

	// Write .gitignore.
	gitignore := "reports/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	return nil
}

// committer signs commits payrecon makes on the user's behalf.
var committer = gitops.Identity{Name: "payrecon", Email: "payrecon@localhost"}

func commitProject(dir string) (string, error) {
	if !gitops.Available() {
		return "", errors.New("git not found in PATH")
	}
	repo, err := gitops.Open(dir, committer)
	if err != nil {
		return "", err
	}
	return repo.CommitAll("init: payrecon project")
}
