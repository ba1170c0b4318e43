package cmd

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/prodflow/jobshop/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "jobshop",
	Short: "Constrained job-shop production scheduler",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig loads the configured file, falling back to defaults when the
// default path does not exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}
