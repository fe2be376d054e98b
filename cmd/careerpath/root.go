package main

import (
	"github.com/spf13/cobra"
	"github.com/warp/careerpath/config"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "careerpath",
		Short:         "Education ROI projector",
		Long:          "Project the return on an education investment, compare plans, and serve the dashboard API.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", config.ConfigPath(), "Path to the TOML config file")

	root.AddCommand(
		newServeCmd(opts),
		newProjectCmd(opts),
		newCompareCmd(opts),
		newPresetsCmd(),
		newConfigCmd(opts),
	)
	return root
}

// loadConfig reads the config file named by --config.
func (o *rootOptions) loadConfig() (config.Config, error) {
	return config.Load(o.configPath)
}
