package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wcsim/macgen/internal/common"
	"github.com/wcsim/macgen/internal/macgen"
)

const defaultConfigName = ".macgen"

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "macgen",
		Short: "macgen generates and runs WCSim macro files for parameter sweeps.",
		Long: `macgen generates and runs WCSim macro files for parameter sweeps.

Every sweep option accepts a comma-separated list of values; one macro file is
written for each combination.

Persistent options can be saved in a config file so they don't have to be specified
every command, e.g.

wcGeom: SuperK,HyperK
darkNoiseRate: [0, 8.4]
gunEnergy: 5,10,20,50

The location of this file can be passed in using the --config argument.
If not provided, $HOME/.macgen.yaml is used when it exists.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := cmd.Flags().GetString("logLevel")
			if err != nil {
				return err
			}
			return common.SetLogLevel(level)
		},
	}
	cmd.SetOut(os.Stdout)

	cmd.PersistentFlags().String("config", "", "Config file (default is $HOME/.macgen.yaml)")
	cmd.PersistentFlags().String("logLevel", "info", "Log level: panic, fatal, error, warn, info, debug or trace")

	cmd.AddCommand(
		generateCmd(),
		versionCmd(macgen.New()),
		choicesCmd(macgen.New()),
	)

	return cmd
}
