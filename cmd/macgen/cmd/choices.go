package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wcsim/macgen/internal/macgen"
)

// Print the allowed values of every option that has a fixed set of them.
func choicesCmd(app *macgen.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "choices",
		Short: "Print the allowed values of every restricted option.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Out = cmd.OutOrStdout()
			return app.Choices()
		},
	}
	return cmd
}
