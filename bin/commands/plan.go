package commands

import (
	"github.com/spf13/cobra"

	"github.com/30Piraten/cicd/bin/handlers"
)

// Plan returns the command printing what a provisioning run would submit.
func Plan(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the resources a run would create, without calling AWS",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.OutOrStdout(), flags.configPath, flags.envFile)
		},
	}
}
