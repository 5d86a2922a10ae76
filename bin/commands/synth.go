package commands

import (
	"github.com/spf13/cobra"

	"github.com/30Piraten/cicd/bin/handlers"
)

// Synth returns the command rendering the pipeline as a CDK cloud assembly.
//
// Deploy the result with:
//
//	cdk deploy --app cdk.out
func Synth(flags *globalFlags) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize the pipeline as a CloudFormation stack",
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Synth(flags.configPath, flags.envFile, outDir)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "cdk.out", "Cloud assembly output directory")

	return cmd
}
