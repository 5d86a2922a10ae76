// Package commands defines the CLI command structure and flag bindings.
// Command execution is delegated to the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/30Piraten/cicd/bin/handlers"
	"github.com/30Piraten/cicd/logging"
)

type globalFlags struct {
	configPath string
	envFile    string
}

// Root returns the root command. Run without a subcommand it provisions the
// Elastic Beanstalk application and environment, the CodeBuild project and
// the CodePipeline.
func Root() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "cicd",
		Short: "Provision a GitHub to CodeBuild to Elastic Beanstalk pipeline",
		Long: `Provision a CI/CD pipeline on AWS.

Creates, in order:
  1. an Elastic Beanstalk application and environment
  2. a CodeBuild project building the GitHub repository
  3. a CodePipeline with Source, Build and Deploy stages

Settings come from built-in defaults, the optional --config YAML file, the
optional .env file and the environment, in increasing precedence.

Nothing is rolled back if a later step fails, and re-running against an
existing setup fails on the first resource that already exists.

Environment variables:
  GITHUB_OWNER, GITHUB_REPO, GITHUB_BRANCH
  GITHUB_TOKEN or GITHUB_TOKEN_SECRET (Secrets Manager name or ARN)
  ARTIFACT_BUCKET, CODEBUILD_SERVICE_ROLE_ARN, CODEPIPELINE_SERVICE_ROLE_ARN
  AWS_REGION, AWS_PROFILE, CICD_LOG`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logging.Init()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), flags.configPath, flags.envFile)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to YAML configuration file")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "Path to .env file (ignored when absent)")

	cmd.AddCommand(Plan(flags))
	cmd.AddCommand(Synth(flags))
	cmd.AddCommand(Version())

	return cmd
}
