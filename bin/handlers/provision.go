package handlers

import (
	"context"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/30Piraten/cicd/awsclient"
	"github.com/30Piraten/cicd/config"
	"github.com/30Piraten/cicd/pipeline"
	"github.com/30Piraten/cicd/provision"
)

// Runner matches provision.Provisioner so tests can swap it.
type Runner interface {
	Run(ctx context.Context, plan pipeline.Plan) error
}

// Factory function variables - can be replaced in tests.
var (
	newAWSConfig = func(ctx context.Context, cfg *config.Config) (aws.Config, error) {
		return awsclient.LoadConfig(ctx,
			awsclient.WithRegion(cfg.Region),
			awsclient.WithProfile(cfg.Profile),
		)
	}

	newSecrets = func(awsCfg aws.Config) provision.SecretsAPI {
		return awsclient.New(awsCfg).SecretsManager
	}

	newProvisioner = func(awsCfg aws.Config, cfg *config.Config) Runner {
		clients := awsclient.New(awsCfg)

		var opts []provision.Option
		if cfg.Pipeline.CreateBucket {
			opts = append(opts, provision.WithArtifactBucket(clients.S3, cfg.Region))
		}
		return provision.New(clients.Beanstalk, clients.CodeBuild, clients.CodePipeline, opts...)
	}
)

// Provision creates the Beanstalk application and environment, the CodeBuild
// project and the CodePipeline described by the configuration.
func Provision(ctx context.Context, configPath, envFile string) error {
	cfg, err := loadConfig(configPath, envFile)
	if err != nil {
		return err
	}

	awsCfg, err := newAWSConfig(ctx, cfg)
	if err != nil {
		return err
	}

	token := cfg.GitHub.Token
	if cfg.GitHub.TokenSecret != "" {
		log.WithField("secret", cfg.GitHub.TokenSecret).Debug("reading GitHub token from Secrets Manager")
		token, err = provision.ResolveGitHubToken(ctx, newSecrets(awsCfg), cfg.GitHub.TokenSecret)
		if err != nil {
			return err
		}
	}

	return newProvisioner(awsCfg, cfg).Run(ctx, cfg.Plan(token))
}
