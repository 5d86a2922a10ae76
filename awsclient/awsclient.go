// Package awsclient loads the shared AWS SDK v2 configuration and builds the
// service clients the provisioner talks to.
package awsclient

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/codebuild"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline"
	"github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type options struct {
	profile string
	region  string
	retryer func() aws.Retryer
}

// Option customizes how the AWS config is loaded. Without options the shell
// environment and shared config chain apply (AWS_PROFILE, ~/.aws/config, IMDS).
type Option func(*options)

// WithProfile selects a shared config profile.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion overrides the region.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithRetryer replaces the SDK default retryer.
func WithRetryer(newRetryer func() aws.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// LoadConfig loads the AWS SDK v2 config.
func LoadConfig(ctx context.Context, opts ...Option) (aws.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	log.WithField("region", cfg.Region).Debug("aws config loaded")
	return cfg, nil
}

// Clients bundles the service clients used by one run.
type Clients struct {
	Beanstalk      *elasticbeanstalk.Client
	CodeBuild      *codebuild.Client
	CodePipeline   *codepipeline.Client
	S3             *s3.Client
	SecretsManager *secretsmanager.Client
}

// New builds every service client from one config.
func New(cfg aws.Config) *Clients {
	return &Clients{
		Beanstalk:      elasticbeanstalk.NewFromConfig(cfg),
		CodeBuild:      codebuild.NewFromConfig(cfg),
		CodePipeline:   codepipeline.NewFromConfig(cfg),
		S3:             s3.NewFromConfig(cfg),
		SecretsManager: secretsmanager.NewFromConfig(cfg),
	}
}
