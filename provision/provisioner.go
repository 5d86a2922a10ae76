// Package provision creates the Elastic Beanstalk application and
// environment, the CodeBuild project and the CodePipeline, in that order.
//
// Every operation is a single pass-through to the AWS API. Nothing checks for
// existing resources and nothing is rolled back when a later step fails.
package provision

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/service/codebuild"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline"
	"github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"

	"github.com/30Piraten/cicd/pipeline"
)

// BeanstalkAPI is the subset of the Elastic Beanstalk client used here.
type BeanstalkAPI interface {
	CreateApplication(ctx context.Context, params *elasticbeanstalk.CreateApplicationInput, optFns ...func(*elasticbeanstalk.Options)) (*elasticbeanstalk.CreateApplicationOutput, error)
	CreateEnvironment(ctx context.Context, params *elasticbeanstalk.CreateEnvironmentInput, optFns ...func(*elasticbeanstalk.Options)) (*elasticbeanstalk.CreateEnvironmentOutput, error)
}

// CodeBuildAPI is the subset of the CodeBuild client used here.
type CodeBuildAPI interface {
	CreateProject(ctx context.Context, params *codebuild.CreateProjectInput, optFns ...func(*codebuild.Options)) (*codebuild.CreateProjectOutput, error)
}

// CodePipelineAPI is the subset of the CodePipeline client used here.
type CodePipelineAPI interface {
	CreatePipeline(ctx context.Context, params *codepipeline.CreatePipelineInput, optFns ...func(*codepipeline.Options)) (*codepipeline.CreatePipelineOutput, error)
}

// Provisioner issues the provisioning calls.
type Provisioner struct {
	beanstalk    BeanstalkAPI
	codebuild    CodeBuildAPI
	codepipeline CodePipelineAPI

	// optional artifact bucket creation
	buckets BucketAPI
	region  string

	log log.Interface
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithArtifactBucket makes Run create the pipeline artifact bucket in region
// before anything else.
func WithArtifactBucket(api BucketAPI, region string) Option {
	return func(p *Provisioner) {
		p.buckets = api
		p.region = region
	}
}

// WithLogger replaces the package-level apex logger.
func WithLogger(l log.Interface) Option {
	return func(p *Provisioner) { p.log = l }
}

// New returns a Provisioner over the given service clients.
func New(eb BeanstalkAPI, cb CodeBuildAPI, cp CodePipelineAPI, opts ...Option) *Provisioner {
	p := &Provisioner{
		beanstalk:    eb,
		codebuild:    cb,
		codepipeline: cp,
		log:          log.Log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run creates the hosting environment, the build project and the pipeline.
// The first failure stops the run; resources created by earlier steps stay.
func (p *Provisioner) Run(ctx context.Context, plan pipeline.Plan) error {
	if p.buckets != nil {
		if err := p.EnsureArtifactBucket(ctx, plan.Pipeline.ArtifactBucket); err != nil {
			return p.fail("artifact bucket", err)
		}
	}

	if err := p.CreateHostingEnvironment(ctx, plan.Application); err != nil {
		return p.fail("hosting environment", err)
	}
	if err := p.CreateBuildProject(ctx, plan.Build); err != nil {
		return p.fail("build project", err)
	}
	if err := p.CreatePipeline(ctx, plan.Pipeline); err != nil {
		return p.fail("pipeline", err)
	}

	p.log.Info("CI/CD pipeline setup complete.")
	return nil
}

func (p *Provisioner) fail(step string, err error) error {
	entry := p.log.WithField("step", step)
	if code := APIErrorCode(err); code != "" {
		entry = entry.WithField("code", code)
	}
	entry.Error("provisioning stopped")
	return fmt.Errorf("provisioning %s: %w", step, err)
}
