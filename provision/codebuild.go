package provision

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/codebuild"
	cbtypes "github.com/aws/aws-sdk-go-v2/service/codebuild/types"

	"github.com/30Piraten/cicd/pipeline"
)

// CreateBuildProject registers the CodeBuild project. CodeBuild rejects a
// project name that is already taken.
func (p *Provisioner) CreateBuildProject(ctx context.Context, cfg pipeline.BuildConfig) error {
	p.log.WithField("project", cfg.ProjectName).Info("Creating CodeBuild project...")

	out, err := p.codebuild.CreateProject(ctx, projectInput(cfg))
	if err != nil {
		return fmt.Errorf("create build project %s: %w", cfg.ProjectName, err)
	}

	entry := p.log.WithField("project", cfg.ProjectName)
	if out.Project != nil {
		entry = entry.WithField("arn", aws.ToString(out.Project.Arn))
	}
	entry.Info("CodeBuild project created.")
	return nil
}

func projectInput(cfg pipeline.BuildConfig) *codebuild.CreateProjectInput {
	// sorted so the request is stable across runs
	var vars []cbtypes.EnvironmentVariable
	for _, name := range slices.Sorted(maps.Keys(cfg.EnvironmentVariables)) {
		vars = append(vars, cbtypes.EnvironmentVariable{
			Name:  aws.String(name),
			Value: aws.String(cfg.EnvironmentVariables[name]),
			Type:  cbtypes.EnvironmentVariableTypePlaintext,
		})
	}

	input := &codebuild.CreateProjectInput{
		Name: aws.String(cfg.ProjectName),
		Source: &cbtypes.ProjectSource{
			Type:      cbtypes.SourceTypeGithub,
			Location:  aws.String(cfg.Source.URL()),
			Buildspec: aws.String(cfg.BuildSpec),
			Auth: &cbtypes.SourceAuth{
				Type:     cbtypes.SourceAuthTypeOauth,
				Resource: aws.String(cfg.Source.Token),
			},
		},
		Artifacts: &cbtypes.ProjectArtifacts{
			Type: cbtypes.ArtifactsTypeCodepipeline,
		},
		Environment: &cbtypes.ProjectEnvironment{
			Type:                 cbtypes.EnvironmentTypeLinuxContainer,
			Image:                aws.String(cfg.Image),
			ComputeType:          cbtypes.ComputeType(cfg.ComputeType),
			EnvironmentVariables: vars,
		},
		ServiceRole: aws.String(cfg.ServiceRole),
	}
	if cfg.TimeoutMinutes > 0 {
		input.TimeoutInMinutes = aws.Int32(cfg.TimeoutMinutes)
	}
	return input
}
