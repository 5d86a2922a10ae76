package provision

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline"
	cptypes "github.com/aws/aws-sdk-go-v2/service/codepipeline/types"

	"github.com/30Piraten/cicd/pipeline"
)

// CreatePipeline submits the pipeline definition. The build project and the
// Beanstalk environment are referenced by name only.
func (p *Provisioner) CreatePipeline(ctx context.Context, cfg pipeline.PipelineConfig) error {
	p.log.WithField("pipeline", cfg.Name).Info("Creating CodePipeline...")

	out, err := p.codepipeline.CreatePipeline(ctx, &codepipeline.CreatePipelineInput{
		Pipeline: pipelineDeclaration(cfg),
	})
	if err != nil {
		return fmt.Errorf("create pipeline %s: %w", cfg.Name, err)
	}

	entry := p.log.WithField("pipeline", cfg.Name)
	if out.Pipeline != nil && out.Pipeline.Version != nil {
		entry = entry.WithField("version", *out.Pipeline.Version)
	}
	entry.Info("CodePipeline created.")
	return nil
}

func pipelineDeclaration(cfg pipeline.PipelineConfig) *cptypes.PipelineDeclaration {
	stages := make([]cptypes.StageDeclaration, 0, len(cfg.Stages))
	for _, stage := range cfg.Stages {
		actions := make([]cptypes.ActionDeclaration, 0, len(stage.Actions))
		for _, action := range stage.Actions {
			actions = append(actions, actionDeclaration(action))
		}
		stages = append(stages, cptypes.StageDeclaration{
			Name:    aws.String(stage.Name),
			Actions: actions,
		})
	}

	return &cptypes.PipelineDeclaration{
		Name:    aws.String(cfg.Name),
		RoleArn: aws.String(cfg.RoleARN),
		ArtifactStore: &cptypes.ArtifactStore{
			Type:     cptypes.ArtifactStoreTypeS3,
			Location: aws.String(cfg.ArtifactBucket),
		},
		Stages: stages,
	}
}

func actionDeclaration(action pipeline.Action) cptypes.ActionDeclaration {
	decl := cptypes.ActionDeclaration{
		Name: aws.String(action.Name),
		ActionTypeId: &cptypes.ActionTypeId{
			Category: cptypes.ActionCategory(action.Category),
			Owner:    cptypes.ActionOwner(action.Owner),
			Provider: aws.String(action.Provider),
			Version:  aws.String(action.Version),
		},
		Configuration: action.Configuration,
	}
	for _, name := range action.InputArtifacts {
		decl.InputArtifacts = append(decl.InputArtifacts, cptypes.InputArtifact{Name: aws.String(name)})
	}
	for _, name := range action.OutputArtifacts {
		decl.OutputArtifacts = append(decl.OutputArtifacts, cptypes.OutputArtifact{Name: aws.String(name)})
	}
	return decl
}
