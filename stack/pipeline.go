package stack

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodepipeline"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsevents"
	"github.com/aws/aws-cdk-go/awscdk/v2/awseventstargets"
	"github.com/aws/jsii-runtime-go"

	"github.com/30Piraten/cicd/pipeline"
)

// Pipeline related resources
func createPipelineResources(resources *pipelineResources, cfg pipeline.PipelineConfig) awscodepipeline.CfnPipeline {
	codePipeline := createPipeline(resources, cfg)

	if resources.alarmTopic != nil {
		createPipelineFailureRule(resources, cfg.Name)
	}

	return codePipeline
}

func createPipeline(resources *pipelineResources, cfg pipeline.PipelineConfig) awscodepipeline.CfnPipeline {
	stages := make([]interface{}, 0, len(cfg.Stages))
	for _, stage := range cfg.Stages {
		stages = append(stages, createStage(resources, stage))
	}

	return awscodepipeline.NewCfnPipeline(resources.stack, jsii.String("CodePipeline"), &awscodepipeline.CfnPipelineProps{
		Name:    jsii.String(cfg.Name),
		RoleArn: jsii.String(cfg.RoleARN),
		ArtifactStore: &awscodepipeline.CfnPipeline_ArtifactStoreProperty{
			Type:     jsii.String("S3"),
			Location: jsii.String(cfg.ArtifactBucket),
		},
		Stages: &stages,
	})
}

func createStage(resources *pipelineResources, stage pipeline.Stage) *awscodepipeline.CfnPipeline_StageDeclarationProperty {
	actions := make([]interface{}, 0, len(stage.Actions))
	for _, action := range stage.Actions {
		actions = append(actions, createAction(resources, action))
	}
	return &awscodepipeline.CfnPipeline_StageDeclarationProperty{
		Name:    jsii.String(stage.Name),
		Actions: &actions,
	}
}

func createAction(resources *pipelineResources, action pipeline.Action) *awscodepipeline.CfnPipeline_ActionDeclarationProperty {
	configuration := make(map[string]*string, len(action.Configuration))
	for k, v := range action.Configuration {
		configuration[k] = jsii.String(v)
	}
	if _, ok := configuration["OAuthToken"]; ok {
		configuration["OAuthToken"] = resources.token
	}

	decl := &awscodepipeline.CfnPipeline_ActionDeclarationProperty{
		Name: jsii.String(action.Name),
		ActionTypeId: &awscodepipeline.CfnPipeline_ActionTypeIdProperty{
			Category: jsii.String(string(action.Category)),
			Owner:    jsii.String(action.Owner),
			Provider: jsii.String(action.Provider),
			Version:  jsii.String(action.Version),
		},
		Configuration: &configuration,
	}

	if len(action.InputArtifacts) > 0 {
		inputs := make([]interface{}, 0, len(action.InputArtifacts))
		for _, name := range action.InputArtifacts {
			inputs = append(inputs, &awscodepipeline.CfnPipeline_InputArtifactProperty{Name: jsii.String(name)})
		}
		decl.InputArtifacts = &inputs
	}
	if len(action.OutputArtifacts) > 0 {
		outputs := make([]interface{}, 0, len(action.OutputArtifacts))
		for _, name := range action.OutputArtifacts {
			outputs = append(outputs, &awscodepipeline.CfnPipeline_OutputArtifactProperty{Name: jsii.String(name)})
		}
		decl.OutputArtifacts = &outputs
	}
	return decl
}

// createPipelineFailureRule notifies the alarm topic when an execution fails.
// CodePipeline publishes no failure metric, so this listens to its events.
func createPipelineFailureRule(resources *pipelineResources, pipelineName string) awsevents.Rule {
	return awsevents.NewRule(resources.stack, jsii.String("PipelineFailureRule"), &awsevents.RuleProps{
		RuleName:    jsii.String("PipelineFailureRule"),
		Description: jsii.String("Alert when a CodePipeline execution fails"),
		EventPattern: &awsevents.EventPattern{
			Source:     jsii.Strings("aws.codepipeline"),
			DetailType: jsii.Strings("CodePipeline Pipeline Execution State Change"),
			Detail: &map[string]interface{}{
				"pipeline": []string{pipelineName},
				"state":    []string{"FAILED"},
			},
		},
		Targets: &[]awsevents.IRuleTarget{
			awseventstargets.NewSnsTopic(resources.alarmTopic, nil),
		},
	})
}
