// Package stack renders the provisioning plan as a CDK stack, for teams that
// deploy through CloudFormation instead of direct API calls.
package stack

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// NewPipelineStack declares the Beanstalk application and environment, the
// CodeBuild project and the CodePipeline from props.Plan.
func NewPipelineStack(scope constructs.Construct, id string, props *PipelineStackProps) awscdk.Stack {
	var sprops awscdk.StackProps
	if props != nil {
		sprops = props.StackProps
	} else {
		props = &PipelineStackProps{}
	}
	stack := awscdk.NewStack(scope, &id, &sprops)

	resources := &pipelineResources{
		stack: stack,
		token: jsii.String(props.Plan.Build.Source.Token),
	}
	if props.TokenSecret != "" {
		resources.token = githubToken(props.TokenSecret)
	}
	if props.CreateBucket {
		resources.artifactBucket = createArtifactBucket(stack, props.Plan.Pipeline.ArtifactBucket)
	}
	if props.Monitoring {
		resources.alarmTopic = createMonitoringResources(stack)
	}

	app, env := createBeanstalkResources(resources, props.Plan.Application)
	project := createCodeBuildResources(resources, props.Plan.Build)
	codePipeline := createPipelineResources(resources, props.Plan.Pipeline)

	env.AddDependency(app)
	codePipeline.AddDependency(project)
	codePipeline.AddDependency(env)
	if resources.artifactBucket != nil {
		codePipeline.Node().AddDependency(resources.artifactBucket)
	}

	createStackOutputs(stack, codePipeline, project, env)

	return stack
}

func githubToken(secretID string) *string {
	return awscdk.SecretValue_SecretsManager(jsii.String(secretID), nil).UnsafeUnwrap()
}
