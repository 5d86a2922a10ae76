package stack

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssns"

	"github.com/30Piraten/cicd/pipeline"
)

// PipelineStackProps configures NewPipelineStack.
type PipelineStackProps struct {
	awscdk.StackProps

	Plan pipeline.Plan
	// TokenSecret, when set, replaces the plan's GitHub token with a
	// Secrets Manager dynamic reference.
	TokenSecret string
	// CreateBucket declares the artifact bucket in the stack instead of
	// expecting it to exist.
	CreateBucket bool
	// Monitoring adds an SNS topic, a CodeBuild failure alarm and a
	// pipeline failure rule.
	Monitoring bool
}

type pipelineResources struct {
	stack          awscdk.Stack
	token          *string
	artifactBucket awss3.IBucket
	alarmTopic     awssns.ITopic
}
