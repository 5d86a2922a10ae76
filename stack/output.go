package stack

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodebuild"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodepipeline"
	"github.com/aws/aws-cdk-go/awscdk/v2/awselasticbeanstalk"
	"github.com/aws/jsii-runtime-go"
)

func createStackOutputs(stack awscdk.Stack, codePipeline awscodepipeline.CfnPipeline,
	project awscodebuild.CfnProject, env awselasticbeanstalk.CfnEnvironment) {
	awscdk.NewCfnOutput(stack, jsii.String("CodePipelineNameOutput"), &awscdk.CfnOutputProps{
		Value: codePipeline.Ref(),
	})

	awscdk.NewCfnOutput(stack, jsii.String("CodeBuildProjectOutput"), &awscdk.CfnOutputProps{
		Value: project.Ref(),
	})

	awscdk.NewCfnOutput(stack, jsii.String("BeanstalkEnvironmentOutput"), &awscdk.CfnOutputProps{
		Value: env.Ref(),
	})
}
