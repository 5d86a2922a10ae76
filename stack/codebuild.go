package stack

import (
	"maps"
	"slices"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudwatch"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudwatchactions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodebuild"
	"github.com/aws/jsii-runtime-go"

	"github.com/30Piraten/cicd/pipeline"
)

// CodeBuild related resources
func createCodeBuildResources(resources *pipelineResources, cfg pipeline.BuildConfig) awscodebuild.CfnProject {
	project := createCodeBuildProject(resources, cfg)

	if resources.alarmTopic != nil {
		codeBuildAlarm := createCodeBuildAlarm(resources.stack, cfg.ProjectName)
		codeBuildAlarm.AddAlarmAction(awscloudwatchactions.NewSnsAction(resources.alarmTopic))
	}

	return project
}

func createCodeBuildProject(resources *pipelineResources, cfg pipeline.BuildConfig) awscodebuild.CfnProject {
	var vars []interface{}
	for _, name := range slices.Sorted(maps.Keys(cfg.EnvironmentVariables)) {
		vars = append(vars, &awscodebuild.CfnProject_EnvironmentVariableProperty{
			Name:  jsii.String(name),
			Value: jsii.String(cfg.EnvironmentVariables[name]),
			Type:  jsii.String("PLAINTEXT"),
		})
	}

	props := &awscodebuild.CfnProjectProps{
		Name: jsii.String(cfg.ProjectName),
		Source: &awscodebuild.CfnProject_SourceProperty{
			Type:      jsii.String("GITHUB"),
			Location:  jsii.String(cfg.Source.URL()),
			BuildSpec: jsii.String(cfg.BuildSpec),
			Auth: &awscodebuild.CfnProject_SourceAuthProperty{
				Type:     jsii.String("OAUTH"),
				Resource: resources.token,
			},
		},
		Artifacts: &awscodebuild.CfnProject_ArtifactsProperty{
			Type: jsii.String("CODEPIPELINE"),
		},
		Environment: &awscodebuild.CfnProject_EnvironmentProperty{
			Type:                 jsii.String("LINUX_CONTAINER"),
			Image:                jsii.String(cfg.Image),
			ComputeType:          jsii.String(cfg.ComputeType),
			EnvironmentVariables: &vars,
		},
		ServiceRole: jsii.String(cfg.ServiceRole),
	}
	if cfg.TimeoutMinutes > 0 {
		props.TimeoutInMinutes = jsii.Number(float64(cfg.TimeoutMinutes))
	}

	return awscodebuild.NewCfnProject(resources.stack, jsii.String("CodeBuildProject"), props)
}

func createCodeBuildAlarm(stack awscdk.Stack, projectName string) awscloudwatch.Alarm {
	return alarm(stack, "CodeBuildFailureAlarm", "Alert when the CodeBuild project fails",
		awscloudwatch.NewMetric(&awscloudwatch.MetricProps{
			Namespace:  jsii.String("AWS/CodeBuild"),
			MetricName: jsii.String("FailedBuilds"),
			Statistic:  jsii.String("Sum"),
			Period:     awscdk.Duration_Minutes(jsii.Number(5)),
			DimensionsMap: &map[string]*string{
				"ProjectName": jsii.String(projectName),
			},
			Unit: awscloudwatch.Unit_COUNT,
		}))
}
