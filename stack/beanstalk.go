package stack

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awselasticbeanstalk"
	"github.com/aws/jsii-runtime-go"

	"github.com/30Piraten/cicd/pipeline"
)

// Elastic Beanstalk related resources
func createBeanstalkResources(resources *pipelineResources, cfg pipeline.ApplicationConfig) (awselasticbeanstalk.CfnApplication, awselasticbeanstalk.CfnEnvironment) {
	app := awselasticbeanstalk.NewCfnApplication(resources.stack, jsii.String("BeanstalkApplication"), &awselasticbeanstalk.CfnApplicationProps{
		ApplicationName: jsii.String(cfg.Name),
	})

	envProps := &awselasticbeanstalk.CfnEnvironmentProps{
		ApplicationName:   jsii.String(cfg.Name),
		EnvironmentName:   jsii.String(cfg.EnvironmentName),
		SolutionStackName: jsii.String(cfg.SolutionStack),
	}
	if cfg.InstanceProfile != "" {
		envProps.OptionSettings = &[]interface{}{
			&awselasticbeanstalk.CfnEnvironment_OptionSettingProperty{
				Namespace:  jsii.String("aws:autoscaling:launchconfiguration"),
				OptionName: jsii.String("IamInstanceProfile"),
				Value:      jsii.String(cfg.InstanceProfile),
			},
		}
	}
	env := awselasticbeanstalk.NewCfnEnvironment(resources.stack, jsii.String("BeanstalkEnvironment"), envProps)

	return app, env
}
