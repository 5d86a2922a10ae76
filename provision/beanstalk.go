package provision

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"
	ebtypes "github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk/types"

	"github.com/30Piraten/cicd/pipeline"
)

// CreateHostingEnvironment creates the Elastic Beanstalk application and then
// an environment under the same application name.
func (p *Provisioner) CreateHostingEnvironment(ctx context.Context, cfg pipeline.ApplicationConfig) error {
	p.log.WithField("application", cfg.Name).Info("Creating Elastic Beanstalk Application...")
	if _, err := p.beanstalk.CreateApplication(ctx, &elasticbeanstalk.CreateApplicationInput{
		ApplicationName: aws.String(cfg.Name),
	}); err != nil {
		return fmt.Errorf("create application %s: %w", cfg.Name, err)
	}

	p.log.WithField("environment", cfg.EnvironmentName).Info("Creating Elastic Beanstalk Environment...")
	out, err := p.beanstalk.CreateEnvironment(ctx, environmentInput(cfg))
	if err != nil {
		return fmt.Errorf("create environment %s: %w", cfg.EnvironmentName, err)
	}

	p.log.WithFields(log.Fields{
		"environment_id": aws.ToString(out.EnvironmentId),
		"status":         out.Status,
	}).Info("Elastic Beanstalk environment created.")
	return nil
}

func environmentInput(cfg pipeline.ApplicationConfig) *elasticbeanstalk.CreateEnvironmentInput {
	input := &elasticbeanstalk.CreateEnvironmentInput{
		ApplicationName:   aws.String(cfg.Name),
		EnvironmentName:   aws.String(cfg.EnvironmentName),
		SolutionStackName: aws.String(cfg.SolutionStack),
	}
	if cfg.InstanceProfile != "" {
		input.OptionSettings = []ebtypes.ConfigurationOptionSetting{{
			Namespace:  aws.String("aws:autoscaling:launchconfiguration"),
			OptionName: aws.String("IamInstanceProfile"),
			Value:      aws.String(cfg.InstanceProfile),
		}}
	}
	return input
}
