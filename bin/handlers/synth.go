package handlers

import (
	"github.com/apex/log"
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/30Piraten/cicd/config"
	"github.com/30Piraten/cicd/stack"
)

// StackName is the CloudFormation stack id used by synth.
const StackName = "CICDPipelineStack"

// Synth renders the configuration as a CDK cloud assembly in outDir.
func Synth(configPath, envFile, outDir string) error {
	cfg, err := loadConfig(configPath, envFile)
	if err != nil {
		return err
	}

	defer jsii.Close()

	app := awscdk.NewApp(&awscdk.AppProps{
		Outdir: jsii.String(outDir),
	})
	stack.NewPipelineStack(app, StackName, &stack.PipelineStackProps{
		StackProps:   awscdk.StackProps{Env: env(cfg)},
		Plan:         cfg.Plan(cfg.GitHub.Token),
		TokenSecret:  cfg.GitHub.TokenSecret,
		CreateBucket: cfg.Pipeline.CreateBucket,
		Monitoring:   cfg.Pipeline.Monitoring,
	})
	app.Synth(nil)

	log.WithFields(log.Fields{"stack": StackName, "out": outDir}).Info("Cloud assembly written.")
	return nil
}

func env(cfg *config.Config) *awscdk.Environment {
	e := &awscdk.Environment{Region: jsii.String(cfg.Region)}
	if cfg.Account != "" {
		e.Account = jsii.String(cfg.Account)
	}
	return e
}
