// Package config loads the provisioner settings from built-in defaults, an
// optional YAML file, an optional .env file and the process environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/30Piraten/cicd/pipeline"
)

// Defaults for a fresh sample application.
const (
	DefaultRegion        = "us-east-1"
	DefaultProject       = "sample-app"
	DefaultApplication   = "SampleApp"
	DefaultEnvironment   = "SampleAppEnv"
	DefaultBranch        = "main"
	DefaultSolutionStack = "64bit Amazon Linux 2 v3.5.6 running Python 3.8"
	DefaultBuildSpec     = "buildspec.yml"
	DefaultBuildImage    = "aws/codebuild/standard:5.0"
	DefaultComputeType   = "BUILD_GENERAL1_SMALL"
)

// Config is the full provisioner configuration.
type Config struct {
	Region      string                     `yaml:"region"`
	Account     string                     `yaml:"account"`
	Profile     string                     `yaml:"profile"`
	GitHub      GitHub                     `yaml:"github"`
	Application pipeline.ApplicationConfig `yaml:"application"`
	Build       Build                      `yaml:"build"`
	Pipeline    Pipeline                   `yaml:"pipeline"`
}

// GitHub identifies the source repository. Token and TokenSecret are
// alternatives; TokenSecret names a Secrets Manager secret holding the token.
type GitHub struct {
	Owner       string `yaml:"owner"`
	Repo        string `yaml:"repo"`
	Branch      string `yaml:"branch"`
	Token       string `yaml:"token"`
	TokenSecret string `yaml:"token_secret"`
}

// Build holds the CodeBuild project settings.
type Build struct {
	Project              string            `yaml:"project"`
	BuildSpec            string            `yaml:"buildspec"`
	Image                string            `yaml:"image"`
	ComputeType          string            `yaml:"compute_type"`
	ServiceRole          string            `yaml:"service_role"`
	TimeoutMinutes       int32             `yaml:"timeout_minutes"`
	EnvironmentVariables map[string]string `yaml:"environment_variables"`
}

// Pipeline holds the CodePipeline settings. Name defaults to the build project name.
type Pipeline struct {
	Name           string `yaml:"name"`
	RoleARN        string `yaml:"role_arn"`
	ArtifactBucket string `yaml:"artifact_bucket"`
	CreateBucket   bool   `yaml:"create_bucket"`
	Monitoring     bool   `yaml:"monitoring"`
}

// Default returns a configuration populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Region: DefaultRegion,
		GitHub: GitHub{Branch: DefaultBranch},
		Application: pipeline.ApplicationConfig{
			Name:            DefaultApplication,
			EnvironmentName: DefaultEnvironment,
			SolutionStack:   DefaultSolutionStack,
		},
		Build: Build{
			Project:     DefaultProject,
			BuildSpec:   DefaultBuildSpec,
			Image:       DefaultBuildImage,
			ComputeType: DefaultComputeType,
		},
	}
}

// Load builds the configuration. path may be empty, in which case only the
// defaults and the environment are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	var missing []string
	require := func(value, key string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}

	require(c.Region, EnvRegion)
	require(c.GitHub.Owner, EnvGitHubOwner)
	require(c.GitHub.Repo, EnvGitHubRepo)
	require(c.GitHub.Branch, EnvGitHubBranch)
	if c.GitHub.Token == "" && c.GitHub.TokenSecret == "" {
		missing = append(missing, EnvGitHubToken+" or "+EnvGitHubTokenSecret)
	}
	require(c.Pipeline.ArtifactBucket, EnvArtifactBucket)
	require(c.Build.ServiceRole, EnvCodeBuildRoleARN)
	require(c.Pipeline.RoleARN, EnvCodePipelineRoleARN)

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// PipelineName returns the configured pipeline name or the build project name.
func (c *Config) PipelineName() string {
	if c.Pipeline.Name != "" {
		return c.Pipeline.Name
	}
	return c.Build.Project
}

// Plan turns the configuration into the records submitted to AWS. token is
// the resolved GitHub OAuth token.
func (c *Config) Plan(token string) pipeline.Plan {
	env := make(map[string]string, len(c.Build.EnvironmentVariables)+1)
	for k, v := range c.Build.EnvironmentVariables {
		env[k] = v
	}
	if _, ok := env["AWS_DEFAULT_REGION"]; !ok {
		env["AWS_DEFAULT_REGION"] = c.Region
	}

	app := c.Application
	build := pipeline.BuildConfig{
		ProjectName: c.Build.Project,
		Source: pipeline.SourceRepository{
			Owner:  c.GitHub.Owner,
			Repo:   c.GitHub.Repo,
			Branch: c.GitHub.Branch,
			Token:  token,
		},
		BuildSpec:            c.Build.BuildSpec,
		Image:                c.Build.Image,
		ComputeType:          c.Build.ComputeType,
		EnvironmentVariables: env,
		ServiceRole:          c.Build.ServiceRole,
		TimeoutMinutes:       c.Build.TimeoutMinutes,
	}

	return pipeline.Plan{
		Application: app,
		Build:       build,
		Pipeline:    pipeline.NewPipelineConfig(c.PipelineName(), c.Pipeline.RoleARN, c.Pipeline.ArtifactBucket, app, build),
	}
}
