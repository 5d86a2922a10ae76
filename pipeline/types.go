// Package pipeline holds the configuration records submitted to AWS: the
// Elastic Beanstalk application, the CodeBuild project and the CodePipeline
// definition with its stages and actions.
package pipeline

import "fmt"

// Artifact names passed between stages.
const (
	SourceArtifact = "SourceOutput"
	BuildArtifact  = "BuildOutput"
)

// Category is the CodePipeline action category.
type Category string

const (
	CategorySource Category = "Source"
	CategoryBuild  Category = "Build"
	CategoryDeploy Category = "Deploy"
)

// ApplicationConfig describes the Elastic Beanstalk application and its environment.
type ApplicationConfig struct {
	Name            string `yaml:"name"`
	EnvironmentName string `yaml:"environment"`
	SolutionStack   string `yaml:"solution_stack"`
	// InstanceProfile is optional. When empty the environment uses the
	// account default.
	InstanceProfile string `yaml:"instance_profile,omitempty"`
}

// SourceRepository is the GitHub repository a build and pipeline pull from.
type SourceRepository struct {
	Owner  string `yaml:"owner"`
	Repo   string `yaml:"repo"`
	Branch string `yaml:"branch"`
	Token  string `yaml:"token"`
}

// URL returns the HTTPS clone URL of the repository.
func (s SourceRepository) URL() string {
	return fmt.Sprintf("https://github.com/%s/%s.git", s.Owner, s.Repo)
}

// BuildConfig describes the CodeBuild project.
type BuildConfig struct {
	ProjectName          string            `yaml:"project"`
	Source               SourceRepository  `yaml:"source"`
	BuildSpec            string            `yaml:"buildspec"`
	Image                string            `yaml:"image"`
	ComputeType          string            `yaml:"compute_type"`
	EnvironmentVariables map[string]string `yaml:"environment_variables"`
	ServiceRole          string            `yaml:"service_role"`
	TimeoutMinutes       int32             `yaml:"timeout_minutes,omitempty"`
}

// Action is a single operation inside a stage.
type Action struct {
	Name            string            `yaml:"name"`
	Category        Category          `yaml:"category"`
	Owner           string            `yaml:"owner"`
	Provider        string            `yaml:"provider"`
	Version         string            `yaml:"version"`
	Configuration   map[string]string `yaml:"configuration"`
	InputArtifacts  []string          `yaml:"input_artifacts,omitempty"`
	OutputArtifacts []string          `yaml:"output_artifacts,omitempty"`
}

// Stage is a named, ordered group of actions.
type Stage struct {
	Name    string   `yaml:"name"`
	Actions []Action `yaml:"actions"`
}

// PipelineConfig describes the CodePipeline.
type PipelineConfig struct {
	Name           string  `yaml:"name"`
	RoleARN        string  `yaml:"role_arn"`
	ArtifactBucket string  `yaml:"artifact_bucket"`
	Stages         []Stage `yaml:"stages"`
}

// Plan is everything one provisioning run submits.
type Plan struct {
	Application ApplicationConfig `yaml:"application"`
	Build       BuildConfig       `yaml:"build"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
}
