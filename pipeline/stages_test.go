package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp() ApplicationConfig {
	return ApplicationConfig{
		Name:            "SampleApp",
		EnvironmentName: "SampleAppEnv",
		SolutionStack:   "64bit Amazon Linux 2 v3.5.6 running Python 3.8",
	}
}

func testBuild() BuildConfig {
	return BuildConfig{
		ProjectName: "sample-app",
		Source: SourceRepository{
			Owner:  "octocat",
			Repo:   "hello-world",
			Branch: "main",
			Token:  "ghp_secret",
		},
		BuildSpec:   "buildspec.yml",
		Image:       "aws/codebuild/standard:5.0",
		ComputeType: "BUILD_GENERAL1_SMALL",
		ServiceRole: "arn:aws:iam::123456789012:role/codebuild",
	}
}

func TestNewPipelineConfig_StageOrder(t *testing.T) {
	cfg := NewPipelineConfig("sample-app", "arn:aws:iam::123456789012:role/pipeline", "artifacts", testApp(), testBuild())

	require.Len(t, cfg.Stages, 3)
	names := []string{cfg.Stages[0].Name, cfg.Stages[1].Name, cfg.Stages[2].Name}
	assert.Equal(t, []string{"Source", "Build", "Deploy"}, names)

	assert.Equal(t, "sample-app", cfg.Name)
	assert.Equal(t, "arn:aws:iam::123456789012:role/pipeline", cfg.RoleARN)
	assert.Equal(t, "artifacts", cfg.ArtifactBucket)
}

func TestNewPipelineConfig_ArtifactFlow(t *testing.T) {
	cfg := NewPipelineConfig("p", "role", "bucket", testApp(), testBuild())

	source := cfg.Stages[0].Actions
	build := cfg.Stages[1].Actions
	deploy := cfg.Stages[2].Actions
	require.Len(t, source, 1)
	require.Len(t, build, 1)
	require.Len(t, deploy, 1)

	assert.Empty(t, source[0].InputArtifacts)
	assert.Equal(t, []string{"SourceOutput"}, source[0].OutputArtifacts)
	assert.Equal(t, []string{"SourceOutput"}, build[0].InputArtifacts)
	assert.Equal(t, []string{"BuildOutput"}, build[0].OutputArtifacts)
	assert.Equal(t, []string{"BuildOutput"}, deploy[0].InputArtifacts)
	assert.Empty(t, deploy[0].OutputArtifacts)

	// every input must be produced by an earlier stage
	produced := map[string]bool{}
	for _, stage := range cfg.Stages {
		for _, action := range stage.Actions {
			for _, in := range action.InputArtifacts {
				assert.True(t, produced[in], "input %s consumed before it is produced", in)
			}
		}
		for _, action := range stage.Actions {
			for _, out := range action.OutputArtifacts {
				produced[out] = true
			}
		}
	}
}

func TestNewPipelineConfig_SourceConfiguration(t *testing.T) {
	build := testBuild()
	cfg := NewPipelineConfig("p", "role", "bucket", testApp(), build)

	action := cfg.Stages[0].Actions[0]
	assert.Equal(t, CategorySource, action.Category)
	assert.Equal(t, "ThirdParty", action.Owner)
	assert.Equal(t, "GitHub", action.Provider)
	assert.Equal(t, "1", action.Version)
	assert.Equal(t, map[string]string{
		"Owner":      "octocat",
		"Repo":       "hello-world",
		"Branch":     "main",
		"OAuthToken": "ghp_secret",
	}, action.Configuration)
}

func TestNewPipelineConfig_BuildAndDeployConfiguration(t *testing.T) {
	cfg := NewPipelineConfig("p", "role", "bucket", testApp(), testBuild())

	build := cfg.Stages[1].Actions[0]
	assert.Equal(t, CategoryBuild, build.Category)
	assert.Equal(t, "AWS", build.Owner)
	assert.Equal(t, "CodeBuild", build.Provider)
	assert.Equal(t, map[string]string{"ProjectName": "sample-app"}, build.Configuration)

	deploy := cfg.Stages[2].Actions[0]
	assert.Equal(t, CategoryDeploy, deploy.Category)
	assert.Equal(t, "ElasticBeanstalk", deploy.Provider)
	assert.Equal(t, map[string]string{
		"ApplicationName": "SampleApp",
		"EnvironmentName": "SampleAppEnv",
	}, deploy.Configuration)
}

func TestSourceRepository_URL(t *testing.T) {
	src := SourceRepository{Owner: "octocat", Repo: "hello-world"}
	assert.Equal(t, "https://github.com/octocat/hello-world.git", src.URL())
}

func TestPlan_Redacted(t *testing.T) {
	build := testBuild()
	plan := Plan{
		Application: testApp(),
		Build:       build,
		Pipeline:    NewPipelineConfig("p", "role", "bucket", testApp(), build),
	}

	redacted := plan.Redacted()

	assert.Equal(t, "********", redacted.Build.Source.Token)
	assert.Equal(t, "********", redacted.Pipeline.Stages[0].Actions[0].Configuration["OAuthToken"])
	assert.Equal(t, "octocat", redacted.Pipeline.Stages[0].Actions[0].Configuration["Owner"])

	// original is untouched
	assert.Equal(t, "ghp_secret", plan.Build.Source.Token)
	assert.Equal(t, "ghp_secret", plan.Pipeline.Stages[0].Actions[0].Configuration["OAuthToken"])
}

func TestPlan_RedactedEmptyToken(t *testing.T) {
	build := testBuild()
	build.Source.Token = ""
	plan := Plan{Build: build, Pipeline: NewPipelineConfig("p", "role", "bucket", testApp(), build)}

	redacted := plan.Redacted()
	assert.Empty(t, redacted.Build.Source.Token)
	assert.Empty(t, redacted.Pipeline.Stages[0].Actions[0].Configuration["OAuthToken"])
}
