package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read on top of the config file.
const (
	EnvRegion              = "AWS_REGION"
	EnvAccount             = "ACCOUNT_ID"
	EnvProfile             = "AWS_PROFILE"
	EnvGitHubOwner         = "GITHUB_OWNER"
	EnvGitHubRepo          = "GITHUB_REPO"
	EnvGitHubBranch        = "GITHUB_BRANCH"
	EnvGitHubToken         = "GITHUB_TOKEN"
	EnvGitHubTokenSecret   = "GITHUB_TOKEN_SECRET"
	EnvProjectName         = "PROJECT_NAME"
	EnvPipelineName        = "PIPELINE_NAME"
	EnvApplicationName     = "APPLICATION_NAME"
	EnvEnvironmentName     = "ENVIRONMENT_NAME"
	EnvSolutionStack       = "SOLUTION_STACK"
	EnvInstanceProfile     = "INSTANCE_PROFILE"
	EnvArtifactBucket      = "ARTIFACT_BUCKET"
	EnvCodeBuildRoleARN    = "CODEBUILD_SERVICE_ROLE_ARN"
	EnvCodePipelineRoleARN = "CODEPIPELINE_SERVICE_ROLE_ARN"
)

// LoadEnvFile loads KEY=value pairs from path into the process environment.
// Variables already set in the environment win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func checkEnv(key string, dst *string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*dst = value
	}
}

func applyEnv(cfg *Config) {
	checkEnv(EnvRegion, &cfg.Region)
	checkEnv(EnvAccount, &cfg.Account)
	checkEnv(EnvProfile, &cfg.Profile)

	checkEnv(EnvGitHubOwner, &cfg.GitHub.Owner)
	checkEnv(EnvGitHubRepo, &cfg.GitHub.Repo)
	checkEnv(EnvGitHubBranch, &cfg.GitHub.Branch)
	checkEnv(EnvGitHubToken, &cfg.GitHub.Token)
	checkEnv(EnvGitHubTokenSecret, &cfg.GitHub.TokenSecret)

	checkEnv(EnvApplicationName, &cfg.Application.Name)
	checkEnv(EnvEnvironmentName, &cfg.Application.EnvironmentName)
	checkEnv(EnvSolutionStack, &cfg.Application.SolutionStack)
	checkEnv(EnvInstanceProfile, &cfg.Application.InstanceProfile)

	checkEnv(EnvProjectName, &cfg.Build.Project)
	checkEnv(EnvCodeBuildRoleARN, &cfg.Build.ServiceRole)

	checkEnv(EnvPipelineName, &cfg.Pipeline.Name)
	checkEnv(EnvCodePipelineRoleARN, &cfg.Pipeline.RoleARN)
	checkEnv(EnvArtifactBucket, &cfg.Pipeline.ArtifactBucket)
}
