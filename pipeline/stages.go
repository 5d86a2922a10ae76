package pipeline

// Action providers and owners used by the release pipeline.
const (
	OwnerAWS        = "AWS"
	OwnerThirdParty = "ThirdParty"

	ProviderGitHub           = "GitHub"
	ProviderCodeBuild        = "CodeBuild"
	ProviderElasticBeanstalk = "ElasticBeanstalk"

	actionVersion = "1"
)

// NewPipelineConfig assembles the Source, Build and Deploy stages for the
// given application and build project.
func NewPipelineConfig(name, roleARN, artifactBucket string, app ApplicationConfig, build BuildConfig) PipelineConfig {
	return PipelineConfig{
		Name:           name,
		RoleARN:        roleARN,
		ArtifactBucket: artifactBucket,
		Stages: []Stage{
			createSourceStage(build.Source),
			createBuildStage(build.ProjectName),
			createDeployStage(app),
		},
	}
}

func createSourceStage(src SourceRepository) Stage {
	return Stage{
		Name: "Source",
		Actions: []Action{{
			Name:     "GitHubSource",
			Category: CategorySource,
			Owner:    OwnerThirdParty,
			Provider: ProviderGitHub,
			Version:  actionVersion,
			Configuration: map[string]string{
				"Owner":      src.Owner,
				"Repo":       src.Repo,
				"Branch":     src.Branch,
				"OAuthToken": src.Token,
			},
			OutputArtifacts: []string{SourceArtifact},
		}},
	}
}

func createBuildStage(projectName string) Stage {
	return Stage{
		Name: "Build",
		Actions: []Action{{
			Name:     "CodeBuild",
			Category: CategoryBuild,
			Owner:    OwnerAWS,
			Provider: ProviderCodeBuild,
			Version:  actionVersion,
			Configuration: map[string]string{
				"ProjectName": projectName,
			},
			InputArtifacts:  []string{SourceArtifact},
			OutputArtifacts: []string{BuildArtifact},
		}},
	}
}

func createDeployStage(app ApplicationConfig) Stage {
	return Stage{
		Name: "Deploy",
		Actions: []Action{{
			Name:     "DeployToElasticBeanstalk",
			Category: CategoryDeploy,
			Owner:    OwnerAWS,
			Provider: ProviderElasticBeanstalk,
			Version:  actionVersion,
			Configuration: map[string]string{
				"ApplicationName": app.Name,
				"EnvironmentName": app.EnvironmentName,
			},
			InputArtifacts: []string{BuildArtifact},
		}},
	}
}

// Redacted returns a copy of the plan with the GitHub token masked in both
// the build source and every action configuration.
func (p Plan) Redacted() Plan {
	const mask = "********"

	out := p
	if out.Build.Source.Token != "" {
		out.Build.Source.Token = mask
	}

	out.Pipeline.Stages = make([]Stage, len(p.Pipeline.Stages))
	for i, stage := range p.Pipeline.Stages {
		actions := make([]Action, len(stage.Actions))
		for j, action := range stage.Actions {
			cfg := make(map[string]string, len(action.Configuration))
			for k, v := range action.Configuration {
				if k == "OAuthToken" && v != "" {
					v = mask
				}
				cfg[k] = v
			}
			action.Configuration = cfg
			actions[j] = action
		}
		out.Pipeline.Stages[i] = Stage{Name: stage.Name, Actions: actions}
	}
	return out
}
