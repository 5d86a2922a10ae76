package provision

import (
	"context"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/codebuild"
	cbtypes "github.com/aws/aws-sdk-go-v2/service/codebuild/types"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline"
	"github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"
	ebtypes "github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/30Piraten/cicd/pipeline"
)

// recorder is shared by the fakes so tests can assert on call order.
type recorder struct {
	calls []string
	// errs maps a call name to the error it returns
	errs map[string]error
}

func (r *recorder) record(name string) error {
	r.calls = append(r.calls, name)
	return r.errs[name]
}

type fakeBeanstalk struct {
	rec      *recorder
	appInput *elasticbeanstalk.CreateApplicationInput
	envInput *elasticbeanstalk.CreateEnvironmentInput
}

func (f *fakeBeanstalk) CreateApplication(_ context.Context, in *elasticbeanstalk.CreateApplicationInput, _ ...func(*elasticbeanstalk.Options)) (*elasticbeanstalk.CreateApplicationOutput, error) {
	f.appInput = in
	if err := f.rec.record("CreateApplication"); err != nil {
		return nil, err
	}
	return &elasticbeanstalk.CreateApplicationOutput{}, nil
}

func (f *fakeBeanstalk) CreateEnvironment(_ context.Context, in *elasticbeanstalk.CreateEnvironmentInput, _ ...func(*elasticbeanstalk.Options)) (*elasticbeanstalk.CreateEnvironmentOutput, error) {
	f.envInput = in
	if err := f.rec.record("CreateEnvironment"); err != nil {
		return nil, err
	}
	return &elasticbeanstalk.CreateEnvironmentOutput{
		EnvironmentId: aws.String("e-abc123"),
		Status:        ebtypes.EnvironmentStatusLaunching,
	}, nil
}

type fakeCodeBuild struct {
	rec   *recorder
	input *codebuild.CreateProjectInput
}

func (f *fakeCodeBuild) CreateProject(_ context.Context, in *codebuild.CreateProjectInput, _ ...func(*codebuild.Options)) (*codebuild.CreateProjectOutput, error) {
	f.input = in
	if err := f.rec.record("CreateProject"); err != nil {
		return nil, err
	}
	return &codebuild.CreateProjectOutput{
		Project: &cbtypes.Project{Arn: aws.String("arn:aws:codebuild:us-east-1:123456789012:project/" + aws.ToString(in.Name))},
	}, nil
}

type fakeCodePipeline struct {
	rec   *recorder
	input *codepipeline.CreatePipelineInput
}

func (f *fakeCodePipeline) CreatePipeline(_ context.Context, in *codepipeline.CreatePipelineInput, _ ...func(*codepipeline.Options)) (*codepipeline.CreatePipelineOutput, error) {
	f.input = in
	if err := f.rec.record("CreatePipeline"); err != nil {
		return nil, err
	}
	out := *in.Pipeline
	out.Version = aws.Int32(1)
	return &codepipeline.CreatePipelineOutput{Pipeline: &out}, nil
}

type fakeBuckets struct {
	rec   *recorder
	input *s3.CreateBucketInput
}

func (f *fakeBuckets) CreateBucket(_ context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.input = in
	if err := f.rec.record("CreateBucket"); err != nil {
		return nil, err
	}
	return &s3.CreateBucketOutput{}, nil
}

type fakeSecrets struct {
	value *string
	err   error
	input *secretsmanager.GetSecretValueInput
}

func (f *fakeSecrets) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: f.value}, nil
}

type harness struct {
	rec       *recorder
	beanstalk *fakeBeanstalk
	codebuild *fakeCodeBuild
	pipeline  *fakeCodePipeline
	buckets   *fakeBuckets
	logs      *memory.Handler
}

func newHarness() *harness {
	rec := &recorder{errs: map[string]error{}}
	return &harness{
		rec:       rec,
		beanstalk: &fakeBeanstalk{rec: rec},
		codebuild: &fakeCodeBuild{rec: rec},
		pipeline:  &fakeCodePipeline{rec: rec},
		buckets:   &fakeBuckets{rec: rec},
		logs:      memory.New(),
	}
}

func (h *harness) provisioner(opts ...Option) *Provisioner {
	logger := &log.Logger{Handler: h.logs, Level: log.DebugLevel}
	opts = append([]Option{WithLogger(logger)}, opts...)
	return New(h.beanstalk, h.codebuild, h.pipeline, opts...)
}

func (h *harness) messages() []string {
	var out []string
	for _, e := range h.logs.Entries {
		out = append(out, e.Message)
	}
	return out
}

func testPlan() pipeline.Plan {
	app := pipeline.ApplicationConfig{
		Name:            "SampleApp",
		EnvironmentName: "SampleAppEnv",
		SolutionStack:   "64bit Amazon Linux 2 v3.5.6 running Python 3.8",
	}
	build := pipeline.BuildConfig{
		ProjectName: "sample-app",
		Source: pipeline.SourceRepository{
			Owner:  "octocat",
			Repo:   "hello-world",
			Branch: "main",
			Token:  "ghp_secret",
		},
		BuildSpec:            "buildspec.yml",
		Image:                "aws/codebuild/standard:5.0",
		ComputeType:          "BUILD_GENERAL1_SMALL",
		EnvironmentVariables: map[string]string{"AWS_DEFAULT_REGION": "us-east-1"},
		ServiceRole:          "arn:aws:iam::123456789012:role/codebuild",
	}
	return pipeline.Plan{
		Application: app,
		Build:       build,
		Pipeline:    pipeline.NewPipelineConfig("sample-app", "arn:aws:iam::123456789012:role/pipeline", "artifacts", app, build),
	}
}

