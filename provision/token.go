package provision

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsAPI is the subset of the Secrets Manager client used here.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// ErrEmptySecret is returned when the token secret has no string value.
var ErrEmptySecret = errors.New("secret has no string value")

// ResolveGitHubToken reads the GitHub OAuth token from Secrets Manager.
// secretID may be a secret name or ARN.
func ResolveGitHubToken(ctx context.Context, api SecretsAPI, secretID string) (string, error) {
	out, err := api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get secret value %s: %w", secretID, err)
	}

	token := aws.ToString(out.SecretString)
	if token == "" {
		return "", fmt.Errorf("%s: %w", secretID, ErrEmptySecret)
	}
	return token, nil
}
