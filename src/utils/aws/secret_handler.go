package aws_handler

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
)

// SecretsAPI is the slice of the Secrets Manager client used here.
type SecretsAPI interface {
	GetSecretValueWithContext(ctx aws.Context, input *secretsmanager.GetSecretValueInput, opts ...request.Option) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretGetter resolves a secret id to its string value.
type SecretGetter interface {
	GetSecretValue(ctx context.Context, secretID string) (string, error)
}

type SecretManager struct {
	svc SecretsAPI
}

func NewSecretManager(svc SecretsAPI) *SecretManager {
	return &SecretManager{svc: svc}
}

func (s *SecretManager) GetSecretValue(ctx context.Context, secretID string) (string, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	}

	result, err := s.svc.GetSecretValueWithContext(ctx, input)
	if err != nil {
		return "", err
	}
	if result.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", secretID)
	}

	return *result.SecretString, nil
}
