package aws_handler

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
)

// NewRegionSecretManager opens an AWS session for region and returns a
// SecretManager backed by it. Credentials come from the default chain.
func NewRegionSecretManager(region string) (*SecretManager, error) {
	if region == "" {
		return nil, fmt.Errorf("aws region is required to read secrets")
	}
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}
	return NewSecretManager(secretsmanager.New(sess)), nil
}
