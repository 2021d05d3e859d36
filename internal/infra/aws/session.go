package aws

import (
	"fmt"

	"invoice-service/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
)

const (
	emptyAWSSessionToken         = ""
	errFailedCreateAWSSessionFmt = "failed to create AWS session: %w"
)

// NewSession builds the single AWS session shared by every service client of
// the process. Static credentials are used only when both keys are present.
func NewSession(cfg *config.AWSConfig) (*session.Session, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
	}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			emptyAWSSessionToken,
		)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf(errFailedCreateAWSSessionFmt, err)
	}

	return sess, nil
}

// EndpointConfig returns per-client overrides for a local emulator
// (DynamoDB Local, LocalStack). It is empty when no endpoint is configured.
func EndpointConfig(cfg *config.AWSConfig) []*aws.Config {
	if cfg.Endpoint == "" {
		return nil
	}

	return []*aws.Config{
		aws.NewConfig().
			WithEndpoint(cfg.Endpoint).
			WithS3ForcePathStyle(true),
	}
}
