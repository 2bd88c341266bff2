package aws

import (
	"context"
	"fmt"
	"os"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// EndpointFromEnv returns the custom endpoint used for LocalStack style setups.
// AWS_ENDPOINT wins over the legacy per-service variables.
func EndpointFromEnv() string {
	for _, key := range []string{"AWS_ENDPOINT", "AWS_SNS_ENDPOINT", "AWS_S3_ENDPOINT"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// StaticCredentialsFromEnv returns a static provider when an access key pair
// is set explicitly, as it is for LocalStack.
func StaticCredentialsFromEnv() (sdkaws.CredentialsProvider, bool) {
	key, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
	if key == "" && secret == "" {
		return nil, false
	}
	return credentials.NewStaticCredentialsProvider(key, secret, os.Getenv("AWS_SESSION_TOKEN")), true
}

// LoadAWSConfig loads the default credential chain. When an endpoint override is
// present every client built from the returned config targets it.
func LoadAWSConfig(ctx context.Context) (sdkaws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if region := os.Getenv("AWS_REGION"); region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if provider, ok := StaticCredentialsFromEnv(); ok {
		opts = append(opts, config.WithCredentialsProvider(provider))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return cfg, fmt.Errorf("failed to load aws config: %w", err)
	}

	if endpoint := EndpointFromEnv(); endpoint != "" {
		cfg.BaseEndpoint = sdkaws.String(endpoint)
	}
	return cfg, nil
}
