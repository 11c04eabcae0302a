package aws

import (
	"context"
	"fmt"
	"log/slog"

	"gallerist/internal/config"
	"gallerist/internal/provider/registry"
	"gallerist/pkg/common"
	"gallerist/pkg/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func init() {
	registry.RegisterProvider("aws", registry.ProviderRegistration{
		ConfigCheck: isConfigured,
		Initializer: initialize,
	})
}

// Checks if the AWS configuration block is present and the region is set
func isConfigured(cfg *config.Config) bool {
	return cfg.AWS != nil && cfg.AWS.Region != ""
}

// Initializes the S3 storage client from the configuration
func initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	if !isConfigured(cfg) {
		return nil, fmt.Errorf("AWS configuration missing or incomplete")
	}
	return NewS3Storage(ctx, cfg.AWS, logger)
}

type S3Storage struct {
	client    *s3.Client
	presigner *s3.PresignClient
	region    string
	endpoint  string
	logger    *slog.Logger
}

var _ storage.Storage = (*S3Storage)(nil)

func NewS3Storage(ctx context.Context, cfg *config.AWSConfig, logger *slog.Logger) (*S3Storage, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	// S3-compatible endpoints (LocalStack, on-prem gateways) need path-style addressing
	var clientOpts []func(*s3.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, clientOpts...)

	return &S3Storage{
		client:    client,
		presigner: s3.NewPresignClient(client),
		region:    cfg.Region,
		endpoint:  cfg.Endpoint,
		logger:    logger,
	}, nil
}

func (s *S3Storage) ProviderName() common.Provider {
	return common.AWS
}

func (s *S3Storage) Close() error {
	// The SDK client holds no resources that require explicit shutdown
	return nil
}
