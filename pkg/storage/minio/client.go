package minio

import (
	"context"
	"fmt"
	"log/slog"

	"gallerist/internal/config"
	"gallerist/internal/provider/registry"
	"gallerist/pkg/common"
	"gallerist/pkg/storage"

	minioclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func init() {
	registry.RegisterProvider("minio", registry.ProviderRegistration{
		ConfigCheck: isConfigured,
		Initializer: initialize,
	})
}

// Checks if the MinIO configuration block is present and the endpoint is set
func isConfigured(cfg *config.Config) bool {
	return cfg.Minio != nil && cfg.Minio.Endpoint != ""
}

// Initializes the MinIO storage client from the configuration
func initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	if !isConfigured(cfg) {
		return nil, fmt.Errorf("MinIO configuration missing or incomplete")
	}
	return NewMinioStorage(cfg.Minio, logger)
}

type MinioStorage struct {
	client *minioclient.Client
	logger *slog.Logger
}

var _ storage.Storage = (*MinioStorage)(nil)

// NewMinioStorage connects to a MinIO (or other S3-compatible) deployment.
// Empty credentials produce an anonymous client, which is enough for
// public-read buckets.
func NewMinioStorage(cfg *config.MinioConfig, logger *slog.Logger) (*MinioStorage, error) {
	client, err := minioclient.New(cfg.Endpoint, &minioclient.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &MinioStorage{
		client: client,
		logger: logger,
	}, nil
}

func (m *MinioStorage) ProviderName() common.Provider {
	return common.Minio
}

func (m *MinioStorage) Close() error {
	// The MinIO client has no explicit shutdown
	return nil
}
