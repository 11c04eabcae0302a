package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallerist/internal/config"
	"gallerist/internal/provider/registry"
	"gallerist/pkg/storage"
)

var errAlphaInit = errors.New("alpha initializer reached")

// Two synthetic providers stand in for the real drivers: alpha is configured
// when the gcp block exists, beta when the aws block exists.
func init() {
	registry.RegisterProvider("alpha", registry.ProviderRegistration{
		ConfigCheck: func(cfg *config.Config) bool { return cfg.GCP != nil },
		Initializer: func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
			return nil, errAlphaInit
		},
	})
	registry.RegisterProvider("beta", registry.ProviderRegistration{
		ConfigCheck: func(cfg *config.Config) bool { return cfg.AWS != nil },
		Initializer: func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
			return nil, errors.New("beta initializer reached")
		},
	})
}

func newTestFactory(cfg *config.Config) *Factory {
	return NewFactory(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGetConfiguredProviders(t *testing.T) {
	t.Run("none configured", func(t *testing.T) {
		f := newTestFactory(&config.Config{})
		assert.Empty(t, f.GetConfiguredProviders())
	})

	t.Run("sorted subset", func(t *testing.T) {
		f := newTestFactory(&config.Config{
			GCP: &config.GCPConfig{Project: "p"},
			AWS: &config.AWSConfig{Region: "us-east-1"},
		})
		assert.Equal(t, []string{"alpha", "beta"}, f.GetConfiguredProviders())
	})
}

func TestIsConfigured(t *testing.T) {
	f := newTestFactory(&config.Config{GCP: &config.GCPConfig{Project: "p"}})

	assert.True(t, f.IsConfigured("alpha"))
	assert.False(t, f.IsConfigured("beta"))
	assert.False(t, f.IsConfigured("unregistered"))
}

func TestResolveProvider(t *testing.T) {
	t.Run("flag wins over everything", func(t *testing.T) {
		f := newTestFactory(&config.Config{Provider: "beta"})

		name, err := f.ResolveProvider("Alpha")
		require.NoError(t, err)
		assert.Equal(t, "alpha", name, "flag values are normalized to lowercase")
	})

	t.Run("configured default", func(t *testing.T) {
		f := newTestFactory(&config.Config{Provider: "beta"})

		name, err := f.ResolveProvider("")
		require.NoError(t, err)
		assert.Equal(t, "beta", name)
	})

	t.Run("single configured provider is implied", func(t *testing.T) {
		f := newTestFactory(&config.Config{GCP: &config.GCPConfig{Project: "p"}})

		name, err := f.ResolveProvider("")
		require.NoError(t, err)
		assert.Equal(t, "alpha", name)
	})

	t.Run("nothing configured", func(t *testing.T) {
		f := newTestFactory(&config.Config{})

		_, err := f.ResolveProvider("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no provider configured")
	})

	t.Run("ambiguous configuration needs the flag", func(t *testing.T) {
		f := newTestFactory(&config.Config{
			GCP: &config.GCPConfig{Project: "p"},
			AWS: &config.AWSConfig{Region: "us-east-1"},
		})

		_, err := f.ResolveProvider("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "multiple providers configured")
	})
}

func TestGetStorageProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported name", func(t *testing.T) {
		f := newTestFactory(&config.Config{})

		_, err := f.GetStorageProvider(ctx, "nonexistent")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported provider")
	})

	t.Run("registered but not configured", func(t *testing.T) {
		f := newTestFactory(&config.Config{})

		_, err := f.GetStorageProvider(ctx, "alpha")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not configured")
	})

	t.Run("initializer errors are wrapped", func(t *testing.T) {
		f := newTestFactory(&config.Config{GCP: &config.GCPConfig{Project: "p"}})

		_, err := f.GetStorageProvider(ctx, "ALPHA")
		require.Error(t, err)
		assert.ErrorIs(t, err, errAlphaInit)
		assert.Contains(t, err.Error(), "failed to initialize provider alpha")
	})
}
