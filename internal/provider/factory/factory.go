package factory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"gallerist/internal/config"
	"gallerist/internal/provider/registry"
	"gallerist/pkg/storage"
)

type Factory struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewFactory(cfg *config.Config, logger *slog.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// Returns a list of providers that are registered and configured
func (f *Factory) GetConfiguredProviders() []string {
	var configuredProviders []string
	allRegistrations := registry.GetAllRegistrations()

	for name, registration := range allRegistrations {
		if registration.ConfigCheck(f.cfg) {
			configuredProviders = append(configuredProviders, name)
		}
	}
	sort.Strings(configuredProviders)
	return configuredProviders
}

// Checks if a specific provider is registered and configured
func (f *Factory) IsConfigured(providerName string) bool {
	registration, exists := registry.GetRegistration(providerName)
	if !exists {
		return false
	}
	return registration.ConfigCheck(f.cfg)
}

// ResolveProvider decides which provider a command targets: the flag value
// when given, otherwise the configured default, otherwise the single
// configured provider when there is exactly one.
func (f *Factory) ResolveProvider(flagValue string) (string, error) {
	if flagValue != "" {
		return strings.ToLower(flagValue), nil
	}

	if f.cfg.Provider != "" {
		return strings.ToLower(f.cfg.Provider), nil
	}

	configured := f.GetConfiguredProviders()
	switch len(configured) {
	case 1:
		return configured[0], nil
	case 0:
		return "", fmt.Errorf("no provider configured. Run 'gallerist config init' and fill in one of: %v", registry.GetSupportedProviders())
	default:
		return "", fmt.Errorf("multiple providers configured (%v); pass --provider or set the 'provider' config key", configured)
	}
}

// Initializes and returns the storage client for the specified provider
func (f *Factory) GetStorageProvider(ctx context.Context, providerName string) (storage.Storage, error) {
	normalizedName := strings.ToLower(providerName)
	providerLogger := f.logger.With("provider", normalizedName)

	registration, exists := registry.GetRegistration(normalizedName)

	if !exists {
		return nil, fmt.Errorf("unsupported provider: %s. Supported providers are: %v", providerName, registry.GetSupportedProviders())
	}

	if !registration.ConfigCheck(f.cfg) {
		return nil, fmt.Errorf("provider '%s' is not configured. Use 'gallerist config set %s.<key> <value>' (e.g., 'gcp.project' or 'minio.endpoint')", normalizedName, normalizedName)
	}

	// Dynamically initialize the provider using the registered initializer function
	client, err := registration.Initializer(ctx, f.cfg, providerLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider %s: %w", normalizedName, err)
	}

	return client, nil
}
