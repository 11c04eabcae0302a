package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gallerist/internal/config"
	"gallerist/internal/provider/factory"
	"gallerist/internal/service"
	"gallerist/internal/ui/prompt"
	"gallerist/pkg/formatter"
)

// appContainer holds all the shared dependencies for the application
// This includes configuration, service clients, formatters, and the logger
type appContainer struct {
	Config           *config.Config
	ProviderFactory  *factory.Factory
	GalleryService   *service.GalleryService
	StorageFormatter *formatter.StorageFormatter
	Prompter         prompt.Prompter
	Logger           *slog.Logger
	Debug            bool
}

// Creates and initializes a new application container
func newApp(logger *slog.Logger, debug bool) (*appContainer, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	providerFactory := factory.NewFactory(cfg, logger)
	galleryService := service.NewGalleryService(providerFactory, logger)

	return &appContainer{
		Config:           cfg,
		ProviderFactory:  providerFactory,
		GalleryService:   galleryService,
		StorageFormatter: formatter.NewStorageFormatter(),
		Prompter:         prompt.NewStandardPrompter(os.Stdin, os.Stdout),
		Logger:           logger,
		Debug:            debug,
	}, nil
}

type appContextKey struct{}

func appIntoContext(ctx context.Context, app *appContainer) context.Context {
	return context.WithValue(ctx, appContextKey{}, app)
}

func appFromContext(ctx context.Context) (*appContainer, error) {
	app, ok := ctx.Value(appContextKey{}).(*appContainer)
	if !ok {
		return nil, fmt.Errorf("application container missing from command context")
	}
	return app, nil
}
