package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"gallerist/internal/config"
	"gallerist/internal/flags"
	"gallerist/internal/service"
	"gallerist/internal/ui/progress"
	"gallerist/internal/ui/prompt"
	"gallerist/pkg/formatter"
)

type generateFlags struct {
	provider string
	bucket   string
	prefix   string
	output   string
	title    string
	perPage  int
	signTTL  time.Duration
	publish  bool
	force    bool
}

func newGenerateCmd() *cobra.Command {
	cmdFlags := generateFlags{}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an HTML gallery from a bucket",
		Long: `Scans the bucket for images, resolves an access URL for each one and
writes a single self-contained HTML page. For example:

  gallerist generate --bucket my-photos --prefix vacation/2026 -o vacation.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			providerName, err := app.ProviderFactory.ResolveProvider(cmdFlags.provider)
			if err != nil {
				return err
			}

			params := service.GenerateParams{
				Provider: providerName,
				Bucket:   cmdFlags.bucket,
				Folder:   cmdFlags.prefix,
				Output:   cmdFlags.output,
				Title:    cmdFlags.title,
				PerPage:  cmdFlags.perPage,
				SignTTL:  cmdFlags.signTTL,
				Publish:  cmdFlags.publish,
			}
			applyGalleryDefaults(cmd, &params, app.Config.Gallery)

			if params.PerPage < 1 {
				return fmt.Errorf("--%s must be at least 1", flags.PerPage)
			}

			if !cmdFlags.force {
				proceed, err := confirmOverwrite(app.Prompter, params.Output)
				if err != nil {
					return err
				}
				if !proceed {
					fmt.Println("Aborted.")
					return nil
				}
			}

			app.GalleryService.SetProgressReporter(progress.NewReporter(app.Logger, app.Debug))

			result, err := app.GalleryService.Generate(cmd.Context(), params)
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatGenerateSummary(formatter.GenerateSummary{
				Output:       result.OutputPath,
				PublishedKey: result.PublishedKey,
				Provider:     providerName,
				Bucket:       params.Bucket,
				Images:       result.Stats.Images,
				Pages:        result.TotalPages,
				Bytes:        result.Stats.Bytes,
				Signed:       result.Stats.Signed,
				SignFailures: result.Stats.SignFailures,
				Duration:     result.Stats.Duration,
			}))
			return nil
		},
	}

	generateCmd.Flags().StringVarP(&cmdFlags.provider, flags.Provider, flags.ProviderShort, "", "The provider holding the bucket. Defaults to the configured one.")
	generateCmd.Flags().StringVarP(&cmdFlags.bucket, flags.Bucket, flags.BucketShort, "", "The bucket containing the images (required)")
	generateCmd.Flags().StringVar(&cmdFlags.prefix, flags.Prefix, "", "Folder path inside the bucket to scan")
	generateCmd.Flags().StringVarP(&cmdFlags.output, flags.Output, flags.OutputShort, config.DefaultOutput, "Path of the HTML file to write")
	generateCmd.Flags().StringVarP(&cmdFlags.title, flags.Title, flags.TitleShort, config.DefaultTitle, "Title shown on the generated page")
	generateCmd.Flags().IntVar(&cmdFlags.perPage, flags.PerPage, config.DefaultPerPage, "Images shown per page")
	generateCmd.Flags().DurationVar(&cmdFlags.signTTL, flags.SignTTL, config.DefaultSignTTL, "How long signed URLs stay valid")
	generateCmd.Flags().BoolVar(&cmdFlags.publish, flags.Publish, false, "Upload the generated page back into the bucket")
	generateCmd.Flags().BoolVarP(&cmdFlags.force, flags.Force, flags.ForceShort, false, "Overwrite the output file without asking")
	generateCmd.MarkFlagRequired(flags.Bucket)

	return generateCmd
}

// applyGalleryDefaults fills params from the stored configuration for every
// flag the user did not set. Flags beat the file, the file beats the built-in
// defaults.
func applyGalleryDefaults(cmd *cobra.Command, params *service.GenerateParams, cfg config.GalleryConfig) {
	if !cmd.Flags().Changed(flags.Output) && cfg.Output != "" {
		params.Output = cfg.Output
	}
	if !cmd.Flags().Changed(flags.Title) && cfg.Title != "" {
		params.Title = cfg.Title
	}
	if !cmd.Flags().Changed(flags.PerPage) && cfg.PerPage > 0 {
		params.PerPage = cfg.PerPage
	}
	if !cmd.Flags().Changed(flags.SignTTL) && cfg.SignTTL > 0 {
		params.SignTTL = cfg.SignTTL
	}
}

// confirmOverwrite asks before clobbering an existing output file.
func confirmOverwrite(prompter prompt.Prompter, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("error checking output file: %w", err)
	}
	return prompter.Confirm(fmt.Sprintf("File '%s' already exists. Overwrite it?", path))
}
