package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gallerist/internal/flags"
	"gallerist/internal/ui/progress"
	"gallerist/pkg/storage"
)

type scanFlags struct {
	provider string
	bucket   string
	prefix   string
	limit    int
}

func newScanCmd() *cobra.Command {
	cmdFlags := scanFlags{}

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "List the images a gallery build would include",
		Long: `Scans the bucket and prints the images that would make it into the
gallery, without signing URLs or writing any files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			providerName, err := app.ProviderFactory.ResolveProvider(cmdFlags.provider)
			if err != nil {
				return err
			}

			app.GalleryService.SetProgressReporter(progress.NewReporter(app.Logger, app.Debug))

			collection, stats, err := app.GalleryService.Scan(cmd.Context(), providerName, cmdFlags.bucket, cmdFlags.prefix)
			if err != nil {
				return err
			}

			if collection.Len() == 0 {
				fmt.Printf("No images found in bucket '%s' (%d objects scanned).\n", cmdFlags.bucket, stats.Listed)
				return nil
			}

			fmt.Println(app.StorageFormatter.FormatImageList(collection, cmdFlags.limit))
			fmt.Printf("\n%d images, %s total (%d objects scanned in %s)\n",
				stats.Images, storage.FormatBytes(stats.Bytes), stats.Listed,
				stats.Duration.Round(time.Millisecond))
			return nil
		},
	}

	scanCmd.Flags().StringVarP(&cmdFlags.provider, flags.Provider, flags.ProviderShort, "", "The provider holding the bucket. Defaults to the configured one.")
	scanCmd.Flags().StringVarP(&cmdFlags.bucket, flags.Bucket, flags.BucketShort, "", "The bucket containing the images (required)")
	scanCmd.Flags().StringVar(&cmdFlags.prefix, flags.Prefix, "", "Folder path inside the bucket to scan")
	scanCmd.Flags().IntVarP(&cmdFlags.limit, flags.Limit, flags.LimitShort, 50, "Maximum rows to print; 0 shows every image")
	scanCmd.MarkFlagRequired(flags.Bucket)

	return scanCmd
}
