package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gallerist/internal/flags"
)

type bucketFlags struct {
	provider string
}

func newBucketCmd() *cobra.Command {
	cmdFlags := bucketFlags{}

	bucketCmd := &cobra.Command{
		Use:   "bucket",
		Short: "Inspect storage buckets",
		Long:  `The bucket command surfaces metadata about the buckets galleries are built from.`,
	}

	describeCmd := &cobra.Command{
		Use:   "describe [bucket-name]",
		Short: "Describe a specific storage bucket",
		Long:  `Provides detailed information about a bucket: location, storage class, usage, versioning and labels.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			providerName, err := app.ProviderFactory.ResolveProvider(cmdFlags.provider)
			if err != nil {
				return err
			}

			bucketName := args[0]
			bucketDetails, err := app.GalleryService.DescribeBucket(cmd.Context(), providerName, bucketName)
			if err != nil {
				return fmt.Errorf("error describing bucket '%s' on %s: %w", bucketName, providerName, err)
			}

			fmt.Println(app.StorageFormatter.FormatBucketDetails(bucketDetails))
			return nil
		},
	}
	describeCmd.Flags().StringVarP(&cmdFlags.provider, flags.Provider, flags.ProviderShort, "", "The provider where the bucket resides. Defaults to the configured one.")

	bucketCmd.AddCommand(describeCmd)
	return bucketCmd
}
