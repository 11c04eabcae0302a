package gcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gallerist/pkg/common"
	"gallerist/pkg/storage"

	gcpstorage "cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

func (g *GCPStorage) DescribeBucket(ctx context.Context, bucket string) (storage.Bucket, error) {
	g.logger.Debug("Starting GCP DescribeBucket operation", "bucket", bucket)

	attrs, err := g.client.Bucket(bucket).Attrs(ctx)
	if err != nil {
		if errors.Is(err, gcpstorage.ErrBucketNotExist) {
			return storage.Bucket{}, fmt.Errorf("bucket %s does not exist: %w", bucket, err)
		}
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == 403 {
			return storage.Bucket{}, fmt.Errorf("access to bucket %s denied: %w", bucket, err)
		}
		return storage.Bucket{}, fmt.Errorf("error getting bucket attributes: %w", err)
	}

	usage, err := g.getBucketUsage(ctx, bucket)
	if err != nil {
		logLevel := slog.LevelWarn
		logMsg := "Failed to retrieve usage metrics due to API error, usage will be reported as N/A"

		if errors.Is(err, ErrMetricsNotFound) {
			logLevel = slog.LevelInfo
			logMsg = "Usage metrics not yet available (bucket may be new), usage will be reported as N/A"
		}

		g.logger.Log(ctx, logLevel, logMsg, "bucket", bucket, "error", err)
		usage = -1 // Set usage to unknown on failure
	}

	return storage.Bucket{
		Name:         attrs.Name,
		Provider:     common.GCP,
		Location:     attrs.Location,
		StorageClass: attrs.StorageClass,
		CreatedAt:    attrs.Created,
		UpdatedAt:    attrs.Updated,
		UsageBytes:   usage,
		Versioning:   attrs.VersioningEnabled,
		Labels:       attrs.Labels,
	}, nil
}
