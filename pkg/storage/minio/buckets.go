package minio

import (
	"context"
	"fmt"

	"gallerist/pkg/common"
	"gallerist/pkg/storage"

	minioclient "github.com/minio/minio-go/v7"
)

func (m *MinioStorage) DescribeBucket(ctx context.Context, bucket string) (storage.Bucket, error) {
	m.logger.Debug("Starting MinIO DescribeBucket operation", "bucket", bucket)

	exists, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return storage.Bucket{}, fmt.Errorf("error checking bucket: %w", err)
	}
	if !exists {
		return storage.Bucket{}, fmt.Errorf("bucket %s does not exist", bucket)
	}

	info := storage.Bucket{
		Name:     bucket,
		Provider: common.Minio,
	}

	if location, err := m.client.GetBucketLocation(ctx, bucket); err != nil {
		m.logger.Warn("Failed to get bucket location", "bucket", bucket, "error", err)
	} else {
		info.Location = location
	}

	if buckets, err := m.client.ListBuckets(ctx); err != nil {
		m.logger.Warn("Failed to list buckets for creation date", "bucket", bucket, "error", err)
	} else {
		for _, b := range buckets {
			if b.Name == bucket {
				info.CreatedAt = b.CreationDate
				break
			}
		}
	}

	if versioning, err := m.client.GetBucketVersioning(ctx, bucket); err != nil {
		m.logger.Warn("Failed to get bucket versioning", "bucket", bucket, "error", err)
	} else {
		info.Versioning = versioning.Enabled()
	}

	if tags, err := m.client.GetBucketTagging(ctx, bucket); err != nil {
		m.logger.Debug("No bucket tagging available", "bucket", bucket, "error", err)
	} else if tags != nil && len(tags.ToMap()) > 0 {
		info.Labels = tags.ToMap()
	}

	usage, err := m.bucketUsage(ctx, bucket)
	if err != nil {
		m.logger.Warn("Failed to compute bucket usage, usage will be reported as N/A", "bucket", bucket, "error", err)
		usage = -1 // Set usage to unknown on failure
	}
	info.UsageBytes = usage

	return info, nil
}

// bucketUsage sums object sizes across the whole bucket by walking the
// listing, same approach as the S3 driver.
func (m *MinioStorage) bucketUsage(ctx context.Context, bucket string) (int64, error) {
	var total int64
	for object := range m.client.ListObjects(ctx, bucket, minioclient.ListObjectsOptions{Recursive: true}) {
		if object.Err != nil {
			return -1, fmt.Errorf("error listing objects for usage: %w", object.Err)
		}
		total += object.Size
	}
	return total, nil
}
