package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gallerist/pkg/storage"

	minioclient "github.com/minio/minio-go/v7"
	"golang.org/x/sync/errgroup"
)

// statConcurrency bounds the parallel StatObject calls of the metadata
// enrichment pass.
const statConcurrency = 16

func (m *MinioStorage) ListObjects(ctx context.Context, bucket string, opts storage.ListOptions) ([]storage.Object, error) {
	m.logger.Debug("Starting MinIO ListObjects operation", "bucket", bucket, "prefix", opts.Prefix)

	listOpts := minioclient.ListObjectsOptions{
		Prefix:       opts.Prefix,
		Recursive:    true,
		WithMetadata: opts.FetchMetadata,
	}

	var objects []storage.Object
	for object := range m.client.ListObjects(ctx, bucket, listOpts) {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}

		objects = append(objects, m.mapObjectInfo(bucket, object))

		if opts.Progress != nil && len(objects)%storage.ProgressInterval == 0 {
			opts.Progress(len(objects))
		}
	}

	// Listing only carries the content type on MinIO servers proper; plain
	// S3-compatible backends leave it empty and need a stat round-trip
	if opts.FetchMetadata {
		if err := m.enrichObjects(ctx, bucket, objects); err != nil {
			return nil, err
		}
	}

	return objects, nil
}

// enrichObjects stats every object whose listing entry came back without a
// content type.
func (m *MinioStorage) enrichObjects(ctx context.Context, bucket string, objects []storage.Object) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(statConcurrency)

	for i := range objects {
		if objects[i].ContentType != "" {
			continue
		}
		i := i // per-iteration copy: module targets go 1.21 loop scoping
		g.Go(func() error {
			stat, err := m.client.StatObject(ctx, bucket, objects[i].Key, minioclient.StatObjectOptions{})
			if err != nil {
				return fmt.Errorf("error fetching metadata for %s: %w", objects[i].Key, err)
			}
			objects[i].ContentType = stat.ContentType
			objects[i].Metadata = flattenUserMetadata(stat.UserMetadata)
			return nil
		})
	}

	return g.Wait()
}

func (m *MinioStorage) mapObjectInfo(bucket string, info minioclient.ObjectInfo) storage.Object {
	return storage.Object{
		Key:      info.Key,
		Bucket:   bucket,
		Provider: m.ProviderName(),
		Size:     info.Size,
		// MinIO tracks modification time only
		CreatedAt:    info.LastModified,
		UpdatedAt:    info.LastModified,
		StorageClass: info.StorageClass,
		ContentType:  info.ContentType,
		ETag:         strings.Trim(info.ETag, `"`),
		Metadata:     flattenUserMetadata(info.UserMetadata),
	}
}

func flattenUserMetadata(meta minioclient.StringMap) map[string]string {
	if len(meta) == 0 {
		return nil
	}
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}

func (m *MinioStorage) Upload(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error {
	m.logger.Debug("Starting MinIO Upload operation", "bucket", bucket, "key", key, "size", size)

	_, err := m.client.PutObject(ctx, bucket, key, body, size, minioclient.PutObjectOptions{
		ContentType: contentType,
		// The page embeds expiring signed URLs; intermediaries must not cache it
		CacheControl: "no-cache",
	})
	if err != nil {
		return fmt.Errorf("error writing object %s/%s: %w", bucket, key, err)
	}
	return nil
}
