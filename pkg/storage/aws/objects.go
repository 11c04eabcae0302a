package aws

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gallerist/pkg/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"golang.org/x/sync/errgroup"
)

// headConcurrency bounds the parallel HeadObject calls of the metadata
// enrichment pass.
const headConcurrency = 16

func (s *S3Storage) ListObjects(ctx context.Context, bucket string, opts storage.ListOptions) ([]storage.Object, error) {
	s.logger.Debug("Starting AWS ListObjects operation", "bucket", bucket, "prefix", opts.Prefix)

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	}
	if opts.Prefix != "" {
		input.Prefix = aws.String(opts.Prefix)
	}

	var objects []storage.Object
	paginator := s3.NewListObjectsV2Paginator(s.client, input)

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing objects: %w", err)
		}

		for _, obj := range page.Contents {
			objects = append(objects, s.mapListEntry(bucket, obj))

			if opts.Progress != nil && len(objects)%storage.ProgressInterval == 0 {
				opts.Progress(len(objects))
			}
		}
	}

	if opts.FetchMetadata {
		if err := s.enrichObjects(ctx, bucket, objects); err != nil {
			return nil, err
		}
	}

	return objects, nil
}

// enrichObjects fills ContentType and Metadata via HeadObject, which the
// ListObjectsV2 API does not return.
func (s *S3Storage) enrichObjects(ctx context.Context, bucket string, objects []storage.Object) error {
	if len(objects) == 0 {
		return nil
	}
	s.logger.Debug("Fetching object metadata via HeadObject", "bucket", bucket, "count", len(objects))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(headConcurrency)

	for i := range objects {
		i := i // per-iteration copy: module targets go 1.21 loop scoping
		g.Go(func() error {
			head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
				Bucket: aws.String(bucket),
				Key:    aws.String(objects[i].Key),
			})
			if err != nil {
				return fmt.Errorf("error fetching metadata for %s: %w", objects[i].Key, err)
			}
			objects[i].ContentType = aws.ToString(head.ContentType)
			objects[i].Metadata = head.Metadata
			return nil
		})
	}

	return g.Wait()
}

func (s *S3Storage) mapListEntry(bucket string, obj types.Object) storage.Object {
	lastModified := aws.ToTime(obj.LastModified)
	return storage.Object{
		Key:      aws.ToString(obj.Key),
		Bucket:   bucket,
		Provider: s.ProviderName(),
		Size:     aws.ToInt64(obj.Size),
		// S3 has no separate creation timestamp; LastModified stands in for both
		CreatedAt:    lastModified,
		UpdatedAt:    lastModified,
		StorageClass: string(obj.StorageClass),
		ETag:         strings.Trim(aws.ToString(obj.ETag), `"`),
	}
}

func (s *S3Storage) Upload(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error {
	s.logger.Debug("Starting AWS Upload operation", "bucket", bucket, "key", key, "size", size)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		// The page embeds expiring signed URLs; intermediaries must not cache it
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return fmt.Errorf("error writing object %s/%s: %w", bucket, key, err)
	}
	return nil
}
