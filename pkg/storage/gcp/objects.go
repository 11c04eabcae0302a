package gcp

import (
	"context"
	"fmt"
	"io"

	"gallerist/pkg/storage"

	gcpstorage "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

func (g *GCPStorage) ListObjects(ctx context.Context, bucket string, opts storage.ListOptions) ([]storage.Object, error) {
	g.logger.Debug("Starting GCP ListObjects operation", "bucket", bucket, "prefix", opts.Prefix)

	bucketHandle := g.client.Bucket(bucket)

	// No delimiter: the gallery wants every object under the prefix,
	// directories included
	query := &gcpstorage.Query{
		Prefix: opts.Prefix,
	}

	var objects []storage.Object
	it := bucketHandle.Objects(ctx, query)

	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating objects: %w", err)
		}

		// Synthetic prefix entries only appear with a delimiter set, but guard anyway
		if attrs.Prefix != "" {
			continue
		}

		objects = append(objects, mapObjectAttributes(attrs))

		if opts.Progress != nil && len(objects)%storage.ProgressInterval == 0 {
			opts.Progress(len(objects))
		}
	}

	return objects, nil
}

// Upload streams body into bucket/key. The writer is chunked by the SDK; an
// error on Close is the write failing, not just the close.
func (g *GCPStorage) Upload(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error {
	g.logger.Debug("Starting GCP Upload operation", "bucket", bucket, "key", key, "size", size)

	w := g.client.Bucket(bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	// The page embeds expiring signed URLs; intermediaries must not cache it
	w.CacheControl = "no-cache"

	if _, err := io.Copy(w, body); err != nil {
		w.Close()
		return fmt.Errorf("error writing object %s/%s: %w", bucket, key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("error finalizing object %s/%s: %w", bucket, key, err)
	}
	return nil
}
