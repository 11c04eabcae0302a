package storage

import (
	"context"
	"io"
	"time"

	"gallerist/pkg/common"
)

// ProgressFunc receives the running object count while a listing is in flight.
// Drivers invoke it on a fixed cadence (ProgressInterval), never per object.
type ProgressFunc func(count int)

// ProgressInterval is how many objects a driver discovers between two
// Progress callbacks.
const ProgressInterval = 1000

// ListOptions narrows and instruments an object listing.
type ListOptions struct {
	// Prefix restricts the listing to keys that start with it. Callers are
	// expected to pass an already-normalized prefix (see gallery.NormalizePrefix).
	Prefix string
	// Progress, when non-nil, is called every ProgressInterval objects.
	Progress ProgressFunc
	// FetchMetadata asks the driver to populate ContentType and Metadata even
	// when its list API does not return them (S3 and MinIO need per-object
	// stat calls for this; GCS listings carry them for free).
	FetchMetadata bool
}

// Storage is the contract every provider driver implements. Implementations
// self-register with the provider registry in their init() and are handed out
// by the factory, already configured.
type Storage interface {
	ProviderName() common.Provider

	// ListObjects returns every object under the prefix, recursively.
	ListObjects(ctx context.Context, bucket string, opts ListOptions) ([]Object, error)

	// SignedURL produces a time-limited GET URL for a single object. Callers
	// fall back to PublicURL when signing is not possible with the ambient
	// credentials.
	SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)

	// PublicURL is the unauthenticated URL form for the object. It is only
	// reachable if the bucket policy allows public reads; it is the fallback
	// when SignedURL fails.
	PublicURL(bucket, key string) string

	DescribeBucket(ctx context.Context, bucket string) (Bucket, error)

	// Upload writes body to bucket/key with the given content type. Used to
	// publish the rendered gallery page next to the images.
	Upload(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error

	Close() error
}
