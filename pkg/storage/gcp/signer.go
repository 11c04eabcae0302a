package gcp

import (
	"context"
	"fmt"
	"net/url"
	"time"

	gcpstorage "cloud.google.com/go/storage"
)

const publicHost = "storage.googleapis.com"

// SignedURL issues a V4-signed GET URL. The SDK signs with the client's
// ambient credentials; without a signing-capable identity (service account
// key or signBlob permission) this returns an error and the caller falls
// back to PublicURL.
func (g *GCPStorage) SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	opts := &gcpstorage.SignedURLOptions{
		Scheme:  gcpstorage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(ttl),
	}

	u, err := g.client.Bucket(bucket).SignedURL(key, opts)
	if err != nil {
		return "", fmt.Errorf("failed to sign URL for %s/%s: %w", bucket, key, err)
	}
	return u, nil
}

// PublicURL is the storage.googleapis.com form; url.URL handles the path
// escaping the object key may need.
func (g *GCPStorage) PublicURL(bucket, key string) string {
	u := url.URL{
		Scheme: "https",
		Host:   publicHost,
		Path:   "/" + bucket + "/" + key,
	}
	return u.String()
}
