package minio

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"time"
)

// SignedURL produces a presigned GET URL for bucket/key valid for ttl.
func (m *MinioStorage) SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	presigned, err := m.client.PresignedGetObject(ctx, bucket, key, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("error presigning object %s/%s: %w", bucket, key, err)
	}
	return presigned.String(), nil
}

// PublicURL returns the path-style URL against the configured endpoint.
func (m *MinioStorage) PublicURL(bucket, key string) string {
	u := *m.client.EndpointURL()
	u.Path = path.Join(u.Path, bucket, key)
	return u.String()
}
