package aws

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// SignedURL produces a SigV4-presigned GET URL for bucket/key valid for ttl.
func (s *S3Storage) SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("error presigning object %s/%s: %w", bucket, key, err)
	}
	return req.URL, nil
}

// PublicURL returns the unauthenticated URL form: path-style against a custom
// endpoint, virtual-hosted style against AWS proper.
func (s *S3Storage) PublicURL(bucket, key string) string {
	if s.endpoint != "" {
		if u, err := url.Parse(s.endpoint); err == nil {
			u.Path = path.Join(u.Path, bucket, key)
			return u.String()
		}
	}

	u := url.URL{
		Scheme: "https",
		Host:   fmt.Sprintf("%s.s3.%s.amazonaws.com", bucket, s.region),
		Path:   "/" + key,
	}
	return u.String()
}
