package aws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	t.Run("virtual-hosted style against AWS", func(t *testing.T) {
		s := &S3Storage{region: "eu-west-1"}

		assert.Equal(t,
			"https://my-bucket.s3.eu-west-1.amazonaws.com/photos/cat.jpg",
			s.PublicURL("my-bucket", "photos/cat.jpg"))
	})

	t.Run("spaces are escaped", func(t *testing.T) {
		s := &S3Storage{region: "us-east-1"}

		assert.Equal(t,
			"https://b.s3.us-east-1.amazonaws.com/summer%20trip.jpg",
			s.PublicURL("b", "summer trip.jpg"))
	})

	t.Run("path style against a custom endpoint", func(t *testing.T) {
		s := &S3Storage{region: "us-east-1", endpoint: "http://localhost:4566"}

		assert.Equal(t,
			"http://localhost:4566/my-bucket/photos/cat.jpg",
			s.PublicURL("my-bucket", "photos/cat.jpg"))
	})

	t.Run("endpoint base path is preserved", func(t *testing.T) {
		s := &S3Storage{endpoint: "https://gateway.example.com/s3"}

		assert.Equal(t,
			"https://gateway.example.com/s3/my-bucket/cat.jpg",
			s.PublicURL("my-bucket", "cat.jpg"))
	})
}
