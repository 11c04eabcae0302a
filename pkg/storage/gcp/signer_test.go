package gcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	g := &GCPStorage{}

	tests := []struct {
		name   string
		bucket string
		key    string
		want   string
	}{
		{
			name:   "plain key",
			bucket: "my-bucket",
			key:    "photos/cat.jpg",
			want:   "https://storage.googleapis.com/my-bucket/photos/cat.jpg",
		},
		{
			name:   "space escaped",
			bucket: "my-bucket",
			key:    "summer trip.jpg",
			want:   "https://storage.googleapis.com/my-bucket/summer%20trip.jpg",
		},
		{
			name:   "hash escaped",
			bucket: "my-bucket",
			key:    "img#1.jpg",
			want:   "https://storage.googleapis.com/my-bucket/img%231.jpg",
		},
		{
			name:   "question mark escaped",
			bucket: "my-bucket",
			key:    "what?.png",
			want:   "https://storage.googleapis.com/my-bucket/what%3F.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.PublicURL(tt.bucket, tt.key))
		})
	}
}
