package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallerist/pkg/storage"
)

func TestFromObjects(t *testing.T) {
	objects := []storage.Object{
		{Key: "photos/zebra.jpg", Size: 300},
		{Key: "photos/notes.txt", Size: 10},
		{Key: "photos/alpaca.png", Size: 100},
		{Key: "photos/", Size: 0},
		{Key: "photos/index.json", Size: 5},
		{Key: "photos/nested/bison_DT20250801.webp", Size: 200},
	}

	c := FromObjects("my-bucket", "photos/", objects)

	assert.Equal(t, "my-bucket", c.Bucket)
	assert.Equal(t, "photos/", c.Prefix)
	require.Equal(t, 3, c.Len(), "only image extensions survive the filter")

	names := make([]string, 0, c.Len())
	for _, img := range c.Images {
		names = append(names, img.Filename)
	}
	assert.Equal(t, []string{"alpaca.png", "bison_DT20250801.webp", "zebra.jpg"}, names,
		"images sort by basename, not by full key")

	assert.Equal(t, int64(600), c.TotalBytes(), "non-images do not count toward the total")
}

func TestFromObjectsEmpty(t *testing.T) {
	c := FromObjects("my-bucket", "", nil)

	assert.Zero(t, c.Len())
	assert.Zero(t, c.TotalBytes())
	assert.Empty(t, c.DateKeys())
}

func TestTotalPages(t *testing.T) {
	collectionOf := func(n int) Collection {
		images := make([]Image, n)
		return Collection{Images: images}
	}

	tests := []struct {
		name    string
		images  int
		perPage int
		want    int
	}{
		{"empty collection", 0, 250, 0},
		{"single image", 1, 250, 1},
		{"exact multiple", 500, 250, 2},
		{"remainder rounds up", 501, 250, 3},
		{"page size of one", 3, 1, 3},
		{"zero page size", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collectionOf(tt.images).TotalPages(tt.perPage))
		})
	}
}

func TestDateKeys(t *testing.T) {
	objects := []storage.Object{
		{Key: "b_DT20250801.jpg"},
		{Key: "a_DT20240101.jpg"},
		{Key: "c_DT20250801.jpg"},
		{Key: "undated.jpg"},
	}

	c := FromObjects("bucket", "", objects)

	assert.Equal(t, []string{"20240101", "20250801"}, c.DateKeys(),
		"keys are distinct, sorted, and undated images contribute nothing")
}
