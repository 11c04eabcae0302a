package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallerist/pkg/gallery"
	"gallerist/pkg/storage"
)

func testCollection(t *testing.T) gallery.Collection {
	t.Helper()

	created := time.Date(2025, 8, 1, 10, 30, 0, 0, time.UTC)
	c := gallery.FromObjects("my-bucket", "photos/", []storage.Object{
		{Key: "photos/beach_DT20250801.jpg", Size: 2048, ContentType: "image/jpeg", CreatedAt: created},
		{Key: "photos/undated.png", Size: 512},
	})
	require.Equal(t, 2, c.Len())

	// The signing pass normally fills these in
	for i := range c.Images {
		c.Images[i].URL = "https://example.com/" + c.Images[i].Filename
	}
	return c
}

func TestBuildPage(t *testing.T) {
	page, err := BuildPage(testCollection(t), "Holiday Photos", 250)
	require.NoError(t, err)

	assert.Equal(t, "Holiday Photos", page.Title)
	assert.Equal(t, 2, page.TotalImages)
	assert.Equal(t, 250, page.PerPage)
	assert.Equal(t, 1, page.TotalPages)

	// The payload must round-trip as JSON with the exact field names the
	// page script reads.
	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(page.ImagesJSON), &records))
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "beach_DT20250801.jpg", first["filename"])
	assert.Equal(t, "https://example.com/beach_DT20250801.jpg", first["public_url"])
	assert.Equal(t, float64(2048), first["size"])
	assert.Equal(t, "2025-08-01T10:30:00Z", first["created"])
	assert.Equal(t, "image/jpeg", first["content_type"])
	assert.Equal(t, "20250801", first["date_str"])
	assert.Equal(t, "01 August", first["date_display"])

	second := records[1]
	assert.Equal(t, "undated.png", second["filename"])
	assert.Nil(t, second["created"], "objects without a creation time serialize as null")
	assert.Equal(t, "image/unknown", second["content_type"])
	assert.Equal(t, "", second["date_str"])
	assert.Equal(t, "Unknown Date", second["date_display"])
}

func TestBuildPageEmptyCollection(t *testing.T) {
	page, err := BuildPage(gallery.Collection{}, "Empty", 250)
	require.NoError(t, err)

	assert.Zero(t, page.TotalImages)
	assert.Zero(t, page.TotalPages)
	assert.Equal(t, "[]", string(page.ImagesJSON))
}

func TestBuildPageEscapesMarkup(t *testing.T) {
	c := gallery.FromObjects("bucket", "", []storage.Object{
		{Key: `x</script><script>alert(1)//.jpg`, Size: 1},
	})
	require.Equal(t, 1, c.Len())

	page, err := BuildPage(c, "t", 10)
	require.NoError(t, err)

	payload := string(page.ImagesJSON)
	assert.NotContains(t, payload, "</script>",
		"angle brackets must be escaped so the payload cannot close the script element")

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &records))
	assert.Equal(t, `x</script><script>alert(1)//.jpg`, records[0]["filename"])
}

func TestRender(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	page, err := BuildPage(testCollection(t), "Holiday Photos", 250)
	require.NoError(t, err)
	page.GeneratedAt = "2025-08-01T10:30:00Z"

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, page))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `<meta name="generated" content="2025-08-01T10:30:00Z">`)
	assert.Contains(t, out, "<title>Holiday Photos</title>")
	assert.Contains(t, out, "Holiday Photos</h1>")
	assert.Contains(t, out, "2 images")
	assert.Contains(t, out, "const imageData = [")
	assert.Contains(t, out, "const imagesPerPage = 250;")
	assert.Contains(t, out, "beach_DT20250801.jpg")
	assert.Contains(t, out, `id="searchInput"`)
	assert.Contains(t, out, `id="dateFilter"`)
	assert.Contains(t, out, "IntersectionObserver")
}

func TestRenderTitleEscaped(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	page, err := BuildPage(gallery.Collection{}, `<b>"Bold" & Co</b>`, 10)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, page))

	out := buf.String()
	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "&lt;b&gt;")
}
