package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gallerist/pkg/gallery"
	"gallerist/pkg/storage"
)

type StorageFormatter struct{}

func NewStorageFormatter() *StorageFormatter {
	return &StorageFormatter{}
}

// FormatImageList renders the scan result as a table. A positive limit caps
// the rows; the remainder is summarized under the table.
func (f *StorageFormatter) FormatImageList(c gallery.Collection, limit int) string {
	table := NewTable([]string{"FILENAME", "SIZE", "DATE", "CONTENT TYPE", "UPDATED"})

	shown := len(c.Images)
	if limit > 0 && limit < shown {
		shown = limit
	}

	for _, img := range c.Images[:shown] {
		contentType := img.Object.ContentType
		if contentType == "" {
			contentType = "image/unknown"
		}
		updated := "N/A"
		if !img.Object.UpdatedAt.IsZero() {
			updated = img.Object.UpdatedAt.Format("2006-01-02")
		}
		table.AddRow([]string{
			img.Filename,
			storage.FormatBytes(img.Object.Size),
			img.DateDisplay,
			contentType,
			updated,
		})
	}

	result := table.String()
	if rest := len(c.Images) - shown; rest > 0 {
		result += fmt.Sprintf("\n... and %d more images (raise --limit to show them)", rest)
	}
	return result
}

func (f *StorageFormatter) FormatBucketDetails(bucket storage.Bucket) string {
	var result string

	result += FormatHeaderSection("Bucket: " + bucket.Name)
	result += "\n\n"

	result += FormatSectionTitle("Overview")
	result += "\n"

	overviewTable := NewTable([]string{"Parameter", "Value"})

	details := []struct {
		Key   string
		Value string
	}{
		{"Provider", string(bucket.Provider)},
		{"Location / Region", valueOrNA(bucket.Location)},
		{"Storage Class", valueOrNA(bucket.StorageClass)},
		{"Usage", storage.FormatBytes(bucket.UsageBytes)},
		{"Versioning", formatBool(bucket.Versioning)},
		{"Created On", formatTime(bucket.CreatedAt)},
		{"Updated On", formatTime(bucket.UpdatedAt)},
	}

	for _, detail := range details {
		overviewTable.AddRow([]string{detail.Key, detail.Value})
	}

	result += overviewTable.String()
	result += "\n\n"

	if len(bucket.Labels) > 0 {
		result += FormatSectionTitle("Labels")
		result += "\n"
		labelsTable := NewTable([]string{"Key", "Value"})
		for _, k := range sortedKeys(bucket.Labels) {
			labelsTable.AddRow([]string{k, bucket.Labels[k]})
		}
		result += labelsTable.String()
		result += "\n\n"
	}

	return result
}

// FormatConfigList renders the stored configuration keys sorted, with secret
// values masked.
func (f *StorageFormatter) FormatConfigList(values map[string]string) string {
	if len(values) == 0 {
		return "No configuration values set."
	}

	table := NewTable([]string{"KEY", "VALUE"})
	for _, k := range sortedKeys(values) {
		v := values[k]
		if strings.HasSuffix(k, "secret_key") {
			v = "********"
		}
		table.AddRow([]string{k, v})
	}
	return table.String()
}

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func formatBool(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}

// Format time in a standard, detailed format (RFC1123); providers that do not
// expose a timestamp leave it zero
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(time.RFC1123)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
