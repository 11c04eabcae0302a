package storage

import (
	"fmt"
	"gallerist/pkg/common"
	"time"
)

// Object is the provider-neutral view of a stored object. Drivers map their
// SDK types into this struct; everything downstream (gallery assembly,
// rendering, formatting) works off it.
type Object struct {
	Key          string
	Bucket       string
	Provider     common.Provider
	Size         int64
	StorageClass string
	ContentType  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ETag         string
	// Base64-encoded MD5 of the content, empty when the provider does not report one
	// (e.g. S3 multipart uploads)
	MD5Hash  string
	Metadata map[string]string
}

type Bucket struct {
	Name         string
	Provider     common.Provider
	Location     string
	StorageClass string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	// A value of -1 indicates that the usage is unknown or could not be retrieved
	UsageBytes int64
	Versioning bool
	Labels     map[string]string
}

func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "N/A"
	}
	if bytes == 0 {
		return "0 B"
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	sizes := []string{"KB", "MB", "GB", "TB", "PB", "EB"}
	if exp >= len(sizes) {
		return fmt.Sprintf("%d B", bytes) // Fallback if extremely large
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), sizes[exp])
}
