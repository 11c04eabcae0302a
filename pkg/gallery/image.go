package gallery

import (
	"path"
	"regexp"
	"strings"
	"time"

	"gallerist/pkg/storage"
)

// Extensions recognized as images, matched case-insensitively against the
// end of the object key.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".bmp":  {},
	".webp": {},
	".tiff": {},
	".svg":  {},
}

// Capture dates are encoded in filenames as DT followed by YYYYMMDD,
// e.g. camera_DT20250801_0042.jpg.
var captureDatePattern = regexp.MustCompile(`DT(\d{8})`)

const (
	captureDateLayout = "20060102"
	displayDateLayout = "02 January"

	// UnknownDate is shown when the filename carries no date marker.
	UnknownDate = "Unknown Date"
)

// Image is one gallery entry: the underlying object plus the derived fields
// the page needs (basename, capture date, access URL).
type Image struct {
	Object   storage.Object
	Filename string
	// URL is filled in by the signing pass; empty until then.
	URL string
	// DateKey is the raw YYYYMMDD digits from the filename, empty when absent.
	DateKey string
	// DateDisplay is the human form ("01 August"), the raw digits when they do
	// not parse as a date, or UnknownDate.
	DateDisplay string
}

// IsImageKey reports whether the object key has a recognized image extension.
func IsImageKey(key string) bool {
	ext := strings.ToLower(path.Ext(key))
	_, ok := imageExtensions[ext]
	return ok
}

// NewImage derives the gallery entry for an object.
func NewImage(obj storage.Object) Image {
	filename := path.Base(obj.Key)
	dateKey, dateDisplay := extractCaptureDate(filename)

	return Image{
		Object:      obj,
		Filename:    filename,
		DateKey:     dateKey,
		DateDisplay: dateDisplay,
	}
}

func extractCaptureDate(filename string) (key, display string) {
	m := captureDatePattern.FindStringSubmatch(filename)
	if m == nil {
		return "", UnknownDate
	}

	key = m[1]
	t, err := time.Parse(captureDateLayout, key)
	if err != nil {
		// Eight digits that aren't a calendar date; show them as-is
		return key, key
	}
	return key, t.Format(displayDateLayout)
}

// NormalizePrefix turns a user-supplied folder path into a listing prefix:
// empty stays empty, anything else ends in exactly one slash.
func NormalizePrefix(folder string) string {
	folder = strings.TrimRight(folder, "/")
	if folder == "" {
		return ""
	}
	return folder + "/"
}
