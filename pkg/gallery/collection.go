package gallery

import (
	"sort"

	"gallerist/pkg/storage"
)

// Collection is the assembled gallery: images sorted by filename, ready for
// pagination and rendering.
type Collection struct {
	Bucket string
	Prefix string
	Images []Image
}

// FromObjects filters a raw object listing down to images and sorts them by
// basename ascending, the order the page presents.
func FromObjects(bucket, prefix string, objects []storage.Object) Collection {
	images := make([]Image, 0, len(objects))
	for _, obj := range objects {
		if !IsImageKey(obj.Key) {
			continue
		}
		images = append(images, NewImage(obj))
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].Filename < images[j].Filename
	})

	return Collection{
		Bucket: bucket,
		Prefix: prefix,
		Images: images,
	}
}

func (c Collection) Len() int { return len(c.Images) }

// TotalPages is the page count for the given page size.
func (c Collection) TotalPages(perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return (len(c.Images) + perPage - 1) / perPage
}

// DateKeys returns the distinct capture-date keys in ascending order. The
// page's date filter dropdown is built from this set.
func (c Collection) DateKeys() []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, img := range c.Images {
		if img.DateKey == "" {
			continue
		}
		if _, ok := seen[img.DateKey]; ok {
			continue
		}
		seen[img.DateKey] = struct{}{}
		keys = append(keys, img.DateKey)
	}
	sort.Strings(keys)
	return keys
}

// TotalBytes sums the sizes of all images in the collection.
func (c Collection) TotalBytes() int64 {
	var total int64
	for _, img := range c.Images {
		total += img.Object.Size
	}
	return total
}
