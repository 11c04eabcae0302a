// Package render turns an assembled gallery collection into the final
// self-contained HTML page. All interactivity (pagination, search, the date
// filter, lazy loading) lives client-side in the embedded script, so the
// output needs nothing but a static file host.
package render

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"time"

	"gallerist/pkg/gallery"
)

//go:embed gallery.gohtml
var galleryTemplate string

// fallbackContentType is reported for objects whose provider returned no
// content type.
const fallbackContentType = "image/unknown"

// PageImage is the per-image record embedded in the page as JSON. The field
// names are the page script's data contract; renaming them breaks the page.
type PageImage struct {
	Filename    string  `json:"filename"`
	PublicURL   string  `json:"public_url"`
	Size        int64   `json:"size"`
	Created     *string `json:"created"`
	ContentType string  `json:"content_type"`
	DateKey     string  `json:"date_str"`
	DateDisplay string  `json:"date_display"`
}

// Page carries everything the template needs for one rendering.
type Page struct {
	Title       string
	TotalImages int
	PerPage     int
	TotalPages  int
	ImagesJSON  template.JS
	// GeneratedAt stamps the page source. Render fills it when empty.
	GeneratedAt string
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("gallery").Parse(galleryTemplate)
	if err != nil {
		return nil, fmt.Errorf("error parsing gallery template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// BuildPage flattens a collection into template input. The JSON payload is
// produced with encoding/json, which escapes <, > and &, so the embedded
// data can never terminate the surrounding script element.
func BuildPage(c gallery.Collection, title string, perPage int) (Page, error) {
	records := make([]PageImage, 0, c.Len())
	for _, img := range c.Images {
		records = append(records, toPageImage(img))
	}

	data, err := json.Marshal(records)
	if err != nil {
		return Page{}, fmt.Errorf("error encoding image data: %w", err)
	}

	return Page{
		Title:       title,
		TotalImages: c.Len(),
		PerPage:     perPage,
		TotalPages:  c.TotalPages(perPage),
		ImagesJSON:  template.JS(data),
	}, nil
}

func toPageImage(img gallery.Image) PageImage {
	rec := PageImage{
		Filename:    img.Filename,
		PublicURL:   img.URL,
		Size:        img.Object.Size,
		ContentType: img.Object.ContentType,
		DateKey:     img.DateKey,
		DateDisplay: img.DateDisplay,
	}
	if rec.ContentType == "" {
		rec.ContentType = fallbackContentType
	}
	if rec.DateDisplay == "" {
		rec.DateDisplay = gallery.UnknownDate
	}
	if !img.Object.CreatedAt.IsZero() {
		created := img.Object.CreatedAt.Format(time.RFC3339)
		rec.Created = &created
	}
	return rec
}

func (r *Renderer) Render(w io.Writer, page Page) error {
	if page.GeneratedAt == "" {
		page.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if err := r.tmpl.Execute(w, page); err != nil {
		return fmt.Errorf("error rendering gallery: %w", err)
	}
	return nil
}
