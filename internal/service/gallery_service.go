package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"gallerist/internal/config"
	"gallerist/pkg/gallery"
	"gallerist/pkg/render"
	"gallerist/pkg/storage"
)

const (
	// signConcurrency bounds the parallel SignedURL calls
	signConcurrency = 16
	// signWarnLimit caps how many individual sign failures are logged; the
	// rest are summarized once at the end
	signWarnLimit = 5
	// signProgressStep is how many resolved URLs pass between two progress
	// callbacks
	signProgressStep = 100
)

// ErrNoImages is returned when the bucket listing yields nothing to render
var ErrNoImages = errors.New("no images found in the specified bucket/folder")

// ClientFactory hands out configured storage clients. The provider factory
// implements it; tests substitute fakes.
type ClientFactory interface {
	GetStorageProvider(ctx context.Context, providerName string) (storage.Storage, error)
}

// ProgressReporter receives stage updates while a scan or build runs. The
// terminal UI implements it; headless runs get a logging fallback.
type ProgressReporter interface {
	StartListing(bucket, prefix string)
	ListingProgress(count int)
	StartSigning(total int)
	SigningProgress(done int)
	Finish()
}

type nopReporter struct{}

func (nopReporter) StartListing(string, string) {}
func (nopReporter) ListingProgress(int)         {}
func (nopReporter) StartSigning(int)            {}
func (nopReporter) SigningProgress(int)         {}
func (nopReporter) Finish()                     {}

// ScanStats summarizes one scan or gallery build.
type ScanStats struct {
	// Listed counts every object the listing returned, images or not
	Listed int
	// Images counts the objects that made it into the gallery
	Images int
	// Signed counts URLs produced by signing; fallbacks are not included
	Signed int
	// SignFailures counts images that fell back to the public URL form
	SignFailures int
	// Bytes is the combined size of all gallery images
	Bytes    int64
	Duration time.Duration
}

// GenerateParams carries everything one gallery build needs.
type GenerateParams struct {
	Provider string
	Bucket   string
	Folder   string
	Output   string
	Title    string
	PerPage  int
	SignTTL  time.Duration
	Publish  bool
}

// GenerateResult reports what a build produced.
type GenerateResult struct {
	OutputPath string
	// PublishedKey is the object key the page was uploaded under, empty
	// unless publishing was requested
	PublishedKey string
	TotalPages   int
	Stats        ScanStats
}

type GalleryService struct {
	providerFactory ClientFactory
	logger          *slog.Logger
	progress        ProgressReporter
}

func NewGalleryService(providerFactory ClientFactory, logger *slog.Logger) *GalleryService {
	return &GalleryService{
		providerFactory: providerFactory,
		logger:          logger.With("service", "GalleryService"),
		progress:        nopReporter{},
	}
}

// SetProgressReporter attaches a progress sink. Passing nil restores the
// default silent one.
func (s *GalleryService) SetProgressReporter(r ProgressReporter) {
	if r == nil {
		r = nopReporter{}
	}
	s.progress = r
}

// Scan lists the bucket and assembles the image collection without touching
// URLs. Backs the scan command's dry-run view.
func (s *GalleryService) Scan(ctx context.Context, providerName, bucket, folder string) (gallery.Collection, ScanStats, error) {
	start := time.Now()

	client, err := s.getStorageClient(ctx, providerName)
	if err != nil {
		return gallery.Collection{}, ScanStats{}, err
	}
	defer client.Close()
	defer s.progress.Finish()

	collection, stats, err := s.scan(ctx, client, bucket, folder)
	if err != nil {
		return gallery.Collection{}, ScanStats{}, err
	}

	stats.Duration = time.Since(start)
	return collection, stats, nil
}

// Generate runs the full pipeline: scan, sign, render, write, and optionally
// publish the page back into the bucket.
func (s *GalleryService) Generate(ctx context.Context, params GenerateParams) (GenerateResult, error) {
	start := time.Now()
	s.logger.Debug("Starting Generate operation",
		"provider", params.Provider, "bucket", params.Bucket, "folder", params.Folder,
		"output", params.Output, "publish", params.Publish)

	client, err := s.getStorageClient(ctx, params.Provider)
	if err != nil {
		return GenerateResult{}, err
	}
	defer client.Close()
	defer s.progress.Finish()

	collection, stats, err := s.scan(ctx, client, params.Bucket, params.Folder)
	if err != nil {
		return GenerateResult{}, err
	}
	if collection.Len() == 0 {
		return GenerateResult{}, ErrNoImages
	}

	stats.Signed, stats.SignFailures = s.sign(ctx, client, &collection, params.SignTTL)

	renderer, err := render.NewRenderer()
	if err != nil {
		return GenerateResult{}, err
	}
	page, err := render.BuildPage(collection, params.Title, params.PerPage)
	if err != nil {
		return GenerateResult{}, err
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, page); err != nil {
		return GenerateResult{}, err
	}

	if err := os.WriteFile(params.Output, buf.Bytes(), 0644); err != nil {
		return GenerateResult{}, fmt.Errorf("error writing gallery file: %w", err)
	}
	s.logger.Debug("Gallery file written", "output", params.Output, "bytes", buf.Len())

	result := GenerateResult{
		OutputPath: params.Output,
		TotalPages: page.TotalPages,
	}

	if params.Publish {
		key := collection.Prefix + filepath.Base(params.Output)
		if err := client.Upload(ctx, params.Bucket, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), "text/html; charset=utf-8"); err != nil {
			return GenerateResult{}, fmt.Errorf("error publishing gallery to bucket: %w", err)
		}
		s.logger.Info("Gallery published", "bucket", params.Bucket, "key", key)
		result.PublishedKey = key
	}

	stats.Duration = time.Since(start)
	result.Stats = stats
	return result, nil
}

// DescribeBucket reports metadata and usage for a single bucket.
func (s *GalleryService) DescribeBucket(ctx context.Context, providerName, bucket string) (storage.Bucket, error) {
	s.logger.Debug("Starting DescribeBucket operation", "bucket", bucket, "provider", providerName)

	client, err := s.getStorageClient(ctx, providerName)
	if err != nil {
		return storage.Bucket{}, err
	}
	defer client.Close()

	info, err := client.DescribeBucket(ctx, bucket)
	if err != nil {
		s.logger.Error("Failed to describe bucket", "bucket", bucket, "provider", providerName, "error", err)
		return storage.Bucket{}, err
	}
	return info, nil
}

// scan lists every object under the folder and filters it down to the sorted
// image collection.
func (s *GalleryService) scan(ctx context.Context, client storage.Storage, bucket, folder string) (gallery.Collection, ScanStats, error) {
	prefix := gallery.NormalizePrefix(folder)
	s.logger.Debug("Starting scan", "bucket", bucket, "prefix", prefix)
	s.progress.StartListing(bucket, prefix)

	objects, err := client.ListObjects(ctx, bucket, storage.ListOptions{
		Prefix:        prefix,
		FetchMetadata: true,
		Progress:      s.progress.ListingProgress,
	})
	if err != nil {
		s.logger.Error("Failed to list objects", "bucket", bucket, "prefix", prefix, "error", err)
		return gallery.Collection{}, ScanStats{}, fmt.Errorf("error listing bucket %s: %w", bucket, err)
	}

	collection := gallery.FromObjects(bucket, prefix, objects)
	s.logger.Debug("Scan complete", "listed", len(objects), "images", collection.Len())

	return collection, ScanStats{
		Listed: len(objects),
		Images: collection.Len(),
		Bytes:  collection.TotalBytes(),
	}, nil
}

// sign resolves an access URL for every image: a signed GET URL when the
// credentials allow it, the public URL form otherwise. Failures never abort
// the build.
func (s *GalleryService) sign(ctx context.Context, client storage.Storage, c *gallery.Collection, ttl time.Duration) (signed, failed int) {
	if ttl <= 0 {
		ttl = config.DefaultSignTTL
	}

	s.progress.StartSigning(c.Len())

	var done, failures atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(signConcurrency)

	for i := range c.Images {
		i := i // per-iteration copy: module targets go 1.21 loop scoping
		g.Go(func() error {
			img := &c.Images[i]

			url, err := client.SignedURL(gctx, c.Bucket, img.Object.Key, ttl)
			if err != nil {
				if n := failures.Add(1); n <= signWarnLimit {
					s.logger.Warn("Could not sign URL, falling back to public URL", "key", img.Object.Key, "error", err)
				}
				url = client.PublicURL(c.Bucket, img.Object.Key)
			}
			img.URL = url

			if n := done.Add(1); n%signProgressStep == 0 || int(n) == c.Len() {
				s.progress.SigningProgress(int(n))
			}
			return nil
		})
	}
	// Workers never return errors; Wait is just the join point
	_ = g.Wait()

	failed = int(failures.Load())
	if failed > signWarnLimit {
		s.logger.Warn("Further sign failures were suppressed", "suppressed", failed-signWarnLimit, "total", failed)
	}

	return c.Len() - failed, failed
}

// Helper to initialize the storage client and handle common error logging
func (s *GalleryService) getStorageClient(ctx context.Context, providerName string) (storage.Storage, error) {
	client, err := s.providerFactory.GetStorageProvider(ctx, providerName)
	if err != nil {
		s.logger.Error("Failed to initialize provider", "provider", providerName, "error", err)
		return nil, fmt.Errorf("error initializing provider: %w", err)
	}
	return client, nil
}
