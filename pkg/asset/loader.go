// Package asset loads textures and STL models from local paths or http(s) URLs.
//
// Batch loads run with bounded parallelism and report one result per source,
// so a single broken asset never fails the whole batch.
package asset

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/gocarousel/pkg/stl"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Loader fetches assets
type Loader struct {
	baseDir     string
	client      *http.Client
	concurrency int
	maxTexture  int
	logger      *slog.Logger
}

// Option configures a Loader
type Option func(*Loader)

// WithBaseDir resolves relative paths against dir
func WithBaseDir(dir string) Option {
	return func(l *Loader) { l.baseDir = dir }
}

// WithHTTPClient replaces the client used for URLs
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithTimeout limits each http request
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) { l.client = &http.Client{Timeout: d} }
}

// WithConcurrency limits how many assets load at once
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithMaxTexture downscales textures whose longer side exceeds n pixels.
// Zero keeps the original size.
func WithMaxTexture(n int) Option {
	return func(l *Loader) { l.maxTexture = n }
}

// WithLogger sets the logger for per-item failures
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader with four workers and a 15 second http timeout
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		client:      &http.Client{Timeout: 15 * time.Second},
		concurrency: 4,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Resolve returns the path or URL a source is read from
func (l *Loader) Resolve(source string) string {
	if isURL(source) || filepath.IsAbs(source) || l.baseDir == "" {
		return source
	}
	return filepath.Join(l.baseDir, source)
}

// Open returns a reader for a local file or URL
func (l *Loader) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	where := l.Resolve(source)
	if !isURL(where) {
		f, err := os.Open(where)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", where, err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, where, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", where, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", where, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch %s: %s", where, resp.Status)
	}
	return resp.Body, nil
}

// LoadTexture decodes a png, jpeg, gif or webp image
func (l *Loader) LoadTexture(ctx context.Context, source string) (image.Image, error) {
	rc, err := l.Open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", source, err)
	}
	return Downscale(img, l.maxTexture), nil
}

// LoadModel parses an STL file and centres it on its bounding box
func (l *Loader) LoadModel(ctx context.Context, source string) (*stl.Model, error) {
	rc, err := l.Open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	model, err := stl.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model %s: %w", source, err)
	}
	model.Name = source
	return model.Centered(), nil
}

// Downscale shrinks img so its longer side is at most maxSide pixels.
// Smaller images and a non-positive maxSide return img unchanged.
func Downscale(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}
	scale := float64(maxSide) / float64(max(w, h))
	dw := max(1, int(float64(w)*scale+0.5))
	dh := max(1, int(float64(h)*scale+0.5))
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
