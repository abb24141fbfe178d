package asset

import (
	"context"
	"image"

	"github.com/philipparndt/gocarousel/pkg/stl"
	"golang.org/x/sync/errgroup"
)

// TextureResult is the outcome of loading one texture
type TextureResult struct {
	Source string
	Image  image.Image
	Err    error
}

// ModelResult is the outcome of loading one model
type ModelResult struct {
	Source string
	Model  *stl.Model
	Err    error
}

// LoadTextures loads every source and returns results in source order.
// Failures are logged and reported in the result, never returned as a batch error.
func (l *Loader) LoadTextures(ctx context.Context, sources []string) []TextureResult {
	results := make([]TextureResult, len(sources))
	l.each(ctx, sources, func(ctx context.Context, i int, src string) {
		img, err := l.LoadTexture(ctx, src)
		results[i] = TextureResult{Source: src, Image: img, Err: err}
		if err != nil {
			l.logger.Warn("texture skipped", "source", src, "error", err)
		}
	})
	return results
}

// LoadModels loads every model source and returns results in source order
func (l *Loader) LoadModels(ctx context.Context, sources []string) []ModelResult {
	results := make([]ModelResult, len(sources))
	l.each(ctx, sources, func(ctx context.Context, i int, src string) {
		model, err := l.LoadModel(ctx, src)
		results[i] = ModelResult{Source: src, Model: model, Err: err}
		if err != nil {
			l.logger.Warn("model skipped", "source", src, "error", err)
			return
		}
		l.logger.Debug("model loaded", "source", src, "triangles", model.TriangleCount())
	})
	return results
}

func (l *Loader) each(ctx context.Context, sources []string, fn func(context.Context, int, string)) {
	var g errgroup.Group
	g.SetLimit(l.concurrency)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			fn(ctx, i, src)
			return nil
		})
	}
	_ = g.Wait()
}
