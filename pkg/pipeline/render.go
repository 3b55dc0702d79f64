package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/bookrack/pkg/render/sink"
	"github.com/matzehuels/bookrack/pkg/render/surface"
	"github.com/matzehuels/bookrack/pkg/scene"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, rec *surface.Recorder, sc *scene.Scene, opts Options) (map[string][]byte, error) {
	sinkOpts := buildSinkOptions(sc, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = sink.RenderSVG(rec, sinkOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(rec, sinkOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, rec, sinkOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(rec, sinkOpts...)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSinkOptions builds the options shared by every sink.
func buildSinkOptions(sc *scene.Scene, opts Options) []sink.Option {
	sinkOpts := []sink.Option{
		sink.WithScale(opts.Scale),
		sink.WithMargin(opts.Margin),
		sink.WithBackground(sc.Background),
		sink.WithBooks(sc.Specs),
	}
	if opts.Title != "" {
		sinkOpts = append(sinkOpts, sink.WithTitle(opts.Title))
	}
	if !opts.Sample && opts.Scene != nil {
		sinkOpts = append(sinkOpts, sink.WithSeed(opts.Scene.Seed))
	}
	return sinkOpts
}
