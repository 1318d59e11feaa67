package pipeline

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/boxscene/pkg/errors"
	"github.com/matzehuels/boxscene/pkg/render"
	"github.com/matzehuels/boxscene/pkg/render/geometry"
	"github.com/matzehuels/boxscene/pkg/render/svg"
	"github.com/matzehuels/boxscene/pkg/render/tree"
	"github.com/matzehuels/boxscene/pkg/scene"
)

// RenderOptions controls a single render.
type RenderOptions struct {
	Title string
	Scale float64
	Boxes bool
}

// Render serializes a settled scene to one format.
func Render(ctx context.Context, s *scene.Scene, format string, opts RenderOptions) ([]byte, error) {
	if err := errors.ValidateFormat(format); err != nil {
		return nil, err
	}

	switch format {
	case FormatSVG:
		return renderSVG(s, opts), nil
	case FormatPNG:
		return render.ToPNG(ctx, renderSVG(s, opts), opts.Scale)
	case FormatPDF:
		return render.ToPDF(ctx, renderSVG(s, opts))
	case FormatJSON:
		var gopts []geometry.Option
		if opts.Title != "" {
			gopts = append(gopts, geometry.WithTitle(opts.Title))
		}
		data, err := geometry.Render(s, gopts...)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode geometry")
		}
		return data, nil
	case FormatDOT:
		return []byte(tree.ToDOT(s, tree.Options{Constraints: true})), nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
}

func renderSVG(s *scene.Scene, opts RenderOptions) []byte {
	var sopts []svg.Option
	if opts.Title != "" {
		sopts = append(sopts, svg.WithTitle(opts.Title))
	}
	if opts.Boxes {
		sopts = append(sopts, svg.WithBoxes())
	}
	return svg.Render(s, sopts...)
}

// RenderAll renders every format concurrently. A settled scene is read-only,
// so renderers share it without locking. The first failure cancels the rest.
func RenderAll(ctx context.Context, s *scene.Scene, formats []string, opts RenderOptions) (map[string][]byte, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		g.Go(func() error {
			data, err := Render(ctx, s, format, opts)
			if err != nil {
				return errors.Wrap(errors.GetCode(err), err, "render %s", format)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}
