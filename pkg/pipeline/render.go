package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/treesvg/pkg/errors"
	"github.com/matzehuels/treesvg/pkg/layout"
	"github.com/matzehuels/treesvg/pkg/render"
	"github.com/matzehuels/treesvg/pkg/render/nodelink"
	"github.com/matzehuels/treesvg/pkg/render/svg"
	"github.com/matzehuels/treesvg/pkg/treeio"
)

// Render generates output artifacts in the requested formats from a
// computed layout. The SVG document and DOT source are produced at most
// once and shared by the formats derived from them.
func Render(ctx context.Context, l layout.Result, opts Options) (map[string][]byte, error) {
	opts.SetDefaults()
	if len(l.Placements) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidTree, "empty layout")
	}

	var svgDoc []byte
	svgOnce := func() []byte {
		if svgDoc == nil {
			svgDoc = svg.Render(l, opts.SVGOptions()...)
		}
		return svgDoc
	}
	var dot string
	dotOnce := func() (string, error) {
		if dot != "" {
			return dot, nil
		}
		var err error
		dot, err = nodelink.ToDOT(l.Placements[0].Node, nodelink.Options{Detailed: opts.Detailed})
		return dot, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return artifacts, err
		}

		var data []byte
		var err error
		switch format {
		case FormatSVG:
			data = svgOnce()
		case FormatPNG:
			data, err = render.ToPNG(ctx, svgOnce(), opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(ctx, svgOnce())
		case FormatJSON:
			data, err = treeio.MarshalLayout(l)
		case FormatDOT:
			var src string
			if src, err = dotOnce(); err == nil {
				data = []byte(src)
			}
		case FormatNodelink:
			var src string
			if src, err = dotOnce(); err == nil {
				data, err = nodelink.RenderSVG(ctx, src)
			}
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return artifacts, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
