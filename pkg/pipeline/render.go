package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	molio "github.com/matzehuels/molgraph/pkg/io"
	"github.com/matzehuels/molgraph/pkg/molecule"
	"github.com/matzehuels/molgraph/pkg/observability"
	"github.com/matzehuels/molgraph/pkg/render/nodelink"
)

// Render generates the requested formats for m without touching any cache.
func Render(ctx context.Context, m *molecule.Molecule, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	for _, format := range opts.Formats {
		hooks := observability.Pipeline()
		hooks.OnRenderStart(ctx, format)
		start := time.Now()

		var data []byte
		var err error
		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			err = molio.WriteJSON(m, &buf)
			data = buf.Bytes()
		case FormatDOT, FormatSVG:
			if dot == "" {
				dot = nodelink.ToDOT(m, opts.NodelinkOptions())
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = nodelink.RenderSVG(ctx, dot, opts.Layout)
			}
		default:
			err = ValidateFormat(format)
		}

		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
