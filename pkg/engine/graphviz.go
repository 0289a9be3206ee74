package engine

import (
	"bytes"
	"context"

	"github.com/goccy/go-graphviz"

	"github.com/renderfig/renderfig/pkg/diagram"
	"github.com/renderfig/renderfig/pkg/errors"
)

// GraphViz renders DOT in-process via the embedded GraphViz library. Unlike
// the dot engine it needs no external binary, at the cost of supporting only
// SVG and PNG output.
func GraphViz() *Spec {
	s := &Spec{
		Name:        "graphviz",
		LineComment: "//",
		MIMETypes:   []string{diagram.MIMESVG, diagram.MIMEPNG},
	}
	s.Compile = func(ctx context.Context, req Request) (Result, error) {
		mimeType := resolveType(s, req.MIMEType)

		gv, err := graphviz.New(ctx)
		if err != nil {
			return Result{}, errors.Wrap(errors.ErrCodeEngineFailed, err, "init graphviz")
		}
		defer gv.Close()

		g, err := graphviz.ParseBytes([]byte(req.Source))
		if err != nil {
			return Result{}, errors.Wrap(errors.ErrCodeEngineFailed, err, "parse DOT")
		}
		defer g.Close()

		format := graphviz.SVG
		if mimeType == diagram.MIMEPNG {
			format = graphviz.PNG
		}

		var buf bytes.Buffer
		if err := gv.Render(ctx, g, format, &buf); err != nil {
			return Result{}, errors.Wrap(errors.ErrCodeEngineFailed, err, "graphviz render")
		}
		if buf.Len() == 0 {
			return Result{}, errors.New(errors.ErrCodeEngineFailed, "graphviz produced no output")
		}
		return Result{Data: buf.Bytes(), MIMEType: mimeType}, nil
	}
	return s
}
