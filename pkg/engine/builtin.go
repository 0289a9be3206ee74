package engine

import (
	"context"
	"slices"

	"github.com/renderfig/renderfig/pkg/diagram"
)

// Builtins returns the engines registered eagerly at startup.
func Builtins() []*Spec {
	return []*Spec{
		Dot(),
		GraphViz(),
		PlantUML(),
		Mermaid(),
		TikZ(),
		Asymptote(),
	}
}

// resolveType picks the output type for a request: the requested type when
// the engine supports it, the engine's first choice otherwise. This is where
// engine authority overrides negotiator preference.
func resolveType(s *Spec, requested string) string {
	if slices.Contains(s.MIMETypes, requested) {
		return requested
	}
	return s.MIMETypes[0]
}

// Dot wraps the GraphViz dot binary, reading DOT on stdin and writing the
// image to stdout.
func Dot() *Spec {
	s := &Spec{
		Name:        "dot",
		LineComment: "//",
		MIMETypes:   []string{diagram.MIMESVG, diagram.MIMEPNG, diagram.MIMEPDF},
	}
	s.Compile = func(ctx context.Context, req Request) (Result, error) {
		mimeType := resolveType(s, req.MIMEType)
		ext, _ := diagram.Extension(mimeType)

		args := []string{"-T" + ext}
		if layout := req.Options["layout"]; layout != "" {
			args = append(args, "-K"+layout)
		}

		data, err := run(ctx, req.Config, "dot", args, []byte(req.Source))
		if err != nil {
			return Result{}, err
		}
		return Result{Data: data, MIMEType: mimeType}, nil
	}
	return s
}

// PlantUML wraps the plantuml binary in pipe mode.
func PlantUML() *Spec {
	s := &Spec{
		Name:        "plantuml",
		LineComment: "'",
		MIMETypes:   []string{diagram.MIMESVG, diagram.MIMEPNG},
	}
	s.Compile = func(ctx context.Context, req Request) (Result, error) {
		mimeType := resolveType(s, req.MIMEType)
		ext, _ := diagram.Extension(mimeType)

		args := []string{"-t" + ext, "-pipe", "-charset", "UTF-8"}
		data, err := run(ctx, req.Config, "plantuml", args, []byte(req.Source))
		if err != nil {
			return Result{}, err
		}
		return Result{Data: data, MIMEType: mimeType}, nil
	}
	return s
}
