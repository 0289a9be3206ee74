package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/renderfig/renderfig/pkg/diagram"
	"github.com/renderfig/renderfig/pkg/errors"
)

// tikzTemplate wraps TikZ source in a standalone LaTeX document. The
// header-includes option is spliced into the preamble for extra packages or
// TikZ library loads.
const tikzTemplate = `\documentclass{standalone}
\usepackage{tikz}
%s
\begin{document}
%s
\end{document}
`

// TikZ compiles TikZ pictures with pdflatex in a scoped temp directory.
// LaTeX only produces PDF here; the pipeline converts downstream when the
// host format can't embed it.
func TikZ() *Spec {
	s := &Spec{
		Name:        "tikz",
		LineComment: "%",
		MIMETypes:   []string{diagram.MIMEPDF},
	}
	s.Compile = func(ctx context.Context, req Request) (Result, error) {
		dir, err := os.MkdirTemp("", "renderfig-tikz-*")
		if err != nil {
			return Result{}, errors.Wrap(errors.ErrCodeInternal, err, "create work dir")
		}
		defer os.RemoveAll(dir)

		doc := fmt.Sprintf(tikzTemplate, req.Options["header-includes"], req.Source)
		texFile := filepath.Join(dir, "diagram.tex")
		if err := os.WriteFile(texFile, []byte(doc), 0o644); err != nil {
			return Result{}, errors.Wrap(errors.ErrCodeInternal, err, "write tex source")
		}

		args := []string{"-interaction=nonstopmode", "-halt-on-error", "diagram.tex"}
		if _, err := execCommand(ctx, req.Config, "pdflatex", args, nil, dir); err != nil {
			return Result{}, err
		}

		data, err := os.ReadFile(filepath.Join(dir, "diagram.pdf"))
		if err != nil {
			return Result{}, errors.Wrap(errors.ErrCodeEngineFailed, err, "pdflatex wrote no PDF")
		}
		return Result{Data: data, MIMEType: diagram.MIMEPDF}, nil
	}
	return s
}
