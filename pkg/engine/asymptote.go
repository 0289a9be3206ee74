package engine

import (
	"context"
	"os"
	"path/filepath"

	"github.com/renderfig/renderfig/pkg/diagram"
	"github.com/renderfig/renderfig/pkg/errors"
)

// Asymptote compiles Asymptote figures with asy. Only PDF output is wired
// here; downstream conversion handles hosts that can't embed it.
func Asymptote() *Spec {
	s := &Spec{
		Name:        "asymptote",
		LineComment: "//",
		MIMETypes:   []string{diagram.MIMEPDF},
	}
	s.Compile = func(ctx context.Context, req Request) (Result, error) {
		dir, err := os.MkdirTemp("", "renderfig-asy-*")
		if err != nil {
			return Result{}, errors.Wrap(errors.ErrCodeInternal, err, "create work dir")
		}
		defer os.RemoveAll(dir)

		inFile := filepath.Join(dir, "diagram.asy")
		if err := os.WriteFile(inFile, []byte(req.Source), 0o644); err != nil {
			return Result{}, errors.Wrap(errors.ErrCodeInternal, err, "write diagram source")
		}

		args := []string{"-f", "pdf", "-o", "diagram", "diagram.asy"}
		if _, err := execCommand(ctx, req.Config, "asy", args, nil, dir); err != nil {
			return Result{}, err
		}

		data, err := os.ReadFile(filepath.Join(dir, "diagram.pdf"))
		if err != nil {
			return Result{}, errors.Wrap(errors.ErrCodeEngineFailed, err, "asy wrote no PDF")
		}
		return Result{Data: data, MIMEType: diagram.MIMEPDF}, nil
	}
	return s
}
