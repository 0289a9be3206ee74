package engine

import (
	"context"
	"os"
	"path/filepath"

	"github.com/renderfig/renderfig/pkg/diagram"
	"github.com/renderfig/renderfig/pkg/errors"
)

// Mermaid wraps the mermaid CLI (mmdc). mmdc works on files, so each compile
// runs in a scoped temp directory that is removed on success and failure
// alike.
func Mermaid() *Spec {
	s := &Spec{
		Name:        "mermaid",
		LineComment: "%%",
		MIMETypes:   []string{diagram.MIMEPDF, diagram.MIMESVG, diagram.MIMEPNG},
	}
	s.Compile = func(ctx context.Context, req Request) (Result, error) {
		mimeType := resolveType(s, req.MIMEType)
		ext, _ := diagram.Extension(mimeType)

		dir, err := os.MkdirTemp("", "renderfig-mermaid-*")
		if err != nil {
			return Result{}, errors.Wrap(errors.ErrCodeInternal, err, "create work dir")
		}
		defer os.RemoveAll(dir)

		inFile := filepath.Join(dir, "diagram.mmd")
		outFile := filepath.Join(dir, "diagram."+ext)
		if err := os.WriteFile(inFile, []byte(req.Source), 0o644); err != nil {
			return Result{}, errors.Wrap(errors.ErrCodeInternal, err, "write diagram source")
		}

		args := []string{"--input", inFile, "--output", outFile}
		if mimeType == diagram.MIMEPDF {
			args = append(args, "--pdfFit")
		}
		if theme := req.Options["theme"]; theme != "" {
			args = append(args, "--theme", theme)
		}
		if bg := req.Options["background"]; bg != "" {
			args = append(args, "--backgroundColor", bg)
		}

		if _, err := execCommand(ctx, req.Config, "mmdc", args, nil, dir); err != nil {
			return Result{}, err
		}

		data, err := os.ReadFile(outFile)
		if err != nil {
			return Result{}, errors.Wrap(errors.ErrCodeEngineFailed, err, "mmdc wrote no output file")
		}
		if len(data) == 0 {
			return Result{}, errors.New(errors.ErrCodeEngineFailed, "mmdc produced no output")
		}
		return Result{Data: data, MIMEType: mimeType}, nil
	}
	return s
}
