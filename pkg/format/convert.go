package format

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/renderfig/renderfig/pkg/errors"
)

// ConvertFunc converts image bytes from one encoding to another. The pipeline
// takes one of these so tests can substitute a fake converter.
type ConvertFunc func(ctx context.Context, data []byte) ([]byte, error)

// PDFToSVG converts PDF bytes to SVG using pdftocairo.
// Requires poppler: brew install poppler (macOS), apt install poppler-utils (Linux).
func PDFToSVG(ctx context.Context, pdf []byte) ([]byte, error) {
	if _, err := exec.LookPath("pdftocairo"); err != nil {
		return nil, errors.New(errors.ErrCodeConversion,
			"SVG conversion requires poppler. Install with:\n  macOS:  brew install poppler\n  Linux:  apt install poppler-utils")
	}

	cmd := exec.CommandContext(ctx, "pdftocairo", "-svg", "-", "-")
	cmd.Stdin = bytes.NewReader(pdf)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConversion, err, "pdftocairo: %s", errBuf.String())
	}
	if out.Len() == 0 {
		return nil, errors.New(errors.ErrCodeConversion, "pdftocairo produced no output")
	}
	return out.Bytes(), nil
}
