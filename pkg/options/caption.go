package options

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/renderfig/renderfig/pkg/errors"
)

// captionMarkdown is the shared goldmark instance for caption parsing.
// Captions are single paragraphs in practice, so GFM with defaults is plenty.
var captionMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Caption is a figure caption in its three consumed forms: the raw markup,
// the rendered block content for the figure element, and the flattened plain
// text used as the image's alt text.
type Caption struct {
	Source string
	HTML   []byte
	Plain  string
}

// ParseCaption parses caption markup into block content and flattens it to
// plain text.
func ParseCaption(source string) (*Caption, error) {
	var buf bytes.Buffer
	if err := captionMarkdown.Convert([]byte(source), &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOption, err, "parse caption markup")
	}

	return &Caption{
		Source: source,
		HTML:   buf.Bytes(),
		Plain:  flatten(source),
	}, nil
}

// flatten reduces caption markup to its inline text content by walking the
// parsed AST and collecting text segments.
func flatten(source string) string {
	src := []byte(source)
	doc := captionMarkdown.Parser().Parse(text.NewReader(src))

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
