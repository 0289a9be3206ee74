// Package options extracts rendering options for a diagram block.
//
// Options come from two places: directive lines embedded in the diagram
// source as comments (`//| width: 50%`) and structured attributes on the code
// block itself. Structured attributes are applied last and win on collision.
// After merging, keys are partitioned into caption, figure, image, and
// per-engine option groups.
package options

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/renderfig/renderfig/pkg/diagram"
)

// RenderOptions is the merged, partitioned option bundle for one block.
// Derived per block and consumed once.
type RenderOptions struct {
	// Caption is the parsed caption, nil when none was given.
	Caption *Caption

	// Filename overrides the content-hash-derived asset filename.
	Filename string

	// Label is the figure id fallback used when the block has no id.
	Label string

	// Name is the figure's name attribute.
	Name string

	// Figure holds custom figure attributes (fig-* keys, prefix stripped).
	Figure map[string]string

	// Image holds the display attributes of the image element.
	Image diagram.ImageAttributes

	// Engine holds per-engine passthrough options (opt-* keys, prefix
	// stripped).
	Engine map[string]string
}

// figPrefix and optPrefix route prefixed keys to their option groups.
const (
	figPrefix = "fig-"
	optPrefix = "opt-"
)

// directivePattern matches the key/value part of a directive line after the
// comment marker: `| <key>: <value>`.
var directivePattern = regexp.MustCompile(`^\|\s+([\w-]+):\s+(.*?)\s*$`)

// ParseDirectives scans source for lines of the form
// `<marker>| <key>: <value>` and returns the collected mapping. A `fig-cap`
// key is aliased to `caption`. An empty marker means the engine has no line
// comment syntax, so no directives exist.
func ParseDirectives(source, marker string) map[string]string {
	opts := make(map[string]string)
	if marker == "" {
		return opts
	}

	scanner := bufio.NewScanner(strings.NewReader(source))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		rest, ok := strings.CutPrefix(line, marker)
		if !ok {
			continue
		}
		m := directivePattern.FindStringSubmatch(rest)
		if m == nil {
			continue
		}
		key, value := m[1], m[2]
		if key == "fig-cap" {
			key = "caption"
		}
		opts[key] = value
	}
	return opts
}

// Merge overlays structured block attributes onto in-source directives.
// Attributes win on key collision (last writer wins).
func Merge(directives, attributes map[string]string) map[string]string {
	merged := make(map[string]string, len(directives)+len(attributes))
	for k, v := range directives {
		merged[k] = v
	}
	for k, v := range attributes {
		merged[k] = v
	}
	return merged
}

// Parse extracts the full option bundle for a block given the engine's line
// comment marker. Caption markup is parsed eagerly; a malformed caption
// surfaces here rather than mid-pipeline.
func Parse(block *diagram.Block, marker string) (*RenderOptions, error) {
	merged := Merge(ParseDirectives(block.Source, marker), block.Attributes)
	return Partition(merged)
}

// Partition classifies merged keys into the option groups: fig-* keys become
// figure attributes, opt-* keys become engine options, recognized plain keys
// land in their struct fields and everything else is dropped.
func Partition(merged map[string]string) (*RenderOptions, error) {
	opts := &RenderOptions{
		Figure: make(map[string]string),
		Engine: make(map[string]string),
	}

	for key, value := range merged {
		switch {
		case strings.HasPrefix(key, figPrefix):
			opts.Figure[strings.TrimPrefix(key, figPrefix)] = value
		case strings.HasPrefix(key, optPrefix):
			opts.Engine[strings.TrimPrefix(key, optPrefix)] = value
		case key == "caption":
			caption, err := ParseCaption(value)
			if err != nil {
				return nil, err
			}
			opts.Caption = caption
		case key == "filename":
			opts.Filename = value
		case key == "label":
			opts.Label = value
		case key == "name":
			opts.Name = value
		case key == "width":
			opts.Image.Width = value
		case key == "height":
			opts.Image.Height = value
		case key == "style":
			opts.Image.Style = value
		}
	}
	return opts, nil
}

// FigureID resolves the figure identifier: the block's own id wins, the label
// option is the fallback.
func FigureID(block *diagram.Block, opts *RenderOptions) string {
	if block.Identifier != "" {
		return block.Identifier
	}
	return opts.Label
}
