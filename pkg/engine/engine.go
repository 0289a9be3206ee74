// Package engine defines diagram rendering engines and the registry that
// resolves a block's type tag to one.
//
// An engine is a converter from diagram source text to binary image data in
// some MIME type. Built-in engines wrap well-known external tools (dot,
// plantuml, mmdc, pdflatex, asy) plus an in-process GraphViz renderer;
// unknown tags can be resolved at runtime through a [Loader].
//
// Engines advertise which MIME types they can produce, but a compile call is
// free to ignore the requested type when it only supports one output. The
// caller must always trust the MIME type returned by Compile, not the one it
// asked for.
package engine

import "context"

// Config carries per-engine settings supplied by the application
// configuration. The zero value is valid and means "defaults for this
// engine".
type Config struct {
	// Path overrides the engine's executable path.
	Path string `toml:"path"`

	// ExtraArgs are appended to the engine's argument list on every
	// invocation (e.g. additional include directories).
	ExtraArgs []string `toml:"extra_args"`

	// TimeoutSeconds bounds a single engine invocation. Zero means no
	// timeout: a hung external binary hangs the conversion.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// MIMETypes enables or disables individual output types. Types absent
	// from the map keep their engine default.
	MIMETypes map[string]bool `toml:"mime_types"`

	// Options are default engine options, overridden per block by opt-*
	// keys.
	Options map[string]string `toml:"options"`

	// Package overrides the executable name probed by the dynamic loader
	// for this tag.
	Package string `toml:"package"`
}

// Request is a single compile invocation.
type Request struct {
	// Source is the raw diagram source text.
	Source string

	// MIMEType is the preferred output type. Engines that support a single
	// output ignore it.
	MIMEType string

	// Options are the merged engine options for this block.
	Options map[string]string

	// Config is the per-engine configuration.
	Config Config
}

// Result is the outcome of a successful compile: image bytes plus the MIME
// type actually produced.
type Result struct {
	Data     []byte
	MIMEType string
}

// CompileFunc renders diagram source into image bytes.
type CompileFunc func(ctx context.Context, req Request) (Result, error)

// Spec describes a rendering engine. Specs are registered once and shared
// read-only across all invocations.
type Spec struct {
	// Name identifies the engine and matches the block's type tag.
	Name string

	// LineComment is the engine language's line comment marker, used to
	// detect in-source option directives. Empty when the language has no
	// line comments.
	LineComment string

	// MIMETypes are the output types the engine can natively produce, in
	// the engine's own preference order.
	MIMETypes []string

	// Compile renders source text.
	Compile CompileFunc
}

// SupportedTypes returns the engine's producible MIME types after applying
// the configuration's enable/disable map.
func (s *Spec) SupportedTypes(cfg Config) []string {
	if len(cfg.MIMETypes) == 0 {
		return s.MIMETypes
	}
	var types []string
	for _, mt := range s.MIMETypes {
		if enabled, ok := cfg.MIMETypes[mt]; ok && !enabled {
			continue
		}
		types = append(types, mt)
	}
	return types
}
