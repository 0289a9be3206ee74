// Package pkg provides the core libraries for renderfig diagram conversion.
//
// # Overview
//
// Renderfig turns diagram source code (Graphviz, PlantUML, Mermaid, TikZ,
// Asymptote and more) into embeddable images. The pkg directory is organized
// into a handful of focused areas:
//
//  1. [diagram] - Domain types (blocks, figures, MIME and extension tables)
//  2. [options] - Option parsing (attributes, in-source directives, captions)
//  3. [engine] - Diagram engines and the dynamic engine registry
//  4. [format] - Output format negotiation and PDF to SVG conversion
//  5. [cache] - Content-addressed caching of rendered images
//  6. [pipeline] - Orchestration (resolve → compile → convert → register)
//
// # Architecture
//
// The typical data flow through renderfig:
//
//	Fenced code block
//	         ↓
//	    [options] package (directives, attributes, caption)
//	         ↓
//	    [engine] package (resolve engine, compile source)
//	         ↓
//	    [format] package (negotiate type, convert PDF when needed)
//	         ↓
//	    Figure + registered image asset
//
// # Quick Start
//
// Convert a single block:
//
//	import (
//	    "context"
//	    "github.com/renderfig/renderfig/pkg/config"
//	    "github.com/renderfig/renderfig/pkg/diagram"
//	    "github.com/renderfig/renderfig/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil, config.Default())
//	store := pipeline.NewMemStore()
//	fig, err := runner.ProcessBlock(context.Background(), &diagram.Block{
//	    Classes: []string{"dot"},
//	    Source:  "digraph { a -> b }",
//	}, "html", store)
//
// # Main Packages
//
// [engine] - Built-in engine specs plus a registry that lazily discovers
// external "diagram-<name>" binaries on PATH. Engines are invoked over
// stdin/stdout with context-based timeouts.
//
// [cache] - SHA-1 content addressing with directory, Redis, and null
// backends. The directory backend stores one file per image as
// <hash>.<ext>.
//
// [pipeline] - The per-block state machine shared by the CLI and the HTTP
// service: failures either fail fast or degrade to the original code block
// depending on configuration.
//
// [config] - TOML configuration for engine paths, extra arguments,
// timeouts, per-engine options, and cache behavior.
//
// [errors] - Structured errors with machine-readable codes used across all
// packages.
//
// [observability] - Optional hooks for instrumenting engine invocations and
// cache operations without pulling in a metrics backend.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/engine/...    # Specific package
//
// [diagram]: https://pkg.go.dev/github.com/renderfig/renderfig/pkg/diagram
// [options]: https://pkg.go.dev/github.com/renderfig/renderfig/pkg/options
// [engine]: https://pkg.go.dev/github.com/renderfig/renderfig/pkg/engine
// [format]: https://pkg.go.dev/github.com/renderfig/renderfig/pkg/format
// [cache]: https://pkg.go.dev/github.com/renderfig/renderfig/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/renderfig/renderfig/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/renderfig/renderfig/pkg/config
// [errors]: https://pkg.go.dev/github.com/renderfig/renderfig/pkg/errors
// [observability]: https://pkg.go.dev/github.com/renderfig/renderfig/pkg/observability
package pkg
