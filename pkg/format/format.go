// Package format decides which image encoding a rendered diagram should use.
//
// The decision depends on two parties: the host document format (can it embed
// PDF natively?) and the engine (which types can it actually produce?). The
// negotiator proposes, the engine disposes: an engine that only emits one
// type wins over any preference.
package format

import (
	"slices"

	"github.com/renderfig/renderfig/pkg/diagram"
)

// pdfFormats are the host document formats that can embed PDF images
// natively. Everything else gets vector output as SVG.
var pdfFormats = map[string]bool{
	"latex":   true,
	"beamer":  true,
	"context": true,
	"ms":      true,
	"pdf":     true,
}

// CanEmbedPDF reports whether the host document format can embed PDF images
// without conversion.
func CanEmbedPDF(hostFormat string) bool {
	return pdfFormats[hostFormat]
}

// Preferred returns the ordered MIME type preference for a host document
// format. PDF-capable formats prefer [pdf, png]; all others prefer [svg, png].
func Preferred(hostFormat string) []string {
	if CanEmbedPDF(hostFormat) {
		return []string{diagram.MIMEPDF, diagram.MIMEPNG}
	}
	return []string{diagram.MIMESVG, diagram.MIMEPNG}
}

// Choose picks the first preferred MIME type the engine supports. Returns
// false when engine and preference share no type; callers then fall back to
// whatever the engine produces and convert afterwards.
func Choose(supported, preferred []string) (string, bool) {
	for _, want := range preferred {
		if slices.Contains(supported, want) {
			return want, true
		}
	}
	return "", false
}
