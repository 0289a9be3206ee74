package format

import (
	"slices"
	"testing"

	"github.com/renderfig/renderfig/pkg/diagram"
)

func TestPreferred(t *testing.T) {
	tests := []struct {
		hostFormat string
		want       []string
	}{
		{"latex", []string{diagram.MIMEPDF, diagram.MIMEPNG}},
		{"beamer", []string{diagram.MIMEPDF, diagram.MIMEPNG}},
		{"context", []string{diagram.MIMEPDF, diagram.MIMEPNG}},
		{"html", []string{diagram.MIMESVG, diagram.MIMEPNG}},
		{"docx", []string{diagram.MIMESVG, diagram.MIMEPNG}},
		{"", []string{diagram.MIMESVG, diagram.MIMEPNG}},
	}

	for _, tt := range tests {
		if got := Preferred(tt.hostFormat); !slices.Equal(got, tt.want) {
			t.Errorf("Preferred(%q) = %v, want %v", tt.hostFormat, got, tt.want)
		}
	}
}

func TestCanEmbedPDF(t *testing.T) {
	if !CanEmbedPDF("latex") {
		t.Error("latex should embed PDF")
	}
	if CanEmbedPDF("html") {
		t.Error("html should not embed PDF")
	}
}

func TestChoose(t *testing.T) {
	preferred := []string{diagram.MIMESVG, diagram.MIMEPNG}

	// Engine supporting the first preference wins.
	got, ok := Choose([]string{diagram.MIMEPNG, diagram.MIMESVG}, preferred)
	if !ok || got != diagram.MIMESVG {
		t.Errorf("Choose = %q, %v; want svg", got, ok)
	}

	// Fall through to the second preference.
	got, ok = Choose([]string{diagram.MIMEPNG}, preferred)
	if !ok || got != diagram.MIMEPNG {
		t.Errorf("Choose = %q, %v; want png", got, ok)
	}

	// No overlap: negotiation fails, engine authority takes over upstream.
	if _, ok := Choose([]string{diagram.MIMEPDF}, preferred); ok {
		t.Error("Choose should report no overlap for pdf-only engine and svg preference")
	}
}
