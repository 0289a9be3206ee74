package options

import (
	"strings"
	"testing"

	"github.com/renderfig/renderfig/pkg/diagram"
)

func TestParseDirectives(t *testing.T) {
	source := strings.Join([]string{
		"//| caption: A *fine* graph",
		"//| width: 50%",
		"// plain comment, not a directive",
		"//|bad: missing space after pipe",
		"digraph { A -> B }",
	}, "\n")

	got := ParseDirectives(source, "//")
	if got["caption"] != "A *fine* graph" {
		t.Errorf("caption = %q", got["caption"])
	}
	if got["width"] != "50%" {
		t.Errorf("width = %q", got["width"])
	}
	if _, ok := got["bad"]; ok {
		t.Error("directive without space after pipe should not match")
	}
	if len(got) != 2 {
		t.Errorf("got %d directives, want 2: %v", len(got), got)
	}
}

func TestParseDirectivesMarkers(t *testing.T) {
	// PlantUML-style apostrophe marker.
	got := ParseDirectives("'| label: fig-x\n@startuml\n@enduml", "'")
	if got["label"] != "fig-x" {
		t.Errorf("label = %q, want fig-x", got["label"])
	}

	// No marker means no directives.
	if got := ParseDirectives("//| width: 10", ""); len(got) != 0 {
		t.Errorf("empty marker should yield no directives, got %v", got)
	}
}

func TestParseDirectivesFigCapAlias(t *testing.T) {
	got := ParseDirectives("%| fig-cap: The caption\n", "%")
	if got["caption"] != "The caption" {
		t.Errorf("fig-cap should alias caption, got %v", got)
	}
}

func TestMergeAttributesWin(t *testing.T) {
	directives := map[string]string{"label": "fig-x", "width": "10"}
	attributes := map[string]string{"label": "fig-y"}

	merged := Merge(directives, attributes)
	if merged["label"] != "fig-y" {
		t.Errorf("structured attribute should win, got label=%q", merged["label"])
	}
	if merged["width"] != "10" {
		t.Error("non-colliding directive should survive the merge")
	}
}

func TestPartition(t *testing.T) {
	opts, err := Partition(map[string]string{
		"caption":    "Flow of *data*",
		"filename":   "flow.svg",
		"label":      "fig-flow",
		"name":       "flow",
		"width":      "80%",
		"height":     "120px",
		"style":      "border: none",
		"fig-pos":    "h",
		"opt-layout": "neato",
		"mystery":    "dropped",
	})
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}

	if opts.Caption == nil || opts.Caption.Plain != "Flow of data" {
		t.Errorf("caption not parsed: %+v", opts.Caption)
	}
	if opts.Filename != "flow.svg" || opts.Label != "fig-flow" || opts.Name != "flow" {
		t.Errorf("top-level keys mis-assigned: %+v", opts)
	}
	if opts.Image.Width != "80%" || opts.Image.Height != "120px" || opts.Image.Style != "border: none" {
		t.Errorf("image attributes mis-assigned: %+v", opts.Image)
	}
	if opts.Figure["pos"] != "h" {
		t.Errorf("fig-pos should become figure attribute pos, got %v", opts.Figure)
	}
	if opts.Engine["layout"] != "neato" {
		t.Errorf("opt-layout should become engine option layout, got %v", opts.Engine)
	}
	if _, ok := opts.Figure["mystery"]; ok {
		t.Error("unknown plain keys should not leak into figure attributes")
	}
}

func TestParsePrecedence(t *testing.T) {
	// The in-source directive says fig-x, the structured attribute says
	// fig-y. The attribute is applied after and wins.
	block := &diagram.Block{
		Classes:    []string{"plantuml"},
		Attributes: map[string]string{"label": "fig-y"},
		Source:     "'| label: fig-x\n@startuml\nA -> B\n@enduml",
	}

	opts, err := Parse(block, "'")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if opts.Label != "fig-y" {
		t.Errorf("label = %q, want fig-y", opts.Label)
	}
}

func TestFigureID(t *testing.T) {
	opts := &RenderOptions{Label: "fig-fallback"}

	withID := &diagram.Block{Identifier: "fig-main"}
	if got := FigureID(withID, opts); got != "fig-main" {
		t.Errorf("FigureID = %q, want fig-main", got)
	}

	noID := &diagram.Block{}
	if got := FigureID(noID, opts); got != "fig-fallback" {
		t.Errorf("FigureID = %q, want label fallback", got)
	}
}
