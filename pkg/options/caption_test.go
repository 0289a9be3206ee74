package options

import (
	"strings"
	"testing"
)

func TestParseCaption(t *testing.T) {
	caption, err := ParseCaption("A *fine* `graph`")
	if err != nil {
		t.Fatalf("ParseCaption: %v", err)
	}

	if caption.Source != "A *fine* `graph`" {
		t.Errorf("Source = %q", caption.Source)
	}
	html := string(caption.HTML)
	if !strings.Contains(html, "<em>fine</em>") {
		t.Errorf("HTML should render emphasis, got %q", html)
	}
	if !strings.Contains(html, "<code>graph</code>") {
		t.Errorf("HTML should render code span, got %q", html)
	}
	if caption.Plain != "A fine graph" {
		t.Errorf("Plain = %q, want flattened text", caption.Plain)
	}
}

func TestParseCaptionMultiline(t *testing.T) {
	caption, err := ParseCaption("first line\nsecond line")
	if err != nil {
		t.Fatalf("ParseCaption: %v", err)
	}
	if caption.Plain != "first line second line" {
		t.Errorf("Plain = %q, soft break should become a space", caption.Plain)
	}
}

func TestParseCaptionLink(t *testing.T) {
	caption, err := ParseCaption("see [the docs](https://example.com)")
	if err != nil {
		t.Fatalf("ParseCaption: %v", err)
	}
	if caption.Plain != "see the docs" {
		t.Errorf("Plain = %q, link should flatten to its text", caption.Plain)
	}
}
