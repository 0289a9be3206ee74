// Package diagram defines the core data model for the diagram conversion
// pipeline: code blocks tagged with a diagram language, the MIME types the
// pipeline traffics in, and the figure artifact produced for the host
// document.
//
// The package is deliberately free of rendering logic. Blocks come from the
// host document model, figures go back to it, and everything in between is
// the pipeline's concern.
package diagram

// Supported image MIME types. Every byte stream moving through the pipeline
// is tagged with one of these.
const (
	MIMEPDF = "application/pdf"
	MIMESVG = "image/svg+xml"
	MIMEPNG = "image/png"
)

// extensions maps MIME types to cache and asset file extensions. The mapping
// is bijective: each extension identifies exactly one MIME type, which is what
// lets the cache recover the type of an entry from its filename.
var extensions = map[string]string{
	MIMEPDF: "pdf",
	MIMESVG: "svg",
	MIMEPNG: "png",
}

var mimeByExtension = map[string]string{
	"pdf": MIMEPDF,
	"svg": MIMESVG,
	"png": MIMEPNG,
}

// Extension returns the file extension for a MIME type, or false if the type
// is not one the pipeline produces.
func Extension(mimeType string) (string, bool) {
	ext, ok := extensions[mimeType]
	return ext, ok
}

// MIMEForExtension returns the MIME type for a file extension ("pdf", "svg",
// "png"), or false for anything else.
func MIMEForExtension(ext string) (string, bool) {
	mt, ok := mimeByExtension[ext]
	return mt, ok
}

// Block is a fenced code block as handed over by the host document model.
// The first class selects the rendering engine; the remaining classes and the
// attribute map are carried through to the resulting figure. A Block is
// immutable during processing.
type Block struct {
	// Identifier is the block's id attribute, possibly empty.
	Identifier string

	// Classes are the block's type tags in order. Classes[0] names the
	// diagram engine.
	Classes []string

	// Attributes are the structured key/value attributes attached to the
	// block. Insertion order is irrelevant.
	Attributes map[string]string

	// Source is the raw diagram source text.
	Source string
}

// EngineName returns the block's first class, which selects the engine.
// Returns empty string for an untagged block.
func (b *Block) EngineName() string {
	if len(b.Classes) == 0 {
		return ""
	}
	return b.Classes[0]
}

// ImageAttributes are the display attributes applied to the image element
// itself, as opposed to its wrapping figure.
type ImageAttributes struct {
	Width  string
	Height string
	Style  string
}

// Figure is the terminal artifact of a successful conversion: everything the
// host needs to replace the original code block with an embedded image.
type Figure struct {
	// ID is the figure identifier for cross-references, possibly empty.
	ID string

	// Name is the figure's name attribute, possibly empty.
	Name string

	// Target is the asset filename the image bytes were registered under.
	Target string

	// MIMEType is the final image type of the registered asset.
	MIMEType string

	// AltText is the caption flattened to plain text, for accessibility.
	AltText string

	// Caption is the caption rendered as block content (HTML), nil when the
	// block carried no caption.
	Caption []byte

	// Attributes are custom figure attributes (fig-* options minus id/name).
	Attributes map[string]string

	// Image holds width/height/style for the image element.
	Image ImageAttributes
}
