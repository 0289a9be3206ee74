package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/renderfig/renderfig/pkg/diagram"
	"github.com/renderfig/renderfig/pkg/pipeline"
)

// enginesByExtension infers the engine from a source file extension when
// --engine is not given.
var enginesByExtension = map[string]string{
	".dot":  "dot",
	".gv":   "dot",
	".puml": "plantuml",
	".uml":  "plantuml",
	".mmd":  "mermaid",
	".tikz": "tikz",
	".asy":  "asymptote",
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	engine  string   // engine name; inferred from the file extension if empty
	to      string   // host document format driving output negotiation
	output  string   // output file path; defaults to the derived asset name
	noCache bool     // bypass the image cache
	attrs   []string // key=value block attributes
}

// renderCommand creates the render command for converting a single diagram
// source file to an image.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		to: "html",
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a diagram source file to an image",
		Long: `Render reads diagram source from a file (or stdin with "-"), runs it
through the conversion pipeline and writes the resulting image. The engine is
taken from --engine or inferred from the file extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.engine, "engine", "e", "", "diagram engine: dot, graphviz, plantuml, mermaid, tikz, asymptote")
	cmd.Flags().StringVar(&opts.to, "to", opts.to, "host document format for output negotiation (html, latex, docx, ...)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: content-hash name in the working directory)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the image cache")
	cmd.Flags().StringArrayVarP(&opts.attrs, "attr", "a", nil, "block attribute key=value (repeatable)")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	source, err := readSource(input)
	if err != nil {
		return err
	}

	engineName := opts.engine
	if engineName == "" {
		engineName = enginesByExtension[filepath.Ext(input)]
	}
	if engineName == "" {
		return fmt.Errorf("cannot infer engine from %q, use --engine", input)
	}

	attrs, err := parseAttrs(opts.attrs)
	if err != nil {
		return err
	}

	block := diagram.Block{
		Classes:    []string{engineName},
		Attributes: attrs,
		Source:     source,
	}

	runner := c.newRunner(cfg, opts.noCache)
	assets := pipeline.NewMemStore()

	start := time.Now()
	fig, err := runner.ProcessBlock(cmd.Context(), &block, opts.to, assets)
	if err != nil {
		return err
	}
	if fig == nil {
		printWarning("diagram was not converted (see log for the engine error)")
		return fmt.Errorf("render %s: no image produced", engineName)
	}

	asset, ok := assets.Get(fig.Target)
	if !ok {
		return fmt.Errorf("internal: figure target %s missing from asset store", fig.Target)
	}

	outPath := opts.output
	if outPath == "" {
		outPath = fig.Target
	}
	if err := os.WriteFile(outPath, asset.Data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	printSuccess("Rendered %s diagram (%s)", engineName, time.Since(start).Round(time.Millisecond))
	printFile(outPath)
	printDetail("type: %s, %d bytes", asset.MIMEType, len(asset.Data))
	return nil
}

// readSource reads diagram source from a file, or stdin for "-".
func readSource(input string) (string, error) {
	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// parseAttrs parses repeated key=value flags into an attribute map.
func parseAttrs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	attrs := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid attribute %q, want key=value", pair)
		}
		attrs[key] = value
	}
	return attrs, nil
}
