package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/renderfig/renderfig/pkg/engine"
)

// enginesCommand creates the engines listing command.
func (c *CLI) enginesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List the built-in diagram engines",
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := engine.Builtins()
			sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })

			for _, s := range specs {
				marker := s.LineComment
				if marker == "" {
					marker = "-"
				}
				fmt.Printf("%-10s  comment: %-3s  output: %s\n",
					s.Name, marker, strings.Join(shortTypes(s.MIMETypes), ", "))
			}
			return nil
		},
	}
}

// shortTypes renders MIME types as their extensions for compact listing.
func shortTypes(mimeTypes []string) []string {
	short := make([]string, 0, len(mimeTypes))
	for _, mt := range mimeTypes {
		if i := strings.LastIndexByte(mt, '/'); i >= 0 {
			mt = mt[i+1:]
		}
		short = append(short, strings.TrimSuffix(mt, "+xml"))
	}
	return short
}
