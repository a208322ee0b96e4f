package main

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed docs/colors.md
var colorsDoc string

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: MsgDocsShort,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(colorsDoc))
	},
}

// renderMarkdown converts markdown to terminal output, falling back to
// the raw text if rendering fails.
func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	return rendered
}
