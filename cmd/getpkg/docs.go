package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/getpkg/pkg/output"
)

//go:embed docs/manual.md
var manualMarkdown string

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: MsgDocsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), renderManual())
			return nil
		},
	}
}

// renderManual renders the embedded manual for the terminal, falling
// back to the raw markdown when rendering is unavailable
func renderManual() string {
	options := []glamour.TermRendererOption{glamour.WithWordWrap(100)}
	if output.IsTerminal(os.Stdout) {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStandardStyle("notty"))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return manualMarkdown
	}

	rendered, err := renderer.Render(manualMarkdown)
	if err != nil {
		return manualMarkdown
	}
	return rendered
}
