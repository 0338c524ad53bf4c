package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors follow the palette of the rest of the CLI output.
const (
	colorError     = lipgloss.Color("#EF4444")
	colorHighlight = lipgloss.Color("#3B82F6")
)

// reportStyles are bound to the output writer, so anything that is not a
// terminal gets plain text.
type reportStyles struct {
	heading lipgloss.Style
	output  lipgloss.Style
}

func newReportStyles(w io.Writer) reportStyles {
	r := lipgloss.NewRenderer(w)
	return reportStyles{
		heading: r.NewStyle().Bold(true).Foreground(colorError),
		output:  r.NewStyle().Foreground(colorHighlight),
	}
}

// writeDuplicateReport prints the duplicate summary. Nothing is written when
// dups is empty.
func writeDuplicateReport(w io.Writer, dups []registryEntry) error {
	if len(dups) == 0 {
		return nil
	}
	styles := newReportStyles(w)
	var b strings.Builder
	b.WriteString(styles.heading.Render("ERROR:"))
	fmt.Fprintf(&b, " %d test output(s) are used in more than one doc\n", len(dups))
	for _, dup := range dups {
		fmt.Fprintf(&b, "- %s: %s\n", styles.output.Render(dup.Output), strings.Join(dup.Files, ", "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeRegistry lists every output with the docs that write it.
func writeRegistry(w io.Writer, entries []registryEntry) error {
	styles := newReportStyles(w)
	var b strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&b, "%s: %s\n", styles.output.Render(entry.Output), strings.Join(entry.Files, ", "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
