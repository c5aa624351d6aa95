package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/folio/renderer"
)

var format = flag.String("format", "term", "Report format: term, markdown or html.")

// stdout receives the reports.
var stdout io.Writer = os.Stdout

// printMarkdown writes a markdown report in the selected format.
func printMarkdown(title, md string) error {
	switch *format {
	case "markdown", "md":
		_, err := fmt.Fprint(stdout, md)
		return err
	case "html":
		page, err := renderer.HTML(title, md)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(stdout, page)
		return err
	case "term":
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
		if err != nil {
			return err
		}
		out, err := r.Render(md)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(stdout, out)
		return err
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}
