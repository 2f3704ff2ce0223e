package docs

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Renderer converts markdown to terminal output using glamour.
type Renderer struct {
	// Width is the word-wrap width; 0 means glamour's default.
	Width int
}

// NewRenderer creates a renderer with terminal auto-detection.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render converts markdown to styled terminal output. When stdout is
// not a terminal the content comes back as plain text, so piping docs
// through a pager or into a file stays readable.
func (r *Renderer) Render(content string) string {
	options := []glamour.TermRendererOption{
		glamour.WithStylePath(r.styleName()),
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

func (r *Renderer) styleName() string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return "notty"
	}
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
