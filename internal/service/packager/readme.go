package packager

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"

	"github.com/oshokin/apk-packager/internal/domain/apk"
)

// DefaultReadmeWidth is the word-wrap width used when rendering the README.
const DefaultReadmeWidth = 80

// RenderReadme writes the README shipped inside every package to w.
// With raw set the markdown is written as is, otherwise it is styled for the terminal.
func RenderReadme(w io.Writer, width int, raw bool) error {
	if raw {
		_, err := io.WriteString(w, apk.Readme())
		return err
	}

	if width <= 0 {
		width = DefaultReadmeWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}

	rendered, err := renderer.Render(apk.Readme())
	if err != nil {
		return fmt.Errorf("render readme: %w", err)
	}

	_, err = io.WriteString(w, rendered)

	return err
}
