package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const defaultWrapWidth = 80

// renderer prints assistant replies, as rendered markdown when writing to a
// terminal and as plain text otherwise.
type renderer struct {
	out      io.Writer
	markdown bool
	width    int
}

func newRenderer(out io.Writer, raw bool) *renderer {
	r := &renderer{out: out, width: defaultWrapWidth}
	if raw {
		return r
	}

	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return r
	}

	r.markdown = true
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		r.width = width
	}
	return r
}

// Reply writes one assistant reply. Rendering failures fall back to plain text.
func (r *renderer) Reply(text string) error {
	if r.markdown {
		if rendered, err := renderMarkdown(text, r.width, glamour.WithAutoStyle()); err == nil {
			_, err = io.WriteString(r.out, rendered)
			return err
		}
	}

	_, err := fmt.Fprintln(r.out, strings.TrimRight(text, "\n"))
	return err
}

func renderMarkdown(text string, width int, style glamour.TermRendererOption) (string, error) {
	tr, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", err
	}
	return tr.Render(text)
}
