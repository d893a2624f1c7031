package runner

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Color modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Palette colours status words. A disabled palette renders text unchanged.
type Palette struct {
	enabled bool
	ok      lipgloss.Style
	failed  lipgloss.Style
	ignored lipgloss.Style
}

// NewPalette builds a palette for w according to mode.
func NewPalette(w io.Writer, mode string) (Palette, error) {
	var enabled bool

	switch mode {
	case ColorAlways:
		enabled = true
	case ColorNever:
		enabled = false
	case ColorAuto, "":
		enabled = isTerminal(w)
	default:
		return Palette{}, fmt.Errorf("%w: %q", ErrUnknownColor, mode)
	}

	r := lipgloss.NewRenderer(w)
	if enabled {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return Palette{
		enabled: enabled,
		ok:      r.NewStyle().Foreground(lipgloss.Color("2")),
		failed:  r.NewStyle().Foreground(lipgloss.Color("1")),
		ignored: r.NewStyle().Foreground(lipgloss.Color("3")),
	}, nil
}

func (p Palette) paint(s lipgloss.Style, text string) string {
	if !p.enabled {
		return text
	}

	return s.Render(text)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
