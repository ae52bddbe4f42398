package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// foregrounds maps core.Color to terminal colors.
var foregrounds = map[core.Color]lipgloss.Color{
	core.ColorRed:          lipgloss.Color("1"),
	core.ColorGreen:        lipgloss.Color("2"),
	core.ColorYellow:       lipgloss.Color("3"),
	core.ColorBlue:         lipgloss.Color("4"),
	core.ColorCyan:         lipgloss.Color("6"),
	core.ColorWhite:        lipgloss.Color("7"),
	core.ColorBrightGreen:  lipgloss.Color("10"),
	core.ColorBrightYellow: lipgloss.Color("11"),
	core.ColorBrightWhite:  lipgloss.Color("15"),
	core.ColorOrange:       lipgloss.Color("208"),
	core.ColorGray:         lipgloss.Color("245"),
}

// Renderer converts Screen buffers to styled strings.
type Renderer struct {
	styles   map[core.Color]lipgloss.Style
	fallback lipgloss.Style
}

// NewRenderer creates a renderer. A non-empty sky paints every cell's background.
func NewRenderer(sky lipgloss.Color) *Renderer {
	base := lipgloss.NewStyle()
	if sky != "" {
		base = base.Background(sky)
	}

	r := &Renderer{
		styles:   make(map[core.Color]lipgloss.Style, len(foregrounds)+1),
		fallback: base,
	}
	r.styles[core.ColorDefault] = base
	for c, fg := range foregrounds {
		r.styles[c] = base.Foreground(fg)
	}
	return r
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (r *Renderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(r.style(color).Render(run.String()))
		}
	}
	return sb.String()
}

func (r *Renderer) style(c core.Color) lipgloss.Style {
	if st, ok := r.styles[c]; ok {
		return st
	}
	return r.fallback
}
