package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const maxCellWidth = 40

var (
	textHeaderStyle = lipgloss.NewStyle().Bold(true)
	textMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
)

// Widths returns the display width of every column, wide enough for the
// header label and each cell, capped at a fixed maximum.
func (v View) Widths() []int {
	widths := make([]int, len(v.Headers))
	for i, h := range v.Headers {
		widths[i] = lipgloss.Width(h.Label())
	}
	for _, row := range v.Rows {
		for i, cell := range row.Cells {
			if i >= len(widths) {
				break
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] > maxCellWidth {
			widths[i] = maxCellWidth
		}
	}
	return widths
}

// Text renders the view as aligned plain columns followed by the pager
// summary. It is used for non-interactive output.
func (v View) Text() string {
	widths := v.Widths()
	var b strings.Builder

	header := make([]string, len(v.Headers))
	for i, h := range v.Headers {
		header[i] = pad(h.Label(), widths[i])
	}
	b.WriteString(textHeaderStyle.Render(strings.TrimRight(strings.Join(header, "  "), " ")))
	b.WriteString("\n")

	for _, row := range v.Rows {
		cells := make([]string, len(widths))
		for i := range widths {
			if i < len(row.Cells) {
				cells[i] = pad(row.Cells[i], widths[i])
			} else {
				cells[i] = pad("", widths[i])
			}
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		b.WriteString("\n")
	}

	if v.Pager != nil {
		b.WriteString(textMutedStyle.Render(v.Pager.Summary()))
		b.WriteString("\n")
	}
	return b.String()
}

func pad(s string, width int) string {
	if lipgloss.Width(s) > width {
		s = truncate(s, width)
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}

func truncate(s string, width int) string {
	if width <= 1 {
		return ""
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
