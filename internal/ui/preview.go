package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/justify/internal/justify"
)

var (
	colorPrimary = lipgloss.Color("#00BFFF")
	colorAccent  = lipgloss.Color("#FFD700")
	colorDanger  = lipgloss.Color("#FF5252")
	colorMuted   = lipgloss.Color("#636363")
)

var (
	stylePreviewFrame = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(0, 1)

	styleGutter = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleOverflow = lipgloss.NewStyle().
			Foreground(colorDanger)

	styleTitle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)
)

// Preview renders the layout inside a frame, padding each line to the
// layout width and showing its badness in a right-hand gutter. Lines wider
// than the layout are highlighted.
func Preview(l justify.Layout) string {
	badWidth := 1
	for _, line := range l.Lines {
		badWidth = max(badWidth, len(fmt.Sprint(line.Badness)))
	}

	rows := make([]string, 0, len(l.Lines)+1)
	rows = append(rows, strings.Repeat("─", l.Width)+" "+styleGutter.Render(strings.Repeat("─", badWidth)))
	for _, line := range l.Lines {
		text := line.Text
		if pad := l.Width - len(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		} else if pad < 0 {
			text = styleOverflow.Render(text)
		}
		rows = append(rows, text+" "+styleGutter.Render(fmt.Sprintf("%*d", badWidth, line.Badness)))
	}

	title := styleTitle.Render(fmt.Sprintf("width %d · %d words · %d lines · badness %d",
		l.Width, l.Words, len(l.Lines), l.TotalBadness))
	return lipgloss.JoinVertical(lipgloss.Left, title, stylePreviewFrame.Render(strings.Join(rows, "\n")))
}

// Preview writes the framed layout.
func (p *Printer) Preview(l justify.Layout) {
	p.printf("%s\n", Preview(l))
}
