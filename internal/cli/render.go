package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/growthcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the lipgloss styles for CLI output, derived from a theme so
// the configured theme also colors non-interactive output.
type palette struct {
	title  lipgloss.Style
	header lipgloss.Style
	value  lipgloss.Style
	muted  lipgloss.Style
	money  lipgloss.Style
	trend  lipgloss.Style
	warn   lipgloss.Style
	rule   lipgloss.Style
}

func newPalette(t theme.Theme) palette {
	return palette{
		title:  lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary),
		header: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		value:  lipgloss.NewStyle().Foreground(t.TextPrimary),
		muted:  lipgloss.NewStyle().Foreground(t.TextMuted),
		money:  lipgloss.NewStyle().Foreground(t.Green),
		trend:  lipgloss.NewStyle().Foreground(t.Blue),
		warn:   lipgloss.NewStyle().Foreground(t.Orange),
		rule:   lipgloss.NewStyle().Foreground(t.TextDim),
	}
}

// styles returns the palette for the currently active theme.
func styles() palette { return newPalette(theme.Active) }

const titleWidth = 55

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// separatorRow is a row that renders as a horizontal rule.
var separatorRow = []string{"---"}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == separatorRow[0]
}

// RenderTitle renders a centered title in a rounded box.
func RenderTitle(title string) string {
	st := styles()
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Active.Border).
		Width(titleWidth).
		Align(lipgloss.Center).
		Padding(0, 1)
	return box.Render(st.title.Render(title))
}

// RenderTable renders a bordered table. The first column is left-aligned
// and the rest right-aligned; a row holding the single cell "---" renders
// as a separator.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 {
		numCols = len(t.Rows[0])
	}
	widths := columnWidths(t, numCols)
	st := styles()

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + st.header.Render(t.Title) + "\n")
	}

	b.WriteString(st.ruleLine("╭", "┬", "╮", widths))
	if len(t.Headers) > 0 {
		st.writeRow(&b, t.Headers, widths, st.header, false)
		b.WriteString(st.ruleLine("├", "┼", "┤", widths))
	}
	for _, row := range t.Rows {
		if isSeparator(row) {
			b.WriteString(st.ruleLine("├", "┼", "┤", widths))
			continue
		}
		st.writeRow(&b, row, widths, st.value, true)
	}
	b.WriteString(st.ruleLine("╰", "┴", "╯", widths))

	return b.String()
}

// writeRow pads each cell to its column width. Missing cells render blank.
func (st palette) writeRow(b *strings.Builder, cells []string, widths []int, cellStyle lipgloss.Style, rightAlign bool) {
	bar := st.rule.Render("│")
	b.WriteString(bar)
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		format := " %-*s "
		if rightAlign && i > 0 {
			format = " %*s "
		}
		b.WriteString(cellStyle.Render(fmt.Sprintf(format, w, cell)))
		b.WriteString(bar)
	}
	b.WriteString("\n")
}

func (st palette) ruleLine(left, mid, right string, widths []int) string {
	segments := make([]string, len(widths))
	for i, w := range widths {
		segments[i] = strings.Repeat("─", w+2)
	}
	return st.rule.Render(left+strings.Join(segments, mid)+right) + "\n"
}

func columnWidths(t Table, numCols int) []int {
	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	grow := func(cells []string) {
		for i, cell := range cells {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	grow(t.Headers)
	for _, row := range t.Rows {
		if !isSeparator(row) {
			grow(row)
		}
	}
	return widths
}

// RenderSparkline maps values onto eight block heights scaled to the peak.
// Values at or below zero use the lowest block.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune("▁▂▃▄▅▆▇█")
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	out := make([]rune, len(values))
	for i, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		out[i] = blocks[min(max(idx, 0), len(blocks)-1)]
	}
	return string(out)
}
