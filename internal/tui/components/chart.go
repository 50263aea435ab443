package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/growthcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var barBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// yAxis is the scale of a bar chart: numIntervals ticks of tickStep each,
// rowsPerTick terminal rows apart.
type yAxis struct {
	tickStep     float64
	ceiling      float64
	numIntervals int
	rowsPerTick  int
}

func (y yAxis) rows() int { return y.rowsPerTick * y.numIntervals }

func newYAxis(peak float64, height int) yAxis {
	step := chartTickStep(peak)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(peak/step)) > maxIntervals {
		step *= 2
	}
	ceiling := math.Ceil(peak/step) * step
	n := max(int(math.Round(ceiling/step)), 1)
	return yAxis{
		tickStep:     step,
		ceiling:      ceiling,
		numIntervals: n,
		rowsPerTick:  max(height/n, 2),
	}
}

// BarChart renders one bar per value, left to right, with a labeled y axis
// and x labels underneath. When the bars do not fit in width the series is
// sampled evenly, always keeping the first and last value. Negative values
// draw as empty columns.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}

	t := theme.Active
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}
	axis := newYAxis(peak, max(height, 3))

	labelW := max(len(formatChartLabel(axis.ceiling))+1, 4)
	chartW := max(width-labelW-1, 5)

	values, labels = sampleSeries(values, labels, chartW)
	n := len(values)
	gap := 1
	if n == 1 {
		gap = 0
	}
	barW := min(max((chartW-(n-1)*gap)/n, 1), 6)
	axisLen := n*barW + (n-1)*gap

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	var b strings.Builder

	chartH := axis.rows()
	for row := chartH; row >= 1; row-- {
		top := axis.ceiling * float64(row) / float64(chartH)
		bottom := axis.ceiling * float64(row-1) / float64(chartH)

		barStyle := lipgloss.NewStyle().Foreground(color)
		if float64(row)/float64(chartH) <= 0.5 {
			barStyle = lipgloss.NewStyle().Foreground(t.Accent)
		}

		tick := ""
		if row%axis.rowsPerTick == 0 {
			tick = formatChartLabel(axis.tickStep * float64(row/axis.rowsPerTick))
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", labelW, tick)))

		for i, v := range values {
			if i > 0 {
				b.WriteString(strings.Repeat(" ", gap))
			}
			b.WriteString(barStyle.Render(strings.Repeat(string(barCell(v, bottom, top)), barW)))
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", labelW, "0", strings.Repeat("─", axisLen))))
	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", labelW+1))
		b.WriteString(axisStyle.Render(xLabels(labels, barW+gap, axisLen)))
	}
	return b.String()
}

// barCell picks the block for a value within one row band.
func barCell(v, bottom, top float64) rune {
	switch {
	case v >= top:
		return barBlocks[8]
	case v > bottom:
		idx := int((v - bottom) / (top - bottom) * 8)
		return barBlocks[min(max(idx, 1), 8)]
	default:
		return barBlocks[0]
	}
}

// sampleSeries thins values to what fits in chartW at a bar width of 2.
func sampleSeries(values []float64, labels []string, chartW int) ([]float64, []string) {
	n := len(values)
	if n <= 1 || (chartW-(n-1))/n >= 2 {
		return values, labels
	}

	keep := max((chartW+1)/3, 2)
	sampled := make([]float64, keep)
	var sampledLabels []string
	if len(labels) == n {
		sampledLabels = make([]string, keep)
	}
	for i := range sampled {
		src := i * (n - 1) / (keep - 1)
		sampled[i] = values[src]
		if sampledLabels != nil {
			sampledLabels[i] = labels[src]
		}
	}
	return sampled, sampledLabels
}

// xLabels places labels under their bars, skipping any that would collide
// with a neighbor. The last label always gets its slot.
func xLabels(labels []string, stride, axisLen int) string {
	buf := []byte(strings.Repeat(" ", axisLen))

	last := len(labels) - 1
	lastPos := min(last*stride, axisLen-len(labels[last]))
	if lastPos >= 0 {
		copy(buf[lastPos:], labels[last])
	} else {
		lastPos = axisLen
	}

	step := max(1, (len(labels)*6)/(axisLen+1))
	nextFree := 0
	for i := 0; i < last; i += step {
		pos := i * stride
		end := pos + len(labels[i])
		if pos < nextFree || end >= lastPos {
			continue
		}
		copy(buf[pos:], labels[i])
		nextFree = end + 1
	}
	return strings.TrimRight(string(buf), " ")
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return trimUnit(v/1e6) + "M"
	case v >= 1e3:
		return trimUnit(v/1e3) + "k"
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func trimUnit(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
