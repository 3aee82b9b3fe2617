package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/leapstack-labs/leapscope/internal/chart"
)

// chartDisplayOrder maps display position to row index. Feeds that
// arrive newest-first get reversed for line and scatter charts so the
// x axis reads left to right; bars keep the feed order.
func chartDisplayOrder(d *chart.Data) []int {
	n := len(d.Rows)
	order := chart.IdentityIndices(n)
	if n > 1 && d.Kind() != chart.KindBar && d.XValue(0) > d.XValue(n-1) {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}
	return order
}

// xForPos spreads n display positions evenly over innerW columns. The
// same arithmetic maps clicks back to positions.
func xForPos(p, n, innerW int) int {
	if n < 2 {
		return 0
	}
	return int(math.Round(float64(p) * float64(innerW-1) / float64(n-1)))
}

func (m Model) viewChart(r rect) string {
	d := m.data
	innerW := r.w - 2
	innerH := r.h - 2
	if innerW < 4 || innerH < 4 {
		return framed(r, "")
	}
	if len(d.Rows) == 0 {
		return framed(r, dimStyle.Render("No data points."))
	}

	plotH := innerH - 3
	if plotH < 1 {
		plotH = 1
	}
	order := chartDisplayOrder(d)

	var plot string
	if d.Kind() == chart.KindBar {
		plot = m.renderBars(innerW, plotH, order)
	} else {
		plot = m.renderMarks(innerW, plotH, order, d.Kind())
	}
	sep := dimStyle.Render(strings.Repeat("─", innerW))
	labels := m.renderXLabels(innerW, order, d.Kind())
	footer := m.renderChartFooter(innerW)
	return framed(r, plot+"\n"+sep+"\n"+labels+"\n"+footer)
}

// renderBars draws one vertical column per row, scanning the grid top
// down and emitting a block wherever the bar reaches that row.
func (m Model) renderBars(innerW, plotH int, order []int) string {
	d := m.data
	n := len(order)
	if n > innerW {
		n = innerW
	}
	per := innerW / n
	if per < 1 {
		per = 1
	}
	glyphW := per - 1
	if glyphW < 1 {
		glyphW = 1
	}
	maxY := d.MaxY()
	if maxY <= 0 {
		maxY = 1
	}
	heights := make([]int, n)
	for p := 0; p < n; p++ {
		y := d.YValue(order[p])
		if y < 0 {
			y = 0
		}
		h := int(math.Round(y / maxY * float64(plotH)))
		if y > 0 && h == 0 {
			h = 1
		}
		heights[p] = h
	}

	var b strings.Builder
	for row := 0; row < plotH; row++ {
		threshold := plotH - row
		for p := 0; p < n; p++ {
			if heights[p] >= threshold {
				bar := strings.Repeat("█", glyphW)
				if order[p] == m.selectedPoint {
					b.WriteString(selectedBarStyle.Render(bar))
				} else {
					b.WriteString(barStyle.Render(bar))
				}
				if glyphW < per {
					b.WriteString(" ")
				}
			} else {
				b.WriteString(strings.Repeat(" ", per))
			}
		}
		if row < plotH-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderMarks plots points on a rune grid. Lines additionally
// interpolate between neighboring points. The vertical scale gets 10%
// headroom and a lower bound clamped at zero.
func (m Model) renderMarks(innerW, plotH int, order []int, kind chart.Kind) string {
	d := m.data
	n := len(order)
	upper := d.MaxY() * 1.1
	lower := d.MinY() * 0.9
	if lower < 0 {
		lower = 0
	}
	if upper <= lower {
		upper = lower + 1
	}

	grid := make([][]rune, plotH)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", innerW))
	}
	rowFor := func(y float64) int {
		norm := (y - lower) / (upper - lower)
		if norm < 0 {
			norm = 0
		}
		if norm > 1 {
			norm = 1
		}
		return plotH - 1 - int(math.Round(norm*float64(plotH-1)))
	}

	if kind == chart.KindLine {
		for p := 0; p+1 < n; p++ {
			x0, y0 := xForPos(p, n, innerW), rowFor(d.YValue(order[p]))
			x1, y1 := xForPos(p+1, n, innerW), rowFor(d.YValue(order[p+1]))
			for x := x0; x <= x1; x++ {
				t := 0.0
				if x1 > x0 {
					t = float64(x-x0) / float64(x1-x0)
				}
				y := int(math.Round(float64(y0) + t*float64(y1-y0)))
				grid[y][x] = '·'
			}
		}
	} else {
		for p := 0; p < n; p++ {
			grid[rowFor(d.YValue(order[p]))][xForPos(p, n, innerW)] = '·'
		}
	}
	for p := 0; p < n; p++ {
		if order[p] == m.selectedPoint {
			grid[rowFor(d.YValue(order[p]))][xForPos(p, n, innerW)] = '◆'
		}
	}

	lines := make([]string, plotH)
	for i, row := range grid {
		line := strings.ReplaceAll(string(row), "·", markStyle.Render("·"))
		lines[i] = strings.ReplaceAll(line, "◆", selectedBarStyle.Render("◆"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderXLabels(innerW int, order []int, kind chart.Kind) string {
	d := m.data
	n := len(order)
	row := []rune(strings.Repeat(" ", innerW))
	place := func(x int, s string) {
		for i, r := range []rune(s) {
			if x+i >= 0 && x+i < innerW {
				row[x+i] = r
			}
		}
	}

	if kind == chart.KindBar {
		if n > innerW {
			n = innerW
		}
		per := innerW / n
		if per < 1 {
			per = 1
		}
		if per >= 4 {
			for p := 0; p < n; p++ {
				place(p*per, chart.Truncate(d.XValue(order[p]), per-1))
			}
		} else {
			first := chart.Truncate(d.XValue(order[0]), innerW/2)
			last := chart.Truncate(d.XValue(order[n-1]), innerW/2)
			place(0, first)
			place(innerW-len([]rune(last)), last)
		}
		return dimStyle.Render(string(row))
	}

	if n > 5 {
		first := chart.Truncate(d.XValue(order[0]), innerW/3)
		mid := chart.Truncate(d.XValue(order[n/2]), innerW/3)
		last := chart.Truncate(d.XValue(order[n-1]), innerW/3)
		place(0, first)
		place((innerW-len([]rune(mid)))/2, mid)
		place(innerW-len([]rune(last)), last)
	} else {
		for p := 0; p < n; p++ {
			label := chart.Truncate(d.XValue(order[p]), 12)
			x := xForPos(p, n, innerW) - len([]rune(label))/2
			place(clamp(x, 0, innerW-len([]rune(label))), label)
		}
	}
	return dimStyle.Render(string(row))
}

func (m Model) renderChartFooter(innerW int) string {
	d := m.data
	sel := m.selectedPoint
	text := fmt.Sprintf("◆ Point %d/%d: %s = %s → %s = %s",
		sel+1, len(d.Rows),
		fieldName(d, d.XIndex()), d.XValue(sel),
		fieldName(d, d.YIndex()), chart.FormatValue(fieldName(d, d.YIndex()), d.YValue(sel)))
	return accentStyle.Render(chart.Truncate(text, innerW))
}

func fieldName(d *chart.Data, idx int) string {
	if idx >= 0 && idx < len(d.Columns) {
		return d.Columns[idx]
	}
	return ""
}
