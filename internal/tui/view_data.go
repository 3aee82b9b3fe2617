package tui

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapscope/internal/chart"
)

// dataChromeTop counts the rows above the first table row inside the
// content rect: border, column header, separator.
const dataChromeTop = 3

// visibleDataRows is how many table rows fit in a content rect of
// height h, leaving room for the footer and the borders.
func visibleDataRows(h int) int {
	n := h - 5
	if n < 1 {
		return 1
	}
	return n
}

const maxCellWidth = 30

func (m Model) viewData(r rect) string {
	d := m.data
	w := r.w - 2
	if w < 1 {
		w = 1
	}
	nCols := len(d.Columns)
	if nCols == 0 {
		return framed(r, dimStyle.Render("No columns."))
	}
	colW := w / nCols
	if colW > maxCellWidth {
		colW = maxCellWidth
	}
	if colW < 6 {
		colW = 6
	}
	xIdx, yIdx := d.XIndex(), d.YIndex()

	var b strings.Builder
	for i, col := range d.Columns {
		cell := pad(chart.Truncate(col, colW-1), colW)
		switch i {
		case xIdx:
			cell = xColumnStyle.Render(cell)
		case yIdx:
			cell = yColumnStyle.Render(cell)
		default:
			cell = dimStyle.Render(cell)
		}
		b.WriteString(cell)
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", w)) + "\n")

	n := len(d.Rows)
	if n == 0 {
		b.WriteString(dimStyle.Render("No rows."))
		return framed(r, b.String())
	}

	visible := visibleDataRows(r.h)
	start := windowStart(m.selectedPoint, n, visible)
	end := start + visible
	if end > n {
		end = n
	}
	for i := start; i < end; i++ {
		line := m.renderDataRow(i, colW)
		if i == m.selectedPoint {
			line = selectedRowStyle.Render(pad(stripLine(line), w))
		}
		b.WriteString(line + "\n")
	}

	footer := fmt.Sprintf("Row %d/%d", m.selectedPoint+1, n)
	if d.TruncatedFrom > 0 {
		footer += fmt.Sprintf(" · truncated from %d", d.TruncatedFrom)
	}
	b.WriteString(dimStyle.Render(footer))
	return framed(r, b.String())
}

// renderDataRow renders one row with per-column styling. The Y column
// gets field-aware number formatting, everything else the raw text.
func (m Model) renderDataRow(row, colW int) string {
	d := m.data
	xIdx, yIdx := d.XIndex(), d.YIndex()
	var b strings.Builder
	for i, col := range d.Columns {
		v := d.Cell(row, i)
		text := chart.ToString(v)
		if i == yIdx && chart.IsNumeric(v) {
			text = chart.FormatValue(col, chart.ToFloat(v))
		}
		cell := pad(chart.Truncate(text, colW-1), colW)
		switch i {
		case xIdx:
			cell = xColumnStyle.Render(cell)
		case yIdx:
			cell = yColumnStyle.Render(cell)
		}
		b.WriteString(cell)
	}
	return b.String()
}

// stripLine drops ANSI sequences so a selected row can be restyled as
// one reversed span.
func stripLine(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
