package tui

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapscope/internal/chart"
)

const explainHint = "↑↓ scroll | ←→ column | Enter sort | PgUp/PgDn page | Esc close"

func (m Model) viewExplain(r rect) string {
	panelW := r.w * 8 / 10
	panelH := r.h * 7 / 10
	if panelW < 24 {
		panelW = 24
	}
	if panelW > r.w {
		panelW = r.w
	}
	if panelH < 8 {
		panelH = 8
	}
	if panelH > r.h {
		panelH = r.h
	}
	innerW := panelW - 2
	innerH := panelH - 2

	var body string
	switch {
	case m.explain.loading:
		dots := strings.Repeat(".", (m.frame/5)%4)
		body = overlayTitleStyle.Render("Drill-Down") + "\n\n" +
			accentStyle.Render("Running drill-down query"+dots) + "\n\n" +
			dimStyle.Render("Esc cancel")
	case m.explain.errText != "":
		body = overlayTitleStyle.Render("Drill-Down") + "\n\n" +
			errorStyle.Render(m.explain.errText) + "\n\n" +
			dimStyle.Render("Esc close")
	default:
		body = m.explainTable(innerW, innerH)
	}

	panel := overlayBorderStyle.Width(innerW).Height(innerH).Render(body)
	return centered(r, panel)
}

func (m Model) explainTable(innerW, innerH int) string {
	e := m.explain
	d := e.data
	if d == nil || len(d.Columns) == 0 {
		return overlayTitleStyle.Render("Drill-Down Results") + "\n\n" +
			dimStyle.Render("The query returned no columns.") + "\n\n" +
			dimStyle.Render("Esc close")
	}

	colW := (innerW - 2) / len(d.Columns)
	if colW < 8 {
		colW = 8
	}

	var b strings.Builder
	b.WriteString(overlayTitleStyle.Render("Drill-Down Results") + "\n")

	for i, col := range d.Columns {
		name := chart.Truncate(col, colW-3)
		if i == e.sortCol {
			if e.sortAsc {
				name += " ▲"
			} else {
				name += " ▼"
			}
		}
		cell := pad(name, colW)
		switch {
		case i == e.selCol:
			cell = selectedColStyle.Render(cell)
		case i == e.sortCol:
			cell = sortedColStyle.Render(cell)
		default:
			cell = dimStyle.Render(cell)
		}
		b.WriteString(cell)
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", innerW)) + "\n")

	visible := innerH - 5
	if visible < 1 {
		visible = 1
	}
	n := len(e.order)
	start := e.scroll
	if start > n {
		start = n
	}
	end := start + visible
	if end > n {
		end = n
	}
	for i := start; i < end; i++ {
		row := d.Rows[e.order[i]]
		for c := range d.Columns {
			text := ""
			if c < len(row) {
				text = chart.ToString(row[c])
			}
			b.WriteString(pad(chart.Truncate(text, colW-1), colW))
		}
		b.WriteString("\n")
	}

	total := d.TotalCount
	if total < len(d.Rows) {
		total = len(d.Rows)
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("Showing %d of %d source rows", len(d.Rows), total)) + "\n")
	b.WriteString(dimStyle.Render(chart.Truncate(explainHint, innerW)))
	return b.String()
}
