package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapscope/internal/chart"
)

// viewMask summarizes how columns map onto chart roles, plus any
// drill-down parameters the snapshot carries.
func (m Model) viewMask(r rect) string {
	d := m.data
	w := r.w - 2
	if w < 1 {
		w = 1
	}

	var b strings.Builder
	b.WriteString(overlayTitleStyle.Render("Field Mask") + "\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", w)) + "\n\n")

	nameW := 24
	roleW := 12
	b.WriteString(dimStyle.Render(pad("Column", nameW)+pad("Role", roleW)+"Sample") + "\n")

	var sample []any
	if len(d.Rows) > 0 {
		sample = d.Rows[0]
	}
	for i, col := range d.Columns {
		role := "-"
		style := dimStyle
		switch {
		case i == d.XIndex():
			role = "X (Label)"
			style = xColumnStyle
		case i == d.YIndex():
			role = "Y (Value)"
			style = yColumnStyle
		}
		cell := ""
		if i < len(sample) {
			cell = chart.Truncate(chart.ToString(sample[i]), w-nameW-roleW)
		}
		b.WriteString(style.Render(pad(chart.Truncate(col, nameW-1), nameW)))
		b.WriteString(style.Render(pad(role, roleW)))
		b.WriteString(cell + "\n")
	}

	if dd := d.DrillDown; dd != nil && len(dd.ParamMapping) > 0 {
		b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("Drill-down parameters (%d)", len(dd.ParamMapping))) + "\n")
		names := make([]string, 0, len(dd.ParamMapping))
		for name := range dd.ParamMapping {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteString(fmt.Sprintf("  {{%s}} ← %s\n", name, dd.ParamMapping[name]))
		}
	}
	return framed(r, b.String())
}
