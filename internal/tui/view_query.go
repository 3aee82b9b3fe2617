package tui

import (
	"fmt"
	"strings"
)

func (m Model) viewQuery(r rect) string {
	lines := m.queryLines
	db := ""
	if m.data != nil {
		db = m.data.Database
	}
	head := fmt.Sprintf("SQL Query @ %s (%d lines)", db, len(lines))
	if m.scrollOffset > 0 {
		head += fmt.Sprintf(" · line %d", m.scrollOffset+1)
	}

	w := r.w - 2
	if w < 1 {
		w = 1
	}
	var b strings.Builder
	b.WriteString(overlayTitleStyle.Render(head) + "\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", w)) + "\n")

	if len(lines) == 0 {
		b.WriteString(dimStyle.Render("No query in this snapshot."))
		return framed(r, b.String())
	}

	visible := r.h - 4
	if visible < 1 {
		visible = 1
	}
	start := m.scrollOffset
	if start > len(lines)-1 {
		start = len(lines) - 1
	}
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}
	for i := start; i < end; i++ {
		b.WriteString(lineNumberStyle.Render(fmt.Sprintf("%4d ", i+1)))
		b.WriteString(lines[i])
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return framed(r, b.String())
}
