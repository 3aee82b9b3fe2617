package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/leapstack-labs/leapscope/internal/chart"
)

// homeChromeTop counts the rows between the top of the content rect and
// the first history entry: border, three banner lines, a blank, and the
// column header. Click mapping relies on it.
const homeChromeTop = 6

// visibleHomeRows is how many history entries fit in a content rect of
// height h, after the chrome and the bottom border.
func visibleHomeRows(h int) int {
	n := h - 7
	if n < 1 {
		return 1
	}
	return n
}

func (m Model) viewHome(r rect) string {
	w := r.w - 2
	if w < 1 {
		w = 1
	}
	titleW := w - 33
	if titleW < 8 {
		titleW = 8
	}

	var b strings.Builder
	b.WriteString(overlayTitleStyle.Render("Recent Charts") + "\n")
	sub := fmt.Sprintf("%d snapshots · Enter open · d delete", len(m.entries))
	if m.deps.History == nil {
		sub = "history disabled"
	}
	b.WriteString(dimStyle.Render(sub) + "\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", w)) + "\n")
	b.WriteString("\n")

	header := fmt.Sprintf("%3s %-*s%-9s%7s  %s", "#", titleW, "Title", "Type", "Rows", "When")
	b.WriteString(dimStyle.Render(chart.Truncate(header, w)) + "\n")

	n := len(m.entries)
	if n == 0 {
		b.WriteString(dimStyle.Render("No snapshots yet."))
		return framed(r, b.String())
	}

	visible := visibleHomeRows(r.h)
	start := windowStart(m.historyCursor, n, visible)
	end := start + visible
	if end > n {
		end = n
	}
	for i := start; i < end; i++ {
		e := m.entries[i]
		title := e.Title
		if title == "" {
			title = "(untitled)"
		}
		when := time.UnixMilli(e.Timestamp).Format("01-02 15:04")
		line := fmt.Sprintf("%3d %-*s%-9s%7d  %s",
			i+1, titleW, chart.Truncate(title, titleW-1), e.ChartType, e.RowCount, when)
		line = chart.Truncate(line, w)
		if i == m.historyCursor {
			line = selectedRowStyle.Render(pad(line, w))
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return framed(r, b.String())
}

// pad right-pads s with spaces to width w, counting runes.
func pad(s string, w int) string {
	n := len([]rune(s))
	if n >= w {
		return s
	}
	return s + strings.Repeat(" ", w-n)
}
