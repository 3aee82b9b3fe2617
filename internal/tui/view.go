package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/leapscope/internal/chart"
)

func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	l := m.layout()

	var content string
	switch {
	case m.showHelp:
		content = m.viewHelp(l.content)
	case m.explain.visible:
		content = m.viewExplain(l.content)
	case m.data == nil && m.tab != TabHome:
		content = m.viewWaiting(l.content)
	default:
		switch m.tab {
		case TabHome:
			content = m.viewHome(l.content)
		case TabQuery:
			content = m.viewQuery(l.content)
		case TabMask:
			content = m.viewMask(l.content)
		case TabData:
			content = m.viewData(l.content)
		case TabChart:
			content = m.viewChart(l.content)
		}
	}

	sections := []string{
		m.viewTitle(),
		m.viewTabs(),
		content,
		m.viewStatus(),
	}
	return strings.Join(sections, "\n")
}

func (m Model) viewTitle() string {
	title := "🦆 leapscope"
	if m.data != nil && m.data.Title != "" {
		title = "🦆 leapscope: " + m.data.Title
	}
	w := m.width - 2
	if w < 1 {
		w = 1
	}
	return titleBarStyle.Width(w).Render(chart.Truncate(title, w))
}

// viewTabs renders each tab in an equal-width cell so clicks map back
// with the same width/tabCount arithmetic.
func (m Model) viewTabs() string {
	per := m.width / tabCount
	if per < 1 {
		per = 1
	}
	cells := make([]string, 0, tabCount)
	for i := 0; i < tabCount; i++ {
		t := Tab(i)
		style := tabStyle
		if t == m.tab {
			style = activeTabStyle
		}
		cells = append(cells, style.Width(per).Align(lipgloss.Center).Render(t.Title()))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	sep := dimStyle.Render(strings.Repeat("─", m.width))
	return row + "\n" + sep
}

func (m Model) viewStatus() string {
	left := m.help.ShortHelpView(m.statusBindings())
	right := m.statusSummary()
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return chart.Truncate(left, m.width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) statusSummary() string {
	if m.data == nil {
		return statusStyle.Render("waiting")
	}
	rows := fmt.Sprintf("%d rows", len(m.data.Rows))
	if m.data.TruncatedFrom > 0 {
		rows = fmt.Sprintf("%d of %d rows", len(m.data.Rows), m.data.TruncatedFrom)
	}
	parts := []string{rows, string(m.data.Kind())}
	if m.data.Timestamp > 0 {
		at := time.UnixMilli(m.data.Timestamp)
		parts = append(parts, at.Format("15:04:05"))
	}
	return statusInfoStyle.Render(strings.Join(parts, " · "))
}

// framed wraps body in the standard content border sized to r.
func framed(r rect, body string) string {
	w := r.w - 2
	h := r.h - 2
	if w < 1 || h < 1 {
		return ""
	}
	return contentBorderStyle.Width(w).Height(h).Render(body)
}

// centered places a panel in the middle of the content rect.
func centered(r rect, panel string) string {
	return lipgloss.Place(r.w, r.h, lipgloss.Center, lipgloss.Center, panel)
}
