package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKey routes keys by precedence: help swallows everything, then
// the explain overlay, then global keys, then the active tab.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.explain.visible {
		return m.handleExplainKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.reloadFeed()
	case key.Matches(msg, m.keys.Clear):
		m.clearAll()
		return m, tea.Batch(m.clearFeed(), m.refreshHistory())
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = m.tab.Prev()
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.tab = m.tab.Next()
		return m, nil
	case key.Matches(msg, m.keys.JumpTab):
		if t, ok := TabFromIndex(int(msg.String()[0] - '1')); ok {
			m.tab = t
		}
		return m, nil
	}

	switch m.tab {
	case TabHome:
		return m.handleHomeKey(msg)
	case TabQuery:
		m.handleQueryKey(msg)
		return m, nil
	case TabData, TabChart:
		return m.handleChartKey(msg)
	}
	return m, nil
}

// handleExplainKey drives the overlay: scrolling, column selection, and
// the sort cycle. Esc and q close it without quitting the app.
func (m Model) handleExplainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Quit):
		m.explain = explainState{}
	case key.Matches(msg, m.keys.Up):
		m.explain.scrollBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.explain.scrollBy(1)
	case key.Matches(msg, m.keys.PageUp):
		m.explain.scrollBy(-pageStep)
	case key.Matches(msg, m.keys.PageDown):
		m.explain.scrollBy(pageStep)
	case key.Matches(msg, m.keys.Home):
		m.explain.scroll = 0
	case key.Matches(msg, m.keys.End):
		m.explain.scroll = maxScroll(m.explain.rowCount())
	case key.Matches(msg, m.keys.PrevTab):
		m.explain.prevCol()
	case key.Matches(msg, m.keys.NextTab):
		m.explain.nextCol()
	case key.Matches(msg, m.keys.Select):
		m.explain.cycleSort()
	}
	return m, nil
}

// handleHomeKey moves the history cursor; selection wraps like the data
// table's row cursor.
func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.entries)
	switch {
	case key.Matches(msg, m.keys.Up):
		if n > 0 {
			m.historyCursor = (m.historyCursor + n - 1) % n
		}
	case key.Matches(msg, m.keys.Down):
		if n > 0 {
			m.historyCursor = (m.historyCursor + 1) % n
		}
	case key.Matches(msg, m.keys.PageUp):
		m.historyCursor = clamp(m.historyCursor-pageStep, 0, maxScroll(n))
	case key.Matches(msg, m.keys.PageDown):
		m.historyCursor = clamp(m.historyCursor+pageStep, 0, maxScroll(n))
	case key.Matches(msg, m.keys.Home):
		m.historyCursor = 0
	case key.Matches(msg, m.keys.End):
		m.historyCursor = maxScroll(n)
	case key.Matches(msg, m.keys.Select):
		if n > 0 {
			return m, m.loadHistoryEntry(m.entries[m.historyCursor].Path)
		}
	case key.Matches(msg, m.keys.Delete):
		if n > 0 {
			return m, m.deleteHistoryEntry(m.entries[m.historyCursor].Path)
		}
	}
	return m, nil
}

// handleQueryKey scrolls the SQL view, clamped to its line count.
func (m *Model) handleQueryKey(msg tea.KeyMsg) {
	lines := len(m.queryLines)
	if lines == 0 {
		return
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		m.scrollOffset = clamp(m.scrollOffset-1, 0, lines-1)
	case key.Matches(msg, m.keys.Down):
		m.scrollOffset = clamp(m.scrollOffset+1, 0, lines-1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollOffset = clamp(m.scrollOffset-pageStep, 0, lines-1)
	case key.Matches(msg, m.keys.PageDown):
		m.scrollOffset = clamp(m.scrollOffset+pageStep, 0, lines-1)
	case key.Matches(msg, m.keys.Home):
		m.scrollOffset = 0
	case key.Matches(msg, m.keys.End):
		m.scrollOffset = lines - 1
	}
}

// handleChartKey drives the row selection shared by the Data and Chart
// tabs. Up and down wrap; paging clamps.
func (m Model) handleChartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.data == nil {
		return m, nil
	}
	n := len(m.data.Rows)
	switch {
	case key.Matches(msg, m.keys.Up):
		if n > 0 {
			m.selectedPoint = (m.selectedPoint + n - 1) % n
		}
	case key.Matches(msg, m.keys.Down):
		if n > 0 {
			m.selectedPoint = (m.selectedPoint + 1) % n
		}
	case key.Matches(msg, m.keys.PageUp):
		m.selectedPoint = clamp(m.selectedPoint-pageStep, 0, maxScroll(n))
	case key.Matches(msg, m.keys.PageDown):
		m.selectedPoint = clamp(m.selectedPoint+pageStep, 0, maxScroll(n))
	case key.Matches(msg, m.keys.Home):
		m.selectedPoint = 0
	case key.Matches(msg, m.keys.End):
		m.selectedPoint = maxScroll(n)
	case key.Matches(msg, m.keys.Explain), key.Matches(msg, m.keys.Select):
		return m.triggerDrillDown()
	}
	return m, nil
}
