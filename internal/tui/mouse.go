package tui

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/leapstack-labs/leapscope/internal/chart"
)

// handleMouse supports wheel scrolling everywhere and left clicks on
// the tab strip, the data table, the history list, and chart marks.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollContext(-wheelStep)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scrollContext(wheelStep)
		return m, nil
	case tea.MouseButtonLeft:
		return m.handleClick(msg.X, msg.Y)
	}
	return m, nil
}

// scrollContext applies wheel movement to whatever has focus. Unlike
// the arrow keys, the wheel clamps instead of wrapping.
func (m *Model) scrollContext(delta int) {
	if m.explain.visible {
		m.explain.scrollBy(delta)
		return
	}
	switch m.tab {
	case TabHome:
		m.historyCursor = clamp(m.historyCursor+delta, 0, maxScroll(len(m.entries)))
	case TabQuery:
		m.scrollOffset = clamp(m.scrollOffset+delta, 0, maxScroll(len(m.queryLines)))
	case TabData, TabChart:
		if m.data != nil {
			m.selectedPoint = clamp(m.selectedPoint+delta, 0, maxScroll(len(m.data.Rows)))
		}
	}
}

func (m Model) handleClick(x, y int) (tea.Model, tea.Cmd) {
	if m.showHelp || m.explain.visible {
		return m, nil
	}
	l := m.layout()

	if l.tabs.contains(x, y) {
		per := m.width / tabCount
		if per < 1 {
			per = 1
		}
		if t, ok := TabFromIndex(x / per); ok {
			m.tab = t
		}
		return m, nil
	}
	if !l.content.contains(x, y) {
		return m, nil
	}

	switch m.tab {
	case TabHome:
		m.clickHistoryRow(y, l)
	case TabData:
		m.clickDataRow(y, l)
	case TabChart:
		m.clickChartMark(x, l)
	}
	return m, nil
}

// clickDataRow maps a click onto the visible window of the data table.
func (m *Model) clickDataRow(y int, l layoutRects) {
	if m.data == nil {
		return
	}
	n := len(m.data.Rows)
	onScreen := y - (l.content.y + dataChromeTop)
	if onScreen < 0 {
		return
	}
	idx := windowStart(m.selectedPoint, n, visibleDataRows(l.content.h)) + onScreen
	if idx < n {
		m.selectedPoint = idx
	}
}

func (m *Model) clickHistoryRow(y int, l layoutRects) {
	n := len(m.entries)
	onScreen := y - (l.content.y + homeChromeTop)
	if onScreen < 0 {
		return
	}
	idx := windowStart(m.historyCursor, n, visibleHomeRows(l.content.h)) + onScreen
	if idx < n {
		m.historyCursor = idx
	}
}

// clickChartMark resolves a click to the nearest bar or point, honoring
// the display order the chart draws in.
func (m *Model) clickChartMark(x int, l layoutRects) {
	if m.data == nil || len(m.data.Rows) == 0 {
		return
	}
	n := len(m.data.Rows)
	innerW := l.content.w - 2
	relX := x - (l.content.x + 1)
	if innerW <= 0 || relX < 0 || relX >= innerW {
		return
	}

	order := chartDisplayOrder(m.data)
	switch m.data.Kind() {
	case chart.KindBar:
		per := innerW / n
		if per < 1 {
			per = 1
		}
		if pos := relX / per; pos < n {
			m.selectedPoint = order[pos]
		}
	default:
		// Line and scatter marks sit on evenly spaced columns; snap to
		// the nearest one. A single point has nothing to interpolate.
		if n < 2 {
			m.selectedPoint = order[0]
			return
		}
		spacing := float64(innerW-1) / float64(n-1)
		pos := int(math.Round(float64(relX) / spacing))
		if pos > n-1 {
			pos = n - 1
		}
		m.selectedPoint = order[pos]
	}
}
