package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapscope/internal/chart"
	"github.com/leapstack-labs/leapscope/internal/history"
)

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func wheel(button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{Action: tea.MouseActionPress, Button: button}
}

func TestClickTabStrip(t *testing.T) {
	m, _ := newTestModel()
	// 100 columns over 5 tabs puts the third tab at x 40..59, and the
	// strip starts right below the 3-row title bar.
	m, _ = update(t, m, click(45, titleBarHeight))
	assert.Equal(t, TabMask, m.tab)

	m, _ = update(t, m, click(99, titleBarHeight+1))
	assert.Equal(t, TabChart, m.tab)
}

func TestClickDataRowSelects(t *testing.T) {
	m, _ := newTestModel()
	m, _ = update(t, m, DataMsg{Data: sampleData()})
	m.tab = TabData

	l := m.layout()
	m, _ = update(t, m, click(10, l.content.y+dataChromeTop+1))
	assert.Equal(t, 1, m.selectedPoint)

	// A click past the last row leaves the selection alone.
	m, _ = update(t, m, click(10, l.content.y+dataChromeTop+7))
	assert.Equal(t, 1, m.selectedPoint)
}

func TestClickHistoryRowSelects(t *testing.T) {
	m, fx := newTestModel()
	fx.history.entries = []history.Entry{{Path: "a"}, {Path: "b"}, {Path: "c"}}
	m, _ = update(t, m, historyMsg{entries: fx.history.entries})

	l := m.layout()
	m, _ = update(t, m, click(5, l.content.y+homeChromeTop+2))
	assert.Equal(t, 2, m.historyCursor)
}

func TestClickBarSelects(t *testing.T) {
	m, _ := newTestModel()
	m, _ = update(t, m, DataMsg{Data: sampleData()})
	m.tab = TabChart
	require.Equal(t, chart.KindBar, m.data.Kind())

	// innerW 98 over 3 bars gives 32 columns per bar.
	l := m.layout()
	m, _ = update(t, m, click(l.content.x+1+40, l.content.y+2))
	assert.Equal(t, 1, m.selectedPoint)

	m, _ = update(t, m, click(l.content.x+1+70, l.content.y+2))
	assert.Equal(t, 2, m.selectedPoint)
}

func TestClickLinePointSnapsToNearest(t *testing.T) {
	m, _ := newTestModel()
	d := sampleData()
	d.Rows = [][]any{
		{"2024-01-01", 100.0},
		{"2024-01-02", 150.0},
		{"2024-01-03", 125.0},
	}
	m, _ = update(t, m, DataMsg{Data: d})
	m.tab = TabChart
	require.Equal(t, chart.KindLine, m.data.Kind())

	// Points sit at columns 0, 48.5, and 97 of the 98-wide plot.
	l := m.layout()
	m, _ = update(t, m, click(l.content.x+1+52, l.content.y+2))
	assert.Equal(t, 1, m.selectedPoint)

	m, _ = update(t, m, click(l.content.x+1+90, l.content.y+2))
	assert.Equal(t, 2, m.selectedPoint)
}

func TestClickIgnoredWhileOverlayOpen(t *testing.T) {
	m, _ := newTestModel()
	m, _ = update(t, m, DataMsg{Data: sampleData()})
	m.tab = TabChart
	m.explain = explainState{visible: true, loading: true}

	m, _ = update(t, m, click(45, titleBarHeight))
	assert.Equal(t, TabChart, m.tab, "tab clicks are inert under the overlay")
}

func TestWheelClampsSelection(t *testing.T) {
	m, _ := newTestModel()
	m, _ = update(t, m, DataMsg{Data: sampleData()})
	m.tab = TabChart

	m, _ = update(t, m, wheel(tea.MouseButtonWheelDown))
	assert.Equal(t, 2, m.selectedPoint, "three rows cap the wheel step")

	m, _ = update(t, m, wheel(tea.MouseButtonWheelDown))
	assert.Equal(t, 2, m.selectedPoint)

	m, _ = update(t, m, wheel(tea.MouseButtonWheelUp))
	assert.Equal(t, 0, m.selectedPoint)
}

func TestWheelScrollsExplainOverlay(t *testing.T) {
	m, _ := newTestModel()
	m, _ = update(t, m, DataMsg{Data: sampleData()})
	m.tab = TabChart
	m, cmd := update(t, m, keyPress("x"))
	m, _ = update(t, m, cmd())

	m, _ = update(t, m, wheel(tea.MouseButtonWheelDown))
	assert.Equal(t, 1, m.explain.scroll)
}
