package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapscope/internal/history"
)

func plainView(m Model) string {
	return stripLine(m.View())
}

func TestViewWaitingScreen(t *testing.T) {
	m, _ := newTestModel()
	m.tab = TabQuery

	out := plainView(m)
	assert.Contains(t, out, "Waiting for data")
	assert.Contains(t, out, "/tmp/feed/current.json")
	assert.Contains(t, out, "Press ? for help, q to quit")
}

func TestViewHomeListsHistory(t *testing.T) {
	m, fx := newTestModel()
	out := plainView(m)
	assert.Contains(t, out, "Recent Charts")
	assert.Contains(t, out, "No snapshots yet.")

	fx.history.entries = []history.Entry{
		{Path: "/h/a.json", Title: "Daily Orders", RowCount: 12, ChartType: "bar", Timestamp: 1700000000000},
	}
	m, _ = update(t, m, historyMsg{entries: fx.history.entries})
	out = plainView(m)
	assert.Contains(t, out, "Daily Orders")
	assert.Contains(t, out, "bar")
}

func TestViewQueryTab(t *testing.T) {
	m, _ := newTestModel()
	m, _ = update(t, m, DataMsg{Data: sampleData()})
	require.Equal(t, TabQuery, m.tab)

	out := plainView(m)
	assert.Contains(t, out, "SQL Query @ analytics")
	assert.Contains(t, out, "SELECT month, revenue")
	assert.Contains(t, out, "   1 ")
}

func TestViewDataTab(t *testing.T) {
	m, _ := newTestModel()
	m, _ = update(t, m, DataMsg{Data: sampleData()})
	m.tab = TabData

	out := plainView(m)
	assert.Contains(t, out, "month")
	assert.Contains(t, out, "2024-02")
	assert.Contains(t, out, "Row 1/3")
}

func TestViewDataTabShowsTruncation(t *testing.T) {
	m, _ := newTestModel()
	d := sampleData()
	d.TruncatedFrom = 120
	m, _ = update(t, m, DataMsg{Data: d})
	m.tab = TabData

	assert.Contains(t, plainView(m), "truncated from 120")
}

func TestViewMaskTab(t *testing.T) {
	m, _ := newTestModel()
	d := sampleData()
	d.DrillDown.ParamMapping = map[string]string{"region": "month"}
	m, _ = update(t, m, DataMsg{Data: d})
	m.tab = TabMask

	out := plainView(m)
	assert.Contains(t, out, "X (Label)")
	assert.Contains(t, out, "Y (Value)")
	assert.Contains(t, out, "{{region}}")
}

func TestViewChartTabFooter(t *testing.T) {
	m, _ := newTestModel()
	m, _ = update(t, m, DataMsg{Data: sampleData()})
	m.tab = TabChart

	out := plainView(m)
	assert.Contains(t, out, "Point 1/3")
	assert.Contains(t, out, "month = 2024-01")
}

func TestViewExplainOverlayStates(t *testing.T) {
	m, _ := newTestModel()
	m, _ = update(t, m, DataMsg{Data: sampleData()})
	m.tab = TabChart

	m, cmd := update(t, m, keyPress("x"))
	assert.Contains(t, plainView(m), "Running drill-down query")

	m, _ = update(t, m, cmd())
	out := plainView(m)
	assert.Contains(t, out, "Drill-Down Results")
	assert.Contains(t, out, "Showing 2 of 2 source rows")
}

func TestViewHelpOverlay(t *testing.T) {
	m, _ := newTestModel()
	m, _ = update(t, m, keyPress("?"))

	out := plainView(m)
	assert.Contains(t, out, "Keys")
	assert.Contains(t, out, "drill into selected point")
}

func TestViewStatusBarSummary(t *testing.T) {
	m, _ := newTestModel()
	m, _ = update(t, m, DataMsg{Data: sampleData()})
	assert.Contains(t, plainView(m), "3 rows")
}

func TestViewZeroSize(t *testing.T) {
	m, _ := newTestModel()
	m.width, m.height = 0, 0
	assert.Equal(t, "", m.View())
}

func TestChartDisplayOrderReversesDescendingSeries(t *testing.T) {
	d := sampleData()
	d.Rows = [][]any{
		{"2024-01-03", 125.0},
		{"2024-01-02", 150.0},
		{"2024-01-01", 100.0},
	}
	assert.Equal(t, []int{2, 1, 0}, chartDisplayOrder(d))

	// Bars keep the feed order even when labels descend.
	d.ChartType = "bar"
	assert.Equal(t, []int{0, 1, 2}, chartDisplayOrder(d))
}

func TestViewChartMarksDescendingSeriesLeftToRight(t *testing.T) {
	m, _ := newTestModel()
	d := sampleData()
	d.Rows = [][]any{
		{"2024-01-03", 125.0},
		{"2024-01-02", 150.0},
		{"2024-01-01", 100.0},
	}
	m, _ = update(t, m, DataMsg{Data: d})
	m.tab = TabChart

	out := plainView(m)
	first := strings.Index(out, "2024-01-01")
	last := strings.Index(out, "2024-01-03")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, last, 0)
	assert.Less(t, first, last, "oldest label renders on the left")
}
