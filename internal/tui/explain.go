package tui

import "github.com/leapstack-labs/leapscope/internal/chart"

// noDrillDownText is shown when a payload has no usable template.
const noDrillDownText = "No drill-down query configured for this chart."

// explainState is the drill-down overlay. The zero value is closed.
type explainState struct {
	visible bool
	loading bool
	errText string
	data    *chart.ExplainData

	scroll  int
	selCol  int
	sortCol int // -1 = unsorted
	sortAsc bool
	order   []int // row permutation the view renders through
}

func (e *explainState) rowCount() int {
	if e.data == nil {
		return 0
	}
	return len(e.data.Rows)
}

func (e *explainState) colCount() int {
	if e.data == nil {
		return 0
	}
	return len(e.data.Columns)
}

// setResult replaces the loading state with a result grid, unsorted.
func (e *explainState) setResult(data *chart.ExplainData) {
	e.loading = false
	e.errText = ""
	e.data = data
	e.scroll = 0
	e.selCol = 0
	e.sortCol = -1
	e.sortAsc = false
	e.resort()
}

// cycleSort advances the sort on the selected column through
// ascending, descending, and back to unsorted. Moving to a different
// column starts at ascending again.
func (e *explainState) cycleSort() {
	if e.colCount() == 0 {
		return
	}
	switch {
	case e.sortCol != e.selCol:
		e.sortCol = e.selCol
		e.sortAsc = true
	case e.sortAsc:
		e.sortAsc = false
	default:
		e.sortCol = -1
	}
	e.resort()
}

func (e *explainState) resort() {
	if e.data == nil {
		e.order = nil
		return
	}
	if e.sortCol < 0 {
		e.order = chart.IdentityIndices(len(e.data.Rows))
		return
	}
	e.order = chart.SortRowIndices(e.data.Rows, e.sortCol, e.sortAsc)
}

func (e *explainState) scrollBy(delta int) {
	e.scroll = clamp(e.scroll+delta, 0, maxScroll(e.rowCount()))
}

func (e *explainState) nextCol() {
	if n := e.colCount(); n > 0 {
		e.selCol = (e.selCol + 1) % n
	}
}

func (e *explainState) prevCol() {
	if n := e.colCount(); n > 0 {
		e.selCol = (e.selCol + n - 1) % n
	}
}

func maxScroll(rows int) int {
	if rows == 0 {
		return 0
	}
	return rows - 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
