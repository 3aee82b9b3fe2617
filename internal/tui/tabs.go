package tui

// Tab identifies one dashboard tab. Order is display order; cycling
// wraps at both ends.
type Tab int

const (
	TabHome Tab = iota
	TabQuery
	TabMask
	TabData
	TabChart

	tabCount = 5
)

var tabTitles = [tabCount]string{"1:Home", "2:Query", "3:Mask", "4:Data", "5:Chart"}

// Title returns the tab strip label.
func (t Tab) Title() string {
	if t < 0 || int(t) >= tabCount {
		return ""
	}
	return tabTitles[t]
}

// Next cycles forward with wraparound.
func (t Tab) Next() Tab {
	return Tab((int(t) + 1) % tabCount)
}

// Prev cycles backward with wraparound.
func (t Tab) Prev() Tab {
	return Tab((int(t) + tabCount - 1) % tabCount)
}

// TabFromIndex maps a position to a tab, ignoring out-of-range values.
func TabFromIndex(i int) (Tab, bool) {
	if i < 0 || i >= tabCount {
		return TabHome, false
	}
	return Tab(i), true
}
