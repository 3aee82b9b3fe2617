package tui

// rect is a screen region in cell coordinates.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(px, py int) bool {
	return px >= r.x && px < r.x+r.w && py >= r.y && py < r.y+r.h
}

// layoutRects carries the four vertical bands of the screen: title bar,
// tab strip, content, status line. View and mouse handling both derive
// positions from here, so clicks always agree with what is drawn.
type layoutRects struct {
	title   rect
	tabs    rect
	content rect
	status  rect
}

const (
	titleBarHeight  = 3
	tabStripHeight  = 2
	statusBarHeight = 1
)

func (m Model) layout() layoutRects {
	contentH := m.height - titleBarHeight - tabStripHeight - statusBarHeight
	if contentH < 0 {
		contentH = 0
	}
	return layoutRects{
		title:   rect{0, 0, m.width, titleBarHeight},
		tabs:    rect{0, titleBarHeight, m.width, tabStripHeight},
		content: rect{0, titleBarHeight + tabStripHeight, m.width, contentH},
		status:  rect{0, m.height - statusBarHeight, m.width, statusBarHeight},
	}
}

// windowStart picks the first visible row so the selection stays
// centered where possible and the window never runs past the end.
func windowStart(selected, total, visible int) int {
	if visible <= 0 || total <= visible {
		return 0
	}
	return clamp(selected-visible/2, 0, total-visible)
}
