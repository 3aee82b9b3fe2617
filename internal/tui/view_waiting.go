package tui

import (
	"strings"
)

var duckArt = []string{
	`   __`,
	` <(o )___`,
	`  ( ._> /`,
	`   ` + "`---'",
}

// duckOffsets makes the duck paddle right and back: 0,1,2,1.
var duckOffsets = []int{0, 1, 2, 1}

func (m Model) viewWaiting(r rect) string {
	offset := duckOffsets[(m.frame/10)%len(duckOffsets)]
	lead := strings.Repeat(" ", offset*2)

	var b strings.Builder
	accent := waitingAccent()
	for _, line := range duckArt {
		b.WriteString(accent.Render(lead+line) + "\n")
	}
	b.WriteString("\n")

	dots := strings.Repeat(".", (m.frame/5)%4)
	b.WriteString(accentStyle.Render("Waiting for data"+dots) + "\n\n")

	path := ""
	if m.deps.Feed != nil {
		path = m.deps.Feed.Path()
	}
	if path != "" {
		b.WriteString(dimStyle.Render("Watching: "+path) + "\n\n")
	}
	b.WriteString(dimStyle.Render("Press ? for help, q to quit"))

	return centered(r, b.String())
}
