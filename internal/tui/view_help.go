package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

func (m Model) viewHelp(r rect) string {
	groups := []struct {
		title string
		rows  [][2]string
	}{
		{"Navigation", [][2]string{
			{"←/→", "switch tabs"},
			{"1-5", "jump to tab"},
			{"↑/↓ or j/k", "move selection"},
			{"pgup/pgdn", "page"},
			{"home/end", "first / last"},
		}},
		{"Actions", [][2]string{
			{keyHelp(m.keys.Select), "open / sort"},
			{keyHelp(m.keys.Explain), "drill into selected point"},
			{keyHelp(m.keys.Refresh), "reload the watched file"},
			{keyHelp(m.keys.Clear), "clear data and feed file"},
			{keyHelp(m.keys.Delete), "delete history entry"},
		}},
		{"General", [][2]string{
			{keyHelp(m.keys.Help), "toggle this help"},
			{keyHelp(m.keys.Close), "close overlay"},
			{"q / ctrl+c", "quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(overlayTitleStyle.Render("Keys") + "\n")
	for _, g := range groups {
		b.WriteString("\n" + accentStyle.Render(g.title) + "\n")
		for _, row := range g.rows {
			b.WriteString("  " + pad(row[0], 14) + dimStyle.Render(row[1]) + "\n")
		}
	}

	panel := overlayBorderStyle.Padding(0, 2).Render(strings.TrimRight(b.String(), "\n"))
	return centered(r, panel)
}

func keyHelp(b key.Binding) string {
	return b.Help().Key
}
