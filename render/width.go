package render

import "github.com/charmbracelet/lipgloss"

// DefaultTabWidth is the standard terminal tab stop interval.
const DefaultTabWidth = 8

// DisplayWidth calculates the display width of a string, correctly handling
// tab characters which expand to the next tab stop.
// lipgloss.Width alone reports 0 for tabs.
func DisplayWidth(s string, tabWidth int) int {
	col := 0
	for _, r := range s {
		col = advance(col, r, tabWidth)
	}
	return col
}

// ExpandTabs replaces each tab with the spaces needed to reach the next tab
// stop, starting from column 0.
func ExpandTabs(s string, tabWidth int) string {
	buf := make([]rune, 0, len(s))
	col := 0
	for _, r := range s {
		next := advance(col, r, tabWidth)
		if r == '\t' {
			for ; col < next; col++ {
				buf = append(buf, ' ')
			}
			continue
		}
		buf = append(buf, r)
		col = next
	}
	return string(buf)
}

func advance(col int, r rune, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	if r == '\t' {
		return ((col / tabWidth) + 1) * tabWidth
	}
	return col + lipgloss.Width(string(r))
}
