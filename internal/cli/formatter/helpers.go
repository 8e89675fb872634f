package formatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Hours prints an hour figure with two decimals. Zero renders as a dim dash.
func Hours(h float64) string {
	if h == 0 {
		return StyleDim.Render("-")
	}
	return strconv.FormatFloat(h, 'f', 2, 64)
}

// SignedHours prints a delta with an explicit sign.
func SignedHours(h float64) string {
	s := strconv.FormatFloat(h, 'f', 2, 64)
	if h > 0 {
		return "+" + s
	}
	return s
}

// LocalTime prints an instant as wall-clock time in its own location.
func LocalTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// TruncID shortens a UUID for table display.
func TruncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
