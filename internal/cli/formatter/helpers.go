package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
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
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Truncate shortens s to at most width terminal cells, ending in "…" when
// cut. Wide runes count double.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight truncates or pads s to exactly width terminal cells.
func PadRight(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}

// DateOrDash formats an optional date as YYYY-MM-DD.
func DateOrDash(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return t.Format(domain.DateLayout)
}

// DateSpan formats "start → end", or a single date when both are the same day.
func DateSpan(start, end *time.Time) string {
	switch {
	case start == nil && end == nil:
		return Dim("no dates")
	case start != nil && end != nil && domain.DaysBetween(*start, *end) == 0:
		return start.Format(domain.DateLayout)
	default:
		return DateOrDash(start) + " → " + DateOrDash(end)
	}
}

// ProgressPill renders "[■■■□□] 60%".
func ProgressPill(pct int) string {
	pct = min(100, max(0, pct))
	filled := pct / 20
	bar := strings.Repeat("■", filled) + strings.Repeat("□", 5-filled)
	return ProgressStyle(pct).Render(fmt.Sprintf("[%s] %3d%%", bar, pct))
}

// ParentRef renders a parent link, or a dash for roots.
func ParentRef(link *domain.ParentLink) string {
	if link == nil {
		return Dim("--")
	}
	return StyleBlue.Render(link.String())
}

// Plural returns "1 item" or "n items".
func Plural(n int, singular string) string {
	if n == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %ss", n, singular)
}
