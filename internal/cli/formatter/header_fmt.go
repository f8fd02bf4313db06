package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/timeline"
)

// FormatHeader summarizes a timeline header: the range, the column width
// tier in use, and the month and ISO week groups.
func FormatHeader(h timeline.HeaderModel) string {
	if !h.HasRange {
		return Dim("No range: the project has no dated items.")
	}
	var b strings.Builder
	b.WriteString(Header("Timeline") + "\n")
	fmt.Fprintf(&b, "%s  %s → %s (%s)\n", StyleDim.Render("RANGE "),
		h.Range.Start.Format(domain.DateLayout), h.Range.End.Format(domain.DateLayout), Plural(h.Range.TotalDays, "day"))
	fmt.Fprintf(&b, "%s  %dpx per day, %dpx total\n", StyleDim.Render("COLUMN"),
		h.Range.DayColumnWidthPx, h.Range.TotalDays*h.Range.DayColumnWidthPx)
	if off, ok := h.TodayOffsetPx(); ok {
		fmt.Fprintf(&b, "%s  at %dpx\n", StyleDim.Render("TODAY "), off)
	}
	b.WriteString("\n")

	months := make([][]string, 0, len(h.MonthGroups))
	for _, m := range h.MonthGroups {
		months = append(months, []string{
			m.Label,
			strconv.Itoa(m.StartColumn),
			strconv.Itoa(m.Span),
			strconv.Itoa(m.WidthPx) + "px",
		})
	}
	b.WriteString(RenderTable([]string{"MONTH", "FROM COL", "DAYS", "WIDTH"}, months))
	b.WriteString("\n")

	weeks := make([][]string, 0, len(h.WeekGroups))
	for _, w := range h.WeekGroups {
		weeks = append(weeks, []string{
			fmt.Sprintf("%d-W%02d", w.ISOYear, w.Week),
			strconv.Itoa(w.StartColumn),
			strconv.Itoa(w.Span),
		})
	}
	b.WriteString(RenderTable([]string{"WEEK", "FROM COL", "DAYS"}, weeks))
	return b.String()
}
