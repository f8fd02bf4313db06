package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ganttline/internal/gantt"
	"github.com/alexanderramin/ganttline/internal/render"
	"github.com/alexanderramin/ganttline/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

const (
	// DefaultChartWidth is used when the terminal width is unknown.
	DefaultChartWidth = 120

	minNameWidth = 12
	maxNameWidth = 32
	indentCells  = 2

	glyphBar       = "█"
	glyphRemainder = "░"
	glyphMeeting   = "●"
	glyphWeekend   = "·"
	glyphToday     = "▼"
	glyphRule      = "─"
)

// ganttGrid maps day columns onto terminal cells. When the range has more
// days than fit, each cell covers daysPerCell days.
type ganttGrid struct {
	nameWidth   int
	cells       int
	daysPerCell int
	colPx       int
	days        []timeline.DayColumn
}

func newGanttGrid(header timeline.HeaderModel, bars []render.Bar, width int) ganttGrid {
	if width <= 0 {
		width = DefaultChartWidth
	}
	nameWidth := minNameWidth
	for _, b := range bars {
		nameWidth = max(nameWidth, b.Level*indentCells+lipgloss.Width(b.Label)+1)
	}
	nameWidth = min(nameWidth, maxNameWidth)

	g := ganttGrid{nameWidth: nameWidth, daysPerCell: 1}
	if !header.HasRange {
		return g
	}
	g.colPx = max(1, header.Range.DayColumnWidthPx)
	g.days = header.DayColumns
	available := max(10, width-nameWidth-1)
	total := header.Range.TotalDays
	g.daysPerCell = (total + available - 1) / available
	g.cells = (total + g.daysPerCell - 1) / g.daysPerCell
	return g
}

// cellSpan converts a bar's pixel extent into a half-open cell range.
func (g ganttGrid) cellSpan(b render.Bar) (int, int) {
	startDay := b.LeftPx / g.colPx
	endDay := max(startDay+1, (b.LeftPx+b.WidthPx+g.colPx-1)/g.colPx)
	start := startDay / g.daysPerCell
	end := (endDay + g.daysPerCell - 1) / g.daysPerCell
	return start, min(max(end, start+1), g.cells)
}

func (g ganttGrid) background(cell int) string {
	if g.daysPerCell == 1 && cell < len(g.days) && g.days[cell].Weekend {
		return StyleDim.Render(glyphWeekend)
	}
	return " "
}

// FormatGantt renders the chart for a terminal of the given width: a name
// column with indentation, a month and day ruler, and one bar per row.
func FormatGantt(chart *gantt.Chart, header timeline.HeaderModel, bars []render.Bar, width int) string {
	if chart == nil || chart.Empty() {
		return Dim("No items in this project.")
	}
	g := newGanttGrid(header, bars, width)

	var b strings.Builder
	if header.HasRange {
		b.WriteString(g.monthRuler(header))
		b.WriteString(g.dayRuler())
	} else {
		b.WriteString(Dim("No dated items; nothing to place on the timeline.") + "\n")
	}

	for _, bar := range bars {
		indent := strings.Repeat(" ", bar.Level*indentCells)
		label := PadRight(indent+bar.Label, g.nameWidth)
		if bar.Placeholder != "" {
			label = Dim(label)
		}
		b.WriteString(label + " ")
		b.WriteString(g.barCells(bar))
		b.WriteString("\n")
	}

	if n := len(chart.Warnings); n > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%s (use --warnings to list them)", Plural(n, "warning"))) + "\n")
	}
	return b.String()
}

func (g ganttGrid) monthRuler(header timeline.HeaderModel) string {
	line := make([]string, g.cells)
	for i := range line {
		line[i] = " "
	}
	for _, m := range header.MonthGroups {
		start := m.StartColumn / g.daysPerCell
		span := max(1, (m.Span+g.daysPerCell-1)/g.daysPerCell)
		label := m.Label
		if lipgloss.Width(label) > span {
			label = m.Month.String()[:3]
		}
		if lipgloss.Width(label) > span {
			continue
		}
		for i, r := range []rune(label) {
			if start+i < g.cells {
				line[start+i] = StyleHeader.Render(string(r))
			}
		}
	}
	return strings.Repeat(" ", g.nameWidth+1) + strings.Join(line, "") + "\n"
}

func (g ganttGrid) dayRuler() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", g.nameWidth+1))
	for cell := 0; cell < g.cells; cell++ {
		today := false
		for d := cell * g.daysPerCell; d < min((cell+1)*g.daysPerCell, len(g.days)); d++ {
			today = today || g.days[d].Today
		}
		switch {
		case today:
			b.WriteString(StyleRed.Render(glyphToday))
		case g.background(cell) != " ":
			b.WriteString(g.background(cell))
		default:
			b.WriteString(StyleDim.Render(glyphRule))
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (g ganttGrid) barCells(bar render.Bar) string {
	switch {
	case bar.Placeholder != "":
		return Dim(bar.Placeholder)
	case bar.OutOfRange:
		return Dim("out of range")
	case !bar.Drawable() || g.cells == 0:
		return ""
	}

	start, end := g.cellSpan(bar)
	fill := Fill(bar.Fill)
	done := end
	if bar.Progress != nil {
		done = start + (end-start)*bar.Progress.Percent/100
	}

	var b strings.Builder
	for cell := 0; cell < end; cell++ {
		switch {
		case cell < start:
			b.WriteString(g.background(cell))
		case bar.Shape == render.ShapePill:
			b.WriteString(fill.Render(glyphMeeting))
		case bar.Complete:
			b.WriteString(StyleGreen.Render(glyphBar))
		case cell < done:
			b.WriteString(fill.Render(glyphBar))
		default:
			b.WriteString(fill.Render(glyphRemainder))
		}
	}
	if bar.Progress != nil {
		b.WriteString(" " + ProgressStyle(bar.Progress.Percent).Render(fmt.Sprintf("%d%%", bar.Progress.Percent)))
	}
	return b.String()
}

// FormatWarnings lists assembly warnings, one per line.
func FormatWarnings(warnings []gantt.Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	for _, w := range warnings {
		fmt.Fprintf(&b, "%s %s %s\n", StyleYellow.Render("!"), StyleDim.Render(w.Item.String()), string(w.Kind))
	}
	return b.String()
}
