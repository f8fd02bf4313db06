package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/gantt"
	"github.com/alexanderramin/ganttline/internal/render"
	"github.com/alexanderramin/ganttline/internal/timeline"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences so assertions are
// terminal-independent.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func projector(t *testing.T, start, end string) *timeline.Projector {
	t.Helper()
	p := timeline.NewProjector(timeline.WithClock(func() time.Time { return domain.MustDate("2024-01-10") }))
	require.NoError(t, p.SetDateRange(domain.MustDate(start), domain.MustDate(end)))
	return p
}

func row(tag, name, start, end string, level int) gantt.RowDescriptor {
	r := gantt.RowDescriptor{EntityTypeTag: tag, DisplayName: name, HierarchyLevel: level}
	if start == "" {
		r.NoDates = true
		return r
	}
	s, e := domain.MustDate(start), domain.MustDate(end)
	r.StartDate, r.EndDate = &s, &e
	r.DurationDays = domain.DaysBetween(s, e) + 1
	return r
}

func lineWith(t *testing.T, out, substr string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	t.Fatalf("no line contains %q in:\n%s", substr, out)
	return ""
}

func TestFormatGantt(t *testing.T) {
	p := projector(t, "2024-01-01", "2024-01-30")
	build := row(domain.TagTask, "Build", "2024-01-01", "2024-01-10", 0)
	pct := 50
	build.Progress = &pct
	chart := &gantt.Chart{Rows: []gantt.RowDescriptor{
		build,
		row(domain.TagMeeting, "Kickoff", "2024-01-03", "2024-01-03", 1),
		row(domain.TagTask, "Backlog", "", "", 0),
	}}
	bars := render.NewStandardRegistry(render.DefaultStyle()).Render(chart.Rows, p)

	out := stripANSI(FormatGantt(chart, p.HeaderModel(), bars, 120))

	assert.Contains(t, out, "Jan 2024")
	assert.Contains(t, lineWith(t, out, "Build"), "█████░░░░░ 50%")
	kickoff := lineWith(t, out, "Kickoff")
	assert.True(t, strings.HasPrefix(kickoff, "  Kickoff"), "level 1 is indented")
	assert.True(t, strings.HasSuffix(kickoff, "  ●"), "meeting sits on its day: %q", kickoff)
	assert.Contains(t, lineWith(t, out, "Backlog"), "no dates")

	ruler := strings.Split(out, "\n")[1]
	assert.Contains(t, ruler, "▼", "today marker")
	assert.Contains(t, ruler, "·", "weekend shading")
}

func TestFormatGantt_CompressesLongRanges(t *testing.T) {
	p := projector(t, "2024-01-01", "2024-12-31")
	chart := &gantt.Chart{Rows: []gantt.RowDescriptor{
		row(domain.TagTask, "Year plan", "2024-01-01", "2024-12-31", 0),
	}}
	bars := render.NewStandardRegistry(render.DefaultStyle()).Render(chart.Rows, p)

	out := stripANSI(FormatGantt(chart, p.HeaderModel(), bars, 60))
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 60, line)
	}
	assert.Contains(t, lineWith(t, out, "Year plan"), strings.Repeat("█", 40))
}

func TestFormatGantt_EmptyAndUndated(t *testing.T) {
	assert.Contains(t, stripANSI(FormatGantt(&gantt.Chart{}, timeline.HeaderModel{}, nil, 80)), "No items")

	chart := &gantt.Chart{
		Rows:     []gantt.RowDescriptor{row(domain.TagTask, "Someday", "", "", 0)},
		Warnings: []gantt.Warning{{Kind: gantt.WarnNoDates, Item: domain.ItemRef{Tag: domain.TagTask, ID: 1}}},
	}
	bars := render.NewStandardRegistry(render.DefaultStyle()).Render(chart.Rows, timeline.NewProjector())
	out := stripANSI(FormatGantt(chart, timeline.HeaderModel{}, bars, 80))

	assert.Contains(t, out, "No dated items")
	assert.Contains(t, out, "1 warning")
	assert.Contains(t, stripANSI(FormatWarnings(chart.Warnings)), "task:1 no_dates")
}

func TestFormatHeader(t *testing.T) {
	p := projector(t, "2024-01-29", "2024-02-11")
	out := stripANSI(FormatHeader(p.HeaderModel()))

	assert.Contains(t, out, "2024-01-29 → 2024-02-11 (14 days)")
	assert.Contains(t, out, "30px per day")
	assert.Contains(t, out, "Jan 2024")
	assert.Contains(t, out, "Feb 2024")
	assert.Contains(t, out, "2024-W05")
	assert.Contains(t, out, "2024-W06")

	assert.Contains(t, stripANSI(FormatHeader(timeline.HeaderModel{})), "No range")
}
