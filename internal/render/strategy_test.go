package render

import (
	"testing"
	"time"

	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/gantt"
	"github.com/alexanderramin/ganttline/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProjector(t *testing.T, start, end string) *timeline.Projector {
	t.Helper()
	p := timeline.NewProjector(timeline.WithClock(func() time.Time { return domain.MustDate("2024-01-10") }))
	require.NoError(t, p.SetDateRange(domain.MustDate(start), domain.MustDate(end)))
	return p
}

type rowOption func(*gantt.RowDescriptor)

func newRow(tag, name, start, end string, opts ...rowOption) gantt.RowDescriptor {
	r := gantt.RowDescriptor{EntityTypeTag: tag, DisplayName: name}
	if start != "" && end != "" {
		s, e := domain.MustDate(start), domain.MustDate(end)
		r.StartDate, r.EndDate = &s, &e
		r.DurationDays = domain.DaysBetween(s, e) + 1
	} else {
		r.NoDates = true
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func withLevel(n int) rowOption { return func(r *gantt.RowDescriptor) { r.HierarchyLevel = n } }
func withProgress(n int) rowOption { return func(r *gantt.RowDescriptor) { r.Progress = &n } }
func withColor(c string) rowOption { return func(r *gantt.RowDescriptor) { r.ColorCode = c } }
func withResponsible(s string) rowOption {
	return func(r *gantt.RowDescriptor) { r.ResponsibleName = s }
}

func TestDefaultStrategy_SolidBar(t *testing.T) {
	p := setupProjector(t, "2024-01-01", "2024-01-30")
	row := newRow("approval", "Sign-off", "2024-01-05", "2024-01-09", withLevel(2), withResponsible("Dana"))

	bar := DefaultStrategy{Style: DefaultStyle()}.Decorate(row, p)

	assert.Equal(t, 120, bar.LeftPx)
	assert.Equal(t, 150, bar.WidthPx)
	assert.Equal(t, 40, bar.IndentPx)
	assert.Equal(t, ShapeRect, bar.Shape)
	assert.Equal(t, DefaultFallbackColor, bar.Fill)
	assert.InDelta(t, 1.0, bar.FillOpacity, 0.001)
	assert.Equal(t, "Sign-off / Dana / 2024-01-05 – 2024-01-09 / 5 days", bar.Tooltip)
	assert.True(t, bar.Drawable())
}

func TestDefaultStrategy_NoDatesPlaceholder(t *testing.T) {
	p := setupProjector(t, "2024-01-01", "2024-01-30")
	bar := DefaultStrategy{Style: DefaultStyle()}.Decorate(newRow(domain.TagTask, "Backlog", "", ""), p)

	assert.Equal(t, NoDatesPlaceholder, bar.Placeholder)
	assert.False(t, bar.Drawable())
	assert.Equal(t, "Backlog / no dates", bar.Tooltip)
}

func TestDefaultStrategy_NoRangeIsPlaceholder(t *testing.T) {
	bar := DefaultStrategy{Style: DefaultStyle()}.Decorate(
		newRow(domain.TagTask, "Build", "2024-01-05", "2024-01-09"), timeline.NewProjector())
	assert.Equal(t, NoDatesPlaceholder, bar.Placeholder)
}

func TestDefaultStrategy_ClipsToRange(t *testing.T) {
	p := setupProjector(t, "2024-01-10", "2024-01-20")
	s := DefaultStrategy{Style: DefaultStyle()}

	bar := s.Decorate(newRow(domain.TagTask, "Long", "2024-01-01", "2024-01-12"), p)
	assert.Equal(t, 0, bar.LeftPx)
	assert.Equal(t, 90, bar.WidthPx)

	bar = s.Decorate(newRow(domain.TagTask, "Later", "2024-02-01", "2024-02-03"), p)
	assert.True(t, bar.OutOfRange)
	assert.False(t, bar.Drawable())
}

func TestStyle_ColorPrecedence(t *testing.T) {
	p := setupProjector(t, "2024-01-01", "2024-01-30")
	style := DefaultStyle()
	style.TagColors = map[string]string{domain.TagTask: "#b16286"}
	s := DefaultStrategy{Style: style}

	assert.Equal(t, "#b16286", s.Decorate(newRow(domain.TagTask, "A", "2024-01-01", "2024-01-02"), p).Fill)
	assert.Equal(t, "#d79921", s.Decorate(newRow(domain.TagTask, "B", "2024-01-01", "2024-01-02", withColor("#d79921")), p).Fill)
	assert.Equal(t, DefaultFallbackColor, s.Decorate(newRow("other", "C", "2024-01-01", "2024-01-02"), p).Fill)
}

func TestTaskStrategy_ProgressOverlay(t *testing.T) {
	p := setupProjector(t, "2024-01-01", "2024-01-30")
	bar := TaskStrategy{Style: DefaultStyle()}.Decorate(
		newRow(domain.TagTask, "Build", "2024-01-01", "2024-01-10", withProgress(40), withColor("#d65d0e")), p)

	require.NotNil(t, bar.Progress)
	assert.Equal(t, 40, bar.Progress.Percent)
	assert.Equal(t, 120, bar.Progress.DoneWidthPx)
	assert.Equal(t, "#d65d0e", bar.Progress.DoneFill)
	assert.InDelta(t, 0.35, bar.Progress.RemainderOpacity, 0.001)
	assert.False(t, bar.Complete)
	assert.Empty(t, bar.Border)
}

func TestTaskStrategy_Complete(t *testing.T) {
	p := setupProjector(t, "2024-01-01", "2024-01-30")
	bar := TaskStrategy{Style: DefaultStyle()}.Decorate(
		newRow(domain.TagTask, "Ship", "2024-01-01", "2024-01-02", withProgress(100)), p)

	assert.True(t, bar.Complete)
	assert.Equal(t, DefaultCompleteBorder, bar.Border)
	assert.Equal(t, 2, bar.BorderWidth)
	assert.Equal(t, bar.WidthPx, bar.Progress.DoneWidthPx)
}

func TestTaskStrategy_WithoutProgress(t *testing.T) {
	p := setupProjector(t, "2024-01-01", "2024-01-30")
	bar := TaskStrategy{Style: DefaultStyle()}.Decorate(newRow(domain.TagTask, "Plan", "2024-01-01", "2024-01-02"), p)
	assert.Nil(t, bar.Progress)
}

func TestMeetingStrategy_PillCappedAtOneColumn(t *testing.T) {
	p := setupProjector(t, "2024-01-01", "2024-02-10")
	bar := MeetingStrategy{Style: DefaultStyle()}.Decorate(
		newRow(domain.TagMeeting, "Workshop", "2024-01-08", "2024-01-10"), p)

	assert.Equal(t, ShapePill, bar.Shape)
	assert.InDelta(t, 0.45, bar.FillOpacity, 0.001)
	assert.Equal(t, 140, bar.LeftPx)
	assert.Equal(t, 20, bar.WidthPx)
	assert.Equal(t, bar.Fill, bar.Border)
	assert.Equal(t, 1, bar.BorderWidth)
}

func TestRegistry_DispatchAndFallback(t *testing.T) {
	p := setupProjector(t, "2024-01-01", "2024-01-30")
	r := NewStandardRegistry(DefaultStyle())

	assert.IsType(t, TaskStrategy{}, r.For(domain.TagTask))
	assert.IsType(t, MeetingStrategy{}, r.For(domain.TagMeeting))
	assert.IsType(t, DefaultStrategy{}, r.For("approval"))
	assert.Equal(t, []string{"meeting", "task"}, r.Tags())

	bars := r.Render([]gantt.RowDescriptor{
		newRow(domain.TagTask, "T", "2024-01-01", "2024-01-03", withProgress(50)),
		newRow(domain.TagMeeting, "M", "2024-01-02", "2024-01-02"),
		newRow("approval", "A", "2024-01-04", "2024-01-05"),
	}, p)
	require.Len(t, bars, 3)
	assert.NotNil(t, bars[0].Progress)
	assert.Equal(t, ShapePill, bars[1].Shape)
	assert.Equal(t, ShapeRect, bars[2].Shape)
	assert.Nil(t, bars[2].Progress)
}

func TestRegistry_CustomStrategy(t *testing.T) {
	p := setupProjector(t, "2024-01-01", "2024-01-30")
	r := NewRegistry(DefaultStyle())
	r.Register("milestone", StrategyFunc(func(row gantt.RowDescriptor, p *timeline.Projector) Bar {
		return Bar{Tag: row.EntityTypeTag, Label: "◆ " + row.DisplayName}
	}))

	bars := r.Render([]gantt.RowDescriptor{newRow("milestone", "GA", "2024-01-30", "2024-01-30")}, p)
	assert.Equal(t, "◆ GA", bars[0].Label)

	r.Register("milestone", nil)
	assert.IsType(t, DefaultStrategy{}, r.For("milestone"))
}

func TestRegistry_EmptyRows(t *testing.T) {
	bars := NewStandardRegistry(DefaultStyle()).Render(nil, timeline.NewProjector())
	assert.NotNil(t, bars)
	assert.Empty(t, bars)
}
