package render

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/gantt"
	"github.com/alexanderramin/ganttline/internal/timeline"
)

const (
	DefaultIndentPerLevelPx = 20
	DefaultFallbackColor    = "#458588"
	DefaultCompleteBorder   = "#98971a"

	NoDatesPlaceholder = "no dates"

	taskRemainderOpacity = 0.35
	meetingFillOpacity   = 0.45
)

// Strategy decorates one row for display.
type Strategy interface {
	Decorate(row gantt.RowDescriptor, p *timeline.Projector) Bar
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(row gantt.RowDescriptor, p *timeline.Projector) Bar

func (f StrategyFunc) Decorate(row gantt.RowDescriptor, p *timeline.Projector) Bar {
	return f(row, p)
}

// Style holds the presentation settings shared by the built-in strategies.
type Style struct {
	IndentPerLevelPx int
	FallbackColor    string
	CompleteBorder   string
	// TagColors applies when a row has no color of its own.
	TagColors map[string]string
}

// DefaultStyle returns the stock presentation settings.
func DefaultStyle() Style {
	return Style{
		IndentPerLevelPx: DefaultIndentPerLevelPx,
		FallbackColor:    DefaultFallbackColor,
		CompleteBorder:   DefaultCompleteBorder,
	}
}

func (s Style) fill(row gantt.RowDescriptor) string {
	if row.ColorCode != "" {
		return row.ColorCode
	}
	if c := s.TagColors[row.EntityTypeTag]; c != "" {
		return c
	}
	return domain.CoalesceStr(s.FallbackColor, DefaultFallbackColor)
}

// DefaultStrategy draws a solid rectangle spanning the row's dates.
type DefaultStrategy struct {
	Style Style
}

func (d DefaultStrategy) Decorate(row gantt.RowDescriptor, p *timeline.Projector) Bar {
	bar := Bar{
		Tag:         row.EntityTypeTag,
		Label:       row.DisplayName,
		Level:       row.HierarchyLevel,
		IndentPx:    row.HierarchyLevel * d.Style.IndentPerLevelPx,
		Shape:       ShapeRect,
		Fill:        d.Style.fill(row),
		FillOpacity: 1,
		Tooltip:     Tooltip(row),
	}
	if row.NoDates || row.StartDate == nil || row.EndDate == nil || !p.HasRange() {
		bar.Placeholder = NoDatesPlaceholder
		return bar
	}

	rng := p.Range()
	start, end := *row.StartDate, *row.EndDate
	if end.Before(start) {
		start, end = end, start
	}
	if end.Before(rng.Start) || start.After(rng.End) {
		bar.OutOfRange = true
		return bar
	}
	if start.Before(rng.Start) {
		start = rng.Start
	}
	bar.LeftPx = p.PositionForDate(start)
	bar.WidthPx = p.WidthForDateRange(start, end)
	return bar
}

// TaskStrategy adds a completion overlay to the default bar.
type TaskStrategy struct {
	Style Style
}

func (t TaskStrategy) Decorate(row gantt.RowDescriptor, p *timeline.Projector) Bar {
	bar := DefaultStrategy(t).Decorate(row, p)
	if row.Progress == nil {
		return bar
	}
	pct := min(100, max(0, *row.Progress))
	bar.Progress = &Progress{
		Percent:          pct,
		DoneWidthPx:      bar.WidthPx * pct / 100,
		DoneFill:         bar.Fill,
		RemainderOpacity: taskRemainderOpacity,
	}
	if pct == 100 {
		bar.Complete = true
		bar.Border = domain.CoalesceStr(t.Style.CompleteBorder, DefaultCompleteBorder)
		bar.BorderWidth = 2
	}
	return bar
}

// MeetingStrategy draws a translucent pill no wider than one day column.
type MeetingStrategy struct {
	Style Style
}

func (m MeetingStrategy) Decorate(row gantt.RowDescriptor, p *timeline.Projector) Bar {
	bar := DefaultStrategy(m).Decorate(row, p)
	bar.Shape = ShapePill
	bar.FillOpacity = meetingFillOpacity
	bar.Border = bar.Fill
	bar.BorderWidth = 1
	if w := p.DayColumnWidthPx(); bar.WidthPx > w {
		bar.WidthPx = w
	}
	return bar
}

// Tooltip formats "name / responsible / start – end / N days", omitting
// parts that are not known.
func Tooltip(row gantt.RowDescriptor) string {
	parts := []string{row.DisplayName}
	if row.ResponsibleName != "" {
		parts = append(parts, row.ResponsibleName)
	}
	if row.NoDates {
		parts = append(parts, NoDatesPlaceholder)
	} else {
		parts = append(parts,
			row.StartDate.Format(domain.DateLayout)+" – "+row.EndDate.Format(domain.DateLayout),
			pluralDays(row.DurationDays))
	}
	if row.Progress != nil {
		parts = append(parts, fmt.Sprintf("%d%% done", *row.Progress))
	}
	if row.CycleSuspected {
		parts = append(parts, "parent cycle suspected")
	}
	return strings.Join(parts, " / ")
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// Registry dispatches rows to strategies by entity type tag.
type Registry struct {
	strategies map[string]Strategy
	fallback   Strategy
	logger     *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithFallback replaces the default strategy.
func WithFallback(s Strategy) RegistryOption {
	return func(r *Registry) {
		if s != nil {
			r.fallback = s
		}
	}
}

// WithRegistryLogger logs fallback dispatches at debug level.
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates a Registry whose fallback is DefaultStrategy.
func NewRegistry(style Style, opts ...RegistryOption) *Registry {
	r := &Registry{
		strategies: make(map[string]Strategy),
		fallback:   DefaultStrategy{Style: style},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewStandardRegistry registers the task and meeting strategies.
func NewStandardRegistry(style Style, opts ...RegistryOption) *Registry {
	r := NewRegistry(style, opts...)
	r.Register(domain.TagTask, TaskStrategy{Style: style})
	r.Register(domain.TagMeeting, MeetingStrategy{Style: style})
	return r
}

// Register installs s for tag. A nil strategy removes the registration.
func (r *Registry) Register(tag string, s Strategy) {
	if s == nil {
		delete(r.strategies, tag)
		return
	}
	r.strategies[tag] = s
}

// Tags lists tags with a dedicated strategy.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.strategies))
	for tag := range r.strategies {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// For returns the strategy for tag, or the fallback.
func (r *Registry) For(tag string) Strategy {
	if s, ok := r.strategies[tag]; ok {
		return s
	}
	return r.fallback
}

// Render decorates rows in order.
func (r *Registry) Render(rows []gantt.RowDescriptor, p *timeline.Projector) []Bar {
	bars := make([]Bar, 0, len(rows))
	for _, row := range rows {
		if _, ok := r.strategies[row.EntityTypeTag]; !ok {
			r.logger.Debug("render_fallback_strategy", "tag", row.EntityTypeTag, "item", row.SourceItemRef.String())
		}
		bars = append(bars, r.For(row.EntityTypeTag).Decorate(row, p))
	}
	return bars
}
