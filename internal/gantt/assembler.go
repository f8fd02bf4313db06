package gantt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/hierarchy"
	"github.com/alexanderramin/ganttline/internal/timeline"
)

// Ordering selects how rows are ordered.
type Ordering string

const (
	// OrderLevel sorts by (level, start, name).
	OrderLevel Ordering = "level"
	// OrderTree emits parents immediately followed by their children.
	OrderTree Ordering = "tree"
)

// ParseOrdering accepts "level" or "tree" (empty means level).
func ParseOrdering(s string) (Ordering, error) {
	switch Ordering(s) {
	case "", OrderLevel:
		return OrderLevel, nil
	case OrderTree:
		return OrderTree, nil
	default:
		return "", fmt.Errorf("invalid ordering %q (want level or tree)", s)
	}
}

// Assembler pulls items from every source and builds a Chart.
type Assembler struct {
	sources     []Source
	resolver    *hierarchy.Resolver
	logger      *slog.Logger
	ordering    Ordering
	tiers       []timeline.Tier
	paddingDays int
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger used for data-quality warnings.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithOrdering sets the default row ordering.
func WithOrdering(o Ordering) Option {
	return func(a *Assembler) {
		a.ordering = o
	}
}

// WithTiers sets the column width tiers used for Chart.Range.
func WithTiers(tiers []timeline.Tier) Option {
	return func(a *Assembler) {
		if timeline.ValidTiers(tiers) {
			a.tiers = tiers
		}
	}
}

// WithPaddingDays widens the computed range by n days on each side.
func WithPaddingDays(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.paddingDays = n
		}
	}
}

// NewAssembler creates an Assembler over sources, fetched in the given order.
func NewAssembler(resolver *hierarchy.Resolver, sources []Source, opts ...Option) *Assembler {
	a := &Assembler{
		sources:  sources,
		resolver: resolver,
		logger:   slog.New(slog.DiscardHandler),
		ordering: OrderLevel,
		tiers:    timeline.DefaultTiers,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble rebuilds the chart for a project using the configured ordering.
func (a *Assembler) Assemble(ctx context.Context, projectID string) (*Chart, error) {
	return a.AssembleOrdered(ctx, projectID, a.ordering)
}

// AssembleOrdered rebuilds the chart with an explicit ordering.
//
// Source failures abort the rebuild. Data-quality problems (dangling links,
// unknown tags, suspected cycles, missing dates) are logged, recorded as
// warnings and never fail the rebuild.
func (a *Assembler) AssembleOrdered(ctx context.Context, projectID string, ordering Ordering) (*Chart, error) {
	var items []*domain.ScheduleItem
	for _, src := range a.sources {
		batch, err := src.ListScheduleItems(ctx, projectID)
		if err != nil {
			return nil, fmt.Errorf("listing %s items: %w", src.Tag(), err)
		}
		items = append(items, batch...)
	}

	chart := &Chart{ProjectID: projectID, Rows: make([]RowDescriptor, 0, len(items))}
	for _, item := range items {
		if item == nil {
			continue
		}
		chart.Rows = append(chart.Rows, a.describe(ctx, chart, item))
	}

	switch ordering {
	case OrderTree:
		chart.Rows = treeOrder(chart.Rows)
	default:
		SortRows(chart.Rows)
	}

	chart.Range = a.computeRange(chart.Rows)
	return chart, nil
}

func (a *Assembler) describe(ctx context.Context, chart *Chart, item *domain.ScheduleItem) RowDescriptor {
	ref, _ := item.Ref()
	row := RowDescriptor{
		EntityTypeTag:   item.EntityTypeTag,
		DisplayName:     item.DisplayName,
		ResponsibleName: item.ResponsibleName,
		StartDate:       dayPtr(item.StartDate),
		EndDate:         dayPtr(item.EndDate),
		ParentLink:      item.ParentLink,
		ColorCode:       item.ColorCode,
		IconID:          item.IconID,
		SourceItemRef:   ref,
	}

	if row.StartDate != nil && row.EndDate != nil {
		row.DurationDays = max(0, domain.DaysBetween(*row.StartDate, *row.EndDate)+1)
	} else {
		row.NoDates = true
		a.warn(ctx, chart, WarnNoDates, ref, "item has no complete date range")
	}

	if pr, ok := item.Source.(domain.ProgressReporter); ok {
		p := pr.ProgressPercent()
		row.Progress = &p
	}

	level, err := a.resolver.Level(ctx, item)
	if err == nil {
		row.HierarchyLevel = level
		return row
	}
	if errors.Is(err, domain.ErrCycleSuspected) {
		row.CycleSuspected = true
		a.warn(ctx, chart, WarnCycleSuspected, ref, err.Error())
		return row
	}

	// The walk stopped at an ancestor whose own link is broken. That ancestor
	// counts as a root, so level is already the hop count to it. Only the row
	// holding the broken link is warned about.
	row.HierarchyLevel = level
	switch {
	case errors.Is(err, domain.ErrUnknownTypeTag):
		if level == 0 {
			a.warn(ctx, chart, WarnUnknownTag, ref, err.Error())
		}
	case errors.Is(err, domain.ErrParentNotFound):
		if level == 0 {
			a.warn(ctx, chart, WarnParentMissing, ref, err.Error())
		}
	default:
		// A failing lookup is a store problem, reported on every row it cuts short.
		a.warn(ctx, chart, WarnParentMissing, ref, err.Error())
	}
	return row
}

func (a *Assembler) warn(ctx context.Context, chart *Chart, kind WarningKind, ref domain.ItemRef, msg string) {
	chart.Warnings = append(chart.Warnings, Warning{Kind: kind, Item: ref, Message: msg})
	a.logger.WarnContext(ctx, "gantt_row_degraded",
		"project_id", chart.ProjectID,
		"kind", string(kind),
		"item", ref.String(),
		"detail", msg,
	)
}

func (a *Assembler) computeRange(rows []RowDescriptor) *timeline.Range {
	var lo, hi time.Time
	seen := false
	include := func(d *time.Time) {
		if d == nil {
			return
		}
		if !seen || d.Before(lo) {
			lo = *d
		}
		if !seen || d.After(hi) {
			hi = *d
		}
		seen = true
	}
	for _, r := range rows {
		include(r.StartDate)
		include(r.EndDate)
	}
	if !seen {
		return nil
	}
	if a.paddingDays > 0 {
		lo = lo.AddDate(0, 0, -a.paddingDays)
		hi = hi.AddDate(0, 0, a.paddingDays)
	}
	total := domain.DaysBetween(lo, hi) + 1
	return &timeline.Range{
		Start:            lo,
		End:              hi,
		TotalDays:        total,
		DayColumnWidthPx: timeline.ColumnWidth(a.tiers, total),
	}
}

func dayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := domain.Day(*t)
	return &d
}
