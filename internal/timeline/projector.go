// Package timeline projects calendar dates onto pixel columns.
//
// A Projector holds one inclusive date range and a day column width chosen
// from the range length. Every position and width it returns is a whole
// number of day columns.
package timeline

import (
	"time"

	"github.com/alexanderramin/ganttline/internal/domain"
)

// Range is a resolved, inclusive date range.
type Range struct {
	Start            time.Time
	End              time.Time
	TotalDays        int
	DayColumnWidthPx int
}

// Projector maps dates in its range to pixel offsets.
type Projector struct {
	tiers []Tier
	rng   Range
	set   bool
	now   func() time.Time
}

// ProjectorOption configures a Projector.
type ProjectorOption func(*Projector)

// WithTiers overrides DefaultTiers. Invalid tier lists are ignored.
func WithTiers(tiers []Tier) ProjectorOption {
	return func(p *Projector) {
		if ValidTiers(tiers) {
			p.tiers = tiers
		}
	}
}

// WithClock sets the clock used to flag today's column.
func WithClock(now func() time.Time) ProjectorOption {
	return func(p *Projector) {
		p.now = now
	}
}

// NewProjector creates a Projector with no range set.
func NewProjector(opts ...ProjectorOption) *Projector {
	p := &Projector{tiers: DefaultTiers, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetDateRange sets the inclusive range. Both dates are required and start
// must not be after end.
func (p *Projector) SetDateRange(start, end time.Time) error {
	switch {
	case start.IsZero() || end.IsZero():
		return &domain.InvalidRangeError{Start: start, End: end, Reason: "start and end are required"}
	case domain.Day(start).After(domain.Day(end)):
		return &domain.InvalidRangeError{Start: start, End: end, Reason: "start " + start.Format(domain.DateLayout) + " is after end " + end.Format(domain.DateLayout)}
	}
	total := domain.DaysBetween(start, end) + 1
	p.rng = Range{
		Start:            domain.Day(start),
		End:              domain.Day(end),
		TotalDays:        total,
		DayColumnWidthPx: ColumnWidth(p.tiers, total),
	}
	p.set = true
	return nil
}

// HasRange reports whether SetDateRange succeeded at least once.
func (p *Projector) HasRange() bool {
	return p.set
}

// Range returns the current range (zero value when none is set).
func (p *Projector) Range() Range {
	return p.rng
}

// DayColumnWidthPx returns the width of one day column.
func (p *Projector) DayColumnWidthPx() int {
	return p.rng.DayColumnWidthPx
}

// TotalWidthPx is the width of the whole range.
func (p *Projector) TotalWidthPx() int {
	return p.rng.TotalDays * p.rng.DayColumnWidthPx
}

// Contains reports whether d falls inside the range.
func (p *Projector) Contains(d time.Time) bool {
	if !p.set || d.IsZero() {
		return false
	}
	day := domain.Day(d)
	return !day.Before(p.rng.Start) && !day.After(p.rng.End)
}

// PositionForDate returns the left offset of d's column, or 0 when d is zero
// or outside the range.
func (p *Projector) PositionForDate(d time.Time) int {
	if !p.Contains(d) {
		return 0
	}
	return domain.DaysBetween(p.rng.Start, d) * p.rng.DayColumnWidthPx
}

// WidthForDateRange returns the pixel width covering s..e inclusive after
// clamping both into the range. An empty result is floored at one column.
func (p *Projector) WidthForDateRange(s, e time.Time) int {
	if !p.set {
		return 0
	}
	if s.IsZero() || domain.Day(s).Before(p.rng.Start) {
		s = p.rng.Start
	}
	if e.IsZero() || domain.Day(e).After(p.rng.End) {
		e = p.rng.End
	}
	days := domain.DaysBetween(s, e) + 1
	if days < 1 {
		return p.rng.DayColumnWidthPx
	}
	return days * p.rng.DayColumnWidthPx
}

// DateAtOffset maps a pixel offset back to the day column under it. Offsets
// outside the range are clamped.
func (p *Projector) DateAtOffset(px int) time.Time {
	if !p.set {
		return time.Time{}
	}
	col := px / p.rng.DayColumnWidthPx
	if col < 0 {
		col = 0
	}
	if col >= p.rng.TotalDays {
		col = p.rng.TotalDays - 1
	}
	return p.rng.Start.AddDate(0, 0, col)
}
