package timeline

import (
	"time"

	"github.com/alexanderramin/ganttline/internal/domain"
)

// MonthGroup spans the day columns of one calendar month.
type MonthGroup struct {
	Label       string
	Year        int
	Month       time.Month
	StartColumn int
	Span        int
	WidthPx     int
}

// WeekGroup spans the day columns of one ISO week.
type WeekGroup struct {
	ISOYear     int
	Week        int
	StartColumn int
	Span        int
}

// DayColumn describes one day of the range.
type DayColumn struct {
	Date     time.Time
	Day      int
	Weekday  time.Weekday
	Weekend  bool
	Today    bool
	OffsetPx int
	WidthPx  int
}

// HeaderModel is the month/week/day header for a range. When HasRange is
// false all groups are empty.
type HeaderModel struct {
	HasRange    bool
	Range       Range
	MonthGroups []MonthGroup
	WeekGroups  []WeekGroup
	DayColumns  []DayColumn
}

// HeaderModel builds the header for the current range.
func (p *Projector) HeaderModel() HeaderModel {
	if !p.set {
		return HeaderModel{}
	}
	h := HeaderModel{
		HasRange:    true,
		Range:       p.rng,
		DayColumns:  make([]DayColumn, 0, p.rng.TotalDays),
		MonthGroups: []MonthGroup{},
		WeekGroups:  []WeekGroup{},
	}
	today := domain.Day(p.now())
	w := p.rng.DayColumnWidthPx

	for i := 0; i < p.rng.TotalDays; i++ {
		d := p.rng.Start.AddDate(0, 0, i)
		wd := d.Weekday()
		h.DayColumns = append(h.DayColumns, DayColumn{
			Date:     d,
			Day:      d.Day(),
			Weekday:  wd,
			Weekend:  wd == time.Saturday || wd == time.Sunday,
			Today:    d.Equal(today),
			OffsetPx: i * w,
			WidthPx:  w,
		})

		if n := len(h.MonthGroups); n == 0 || h.MonthGroups[n-1].Month != d.Month() || h.MonthGroups[n-1].Year != d.Year() {
			h.MonthGroups = append(h.MonthGroups, MonthGroup{
				Label:       d.Format("Jan 2006"),
				Year:        d.Year(),
				Month:       d.Month(),
				StartColumn: i,
			})
		}
		h.MonthGroups[len(h.MonthGroups)-1].Span++
		h.MonthGroups[len(h.MonthGroups)-1].WidthPx += w

		year, week := d.ISOWeek()
		if n := len(h.WeekGroups); n == 0 || h.WeekGroups[n-1].Week != week || h.WeekGroups[n-1].ISOYear != year {
			h.WeekGroups = append(h.WeekGroups, WeekGroup{ISOYear: year, Week: week, StartColumn: i})
		}
		h.WeekGroups[len(h.WeekGroups)-1].Span++
	}
	return h
}

// TodayOffsetPx returns the offset of today's column and whether today lies
// inside the range.
func (h HeaderModel) TodayOffsetPx() (int, bool) {
	for _, c := range h.DayColumns {
		if c.Today {
			return c.OffsetPx, true
		}
	}
	return 0, false
}
