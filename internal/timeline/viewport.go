package timeline

import (
	"time"

	"github.com/alexanderramin/ganttline/internal/domain"
)

const (
	// MinWindowDays is the narrowest window a Viewport allows.
	MinWindowDays = 7

	ZoomInFactor  = 0.7
	ZoomOutFactor = 1.5

	scrollPercent = 30
)

// Viewport is a movable window over a full date range. The window never
// leaves the full range and is never narrower than MinWindowDays (or the full
// range when that is shorter).
type Viewport struct {
	fullStart, fullEnd time.Time
	start, end         time.Time
}

// NewViewport creates a viewport showing the whole of start..end.
func NewViewport(start, end time.Time) (*Viewport, error) {
	if start.IsZero() || end.IsZero() {
		return nil, &domain.InvalidRangeError{Start: start, End: end, Reason: "start and end are required"}
	}
	start, end = domain.Day(start), domain.Day(end)
	if start.After(end) {
		start, end = end, start
	}
	return &Viewport{fullStart: start, fullEnd: end, start: start, end: end}, nil
}

// Window returns the visible range.
func (v *Viewport) Window() (time.Time, time.Time) {
	return v.start, v.end
}

// Full returns the full range.
func (v *Viewport) Full() (time.Time, time.Time) {
	return v.fullStart, v.fullEnd
}

// WindowDays is the inclusive length of the visible range.
func (v *Viewport) WindowDays() int {
	return domain.DaysBetween(v.start, v.end) + 1
}

func (v *Viewport) fullDays() int {
	return domain.DaysBetween(v.fullStart, v.fullEnd) + 1
}

func (v *Viewport) minDays() int {
	return min(MinWindowDays, v.fullDays())
}

// Zoom scales the window around its center. Factors below 1 zoom in.
func (v *Viewport) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	days := int(float64(v.WindowDays())*factor + 0.5)
	days = max(v.minDays(), min(days, v.fullDays()))
	center := v.start.AddDate(0, 0, (v.WindowDays()-1)/2)
	start := center.AddDate(0, 0, -(days-1)/2)
	v.Apply(start, start.AddDate(0, 0, days-1))
}

// ZoomIn narrows the window.
func (v *Viewport) ZoomIn() { v.Zoom(ZoomInFactor) }

// ZoomOut widens the window.
func (v *Viewport) ZoomOut() { v.Zoom(ZoomOutFactor) }

// Scroll shifts the window by 30% of its width, at least one day. Negative
// directions move toward earlier dates.
func (v *Viewport) Scroll(direction int) {
	if direction == 0 {
		return
	}
	shift := max(1, v.WindowDays()*scrollPercent/100)
	if direction < 0 {
		shift = -shift
	}
	days := v.WindowDays()
	start := v.start.AddDate(0, 0, shift)
	if start.Before(v.fullStart) {
		start = v.fullStart
	}
	end := start.AddDate(0, 0, days-1)
	if end.After(v.fullEnd) {
		end = v.fullEnd
		start = end.AddDate(0, 0, -(days - 1))
	}
	v.start, v.end = start, end
}

// FocusMiddle shows a window of max(MinWindowDays, full/4) days around the
// middle of the full range.
func (v *Viewport) FocusMiddle() {
	days := max(v.minDays(), v.fullDays()/4)
	mid := v.fullStart.AddDate(0, 0, (v.fullDays()-1)/2)
	start := mid.AddDate(0, 0, -(days-1)/2)
	v.Apply(start, start.AddDate(0, 0, days-1))
}

// Reset shows the full range.
func (v *Viewport) Reset() {
	v.start, v.end = v.fullStart, v.fullEnd
}

// Apply sets the window to start..end, swapping an inverted pair, widening
// to the minimum width and shifting it back inside the full range.
func (v *Viewport) Apply(start, end time.Time) {
	start, end = domain.Day(start), domain.Day(end)
	if start.After(end) {
		start, end = end, start
	}
	days := domain.DaysBetween(start, end) + 1
	if days < v.minDays() {
		days = v.minDays()
	}
	if days > v.fullDays() {
		days = v.fullDays()
	}
	end = start.AddDate(0, 0, days-1)
	if start.Before(v.fullStart) {
		start = v.fullStart
		end = start.AddDate(0, 0, days-1)
	}
	if end.After(v.fullEnd) {
		end = v.fullEnd
		start = end.AddDate(0, 0, -(days - 1))
	}
	v.start, v.end = start, end
}

// Project sets p to the visible window.
func (v *Viewport) Project(p *Projector) error {
	return p.SetDateRange(v.start, v.end)
}
