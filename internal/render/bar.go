// Package render turns assembled rows into drawable bars.
//
// Each entity type tag can register a Strategy; unknown tags fall back to
// the default strategy so every row always produces a bar.
package render

// Shape is the outline of a bar.
type Shape string

const (
	ShapeRect Shape = "rect"
	ShapePill Shape = "pill"
)

// Progress is the completion overlay drawn over a bar.
type Progress struct {
	Percent          int
	DoneWidthPx      int
	DoneFill         string
	RemainderOpacity float64
}

// Bar is a fully decorated row ready for a backend.
type Bar struct {
	Tag      string
	Label    string
	Level    int
	IndentPx int

	// Placeholder replaces the bar when the row cannot be drawn.
	Placeholder string
	// OutOfRange is set when the row's dates fall entirely outside the
	// projected range.
	OutOfRange bool

	LeftPx      int
	WidthPx     int
	Shape       Shape
	Fill        string
	FillOpacity float64
	Border      string
	BorderWidth int
	Progress    *Progress
	Complete    bool
	Tooltip     string
}

// Drawable reports whether the bar has a position on the timeline.
func (b Bar) Drawable() bool {
	return b.Placeholder == "" && !b.OutOfRange && b.WidthPx > 0
}
