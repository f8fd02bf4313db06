package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/ganttline/internal/timeline"
)

// SVGOptions controls chart geometry and colors.
type SVGOptions struct {
	Title         string
	LabelWidthPx  int
	RowHeightPx   int
	BarHeightPx   int
	FontFamily    string
	FontSize      int
	Background    string
	TextColor     string
	GridColor     string
	WeekendFill   string
	TodayColor    string
	MutedText     string
	headerHeight  int
	monthRowPx    int
	dayRowPx      int
	titleHeightPx int
}

// DefaultSVGOptions returns the stock geometry.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		LabelWidthPx: 260,
		RowHeightPx:  26,
		BarHeightPx:  16,
		FontFamily:   "Helvetica, Arial, sans-serif",
		FontSize:     12,
		Background:   "#fbf1c7",
		TextColor:    "#3c3836",
		GridColor:    "#d5c4a1",
		WeekendFill:  "#ebdbb2",
		TodayColor:   "#cc241d",
		MutedText:    "#928374",
	}
}

func (o SVGOptions) withDefaults() SVGOptions {
	d := DefaultSVGOptions()
	if o.LabelWidthPx <= 0 {
		o.LabelWidthPx = d.LabelWidthPx
	}
	if o.RowHeightPx <= 0 {
		o.RowHeightPx = d.RowHeightPx
	}
	if o.BarHeightPx <= 0 || o.BarHeightPx > o.RowHeightPx {
		o.BarHeightPx = min(d.BarHeightPx, o.RowHeightPx)
	}
	if o.FontFamily == "" {
		o.FontFamily = d.FontFamily
	}
	if o.FontSize <= 0 {
		o.FontSize = d.FontSize
	}
	for _, pair := range []struct{ dst *string; def string }{
		{&o.Background, d.Background},
		{&o.TextColor, d.TextColor},
		{&o.GridColor, d.GridColor},
		{&o.WeekendFill, d.WeekendFill},
		{&o.TodayColor, d.TodayColor},
		{&o.MutedText, d.MutedText},
	} {
		if *pair.dst == "" {
			*pair.dst = pair.def
		}
	}
	o.monthRowPx = o.FontSize + 10
	o.dayRowPx = o.FontSize + 8
	if o.Title != "" {
		o.titleHeightPx = o.FontSize + 16
	}
	o.headerHeight = o.titleHeightPx + o.monthRowPx + o.dayRowPx
	return o
}

// WriteSVG writes a standalone SVG chart: a label column, the month and day
// header, weekend shading, a today marker and one bar per row.
func WriteSVG(w io.Writer, header timeline.HeaderModel, bars []Bar, opts SVGOptions) error {
	o := opts.withDefaults()

	timelineWidth := 0
	if header.HasRange {
		timelineWidth = header.Range.TotalDays * header.Range.DayColumnWidthPx
	}
	width := o.LabelWidthPx + max(timelineWidth, o.LabelWidthPx/2)
	height := o.headerHeight + max(1, len(bars))*o.RowHeightPx
	x0 := o.LabelWidthPx
	bodyTop := o.headerHeight

	var svg strings.Builder
	fmt.Fprintf(&svg, `<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
<defs>
<style>
.label { font-family: %s; font-size: %dpx; fill: %s; }
.muted { font-family: %s; font-size: %dpx; fill: %s; font-style: italic; }
.header { font-family: %s; font-size: %dpx; fill: %s; font-weight: bold; }
</style>
</defs>
`, width, height, o.Background,
		o.FontFamily, o.FontSize, o.TextColor,
		o.FontFamily, o.FontSize-1, o.MutedText,
		o.FontFamily, o.FontSize, o.TextColor)

	if o.Title != "" {
		fmt.Fprintf(&svg, `<text x="8" y="%d" class="header">%s</text>
`, o.FontSize+6, escapeXML(o.Title))
	}

	if header.HasRange {
		writeHeader(&svg, header, o, x0, bodyTop, height)
	}

	for i, bar := range bars {
		rowTop := bodyTop + i*o.RowHeightPx
		textY := rowTop + o.RowHeightPx/2 + o.FontSize/2 - 1
		fmt.Fprintf(&svg, `<line x1="0" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>
`, rowTop+o.RowHeightPx, width, rowTop+o.RowHeightPx, o.GridColor)
		fmt.Fprintf(&svg, `<text x="%d" y="%d" class="label">%s</text>
`, 8+bar.IndentPx, textY, escapeXML(bar.Label))

		switch {
		case bar.Placeholder != "":
			fmt.Fprintf(&svg, `<text x="%d" y="%d" class="muted">%s</text>
`, x0+6, textY, escapeXML(bar.Placeholder))
		case bar.Drawable():
			writeBar(&svg, bar, o, x0, rowTop)
		}
	}

	if len(bars) == 0 {
		fmt.Fprintf(&svg, `<text x="8" y="%d" class="muted">no items</text>
`, bodyTop+o.RowHeightPx/2+o.FontSize/2)
	}

	svg.WriteString("</svg>\n")
	_, err := io.WriteString(w, svg.String())
	return err
}

func writeHeader(svg *strings.Builder, h timeline.HeaderModel, o SVGOptions, x0, bodyTop, height int) {
	monthTop := o.titleHeightPx
	dayTop := monthTop + o.monthRowPx
	colW := h.Range.DayColumnWidthPx

	for _, c := range h.DayColumns {
		x := x0 + c.OffsetPx
		if c.Weekend {
			fmt.Fprintf(svg, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>
`, x, dayTop, c.WidthPx, height-dayTop, o.WeekendFill)
		}
		// Day numbers only fit on the wider tiers.
		if colW >= 20 {
			fmt.Fprintf(svg, `<text x="%d" y="%d" class="label" text-anchor="middle">%d</text>
`, x+c.WidthPx/2, dayTop+o.dayRowPx-6, c.Day)
		}
	}

	for _, m := range h.MonthGroups {
		x := x0 + m.StartColumn*colW
		fmt.Fprintf(svg, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>
`, x, monthTop, x, height, o.GridColor)
		if m.WidthPx >= 4*o.FontSize {
			fmt.Fprintf(svg, `<text x="%d" y="%d" class="header">%s</text>
`, x+4, monthTop+o.monthRowPx-8, escapeXML(m.Label))
		}
	}

	fmt.Fprintf(svg, `<line x1="0" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>
`, bodyTop, x0+h.Range.TotalDays*colW, bodyTop, o.GridColor)

	if off, ok := h.TodayOffsetPx(); ok {
		x := x0 + off + colW/2
		fmt.Fprintf(svg, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="2" stroke-dasharray="4,3"/>
`, x, dayTop, x, height, o.TodayColor)
	}
}

func writeBar(svg *strings.Builder, bar Bar, o SVGOptions, x0, rowTop int) {
	x := x0 + bar.LeftPx
	y := rowTop + (o.RowHeightPx-o.BarHeightPx)/2
	rx := 2
	if bar.Shape == ShapePill {
		rx = o.BarHeightPx / 2
	}

	stroke := ""
	if bar.Border != "" && bar.BorderWidth > 0 {
		stroke = fmt.Sprintf(` stroke="%s" stroke-width="%d"`, bar.Border, bar.BorderWidth)
	}

	svg.WriteString("<g>\n")
	fmt.Fprintf(svg, "<title>%s</title>\n", escapeXML(bar.Tooltip))
	if bar.Progress != nil {
		fmt.Fprintf(svg, `<rect x="%d" y="%d" width="%d" height="%d" rx="%d" fill="%s" fill-opacity="%.2f"%s/>
`, x, y, bar.WidthPx, o.BarHeightPx, rx, bar.Fill, bar.Progress.RemainderOpacity, stroke)
		if bar.Progress.DoneWidthPx > 0 {
			fmt.Fprintf(svg, `<rect x="%d" y="%d" width="%d" height="%d" rx="%d" fill="%s"/>
`, x, y, bar.Progress.DoneWidthPx, o.BarHeightPx, rx, bar.Progress.DoneFill)
		}
	} else {
		fmt.Fprintf(svg, `<rect x="%d" y="%d" width="%d" height="%d" rx="%d" fill="%s" fill-opacity="%.2f"%s/>
`, x, y, bar.WidthPx, o.BarHeightPx, rx, bar.Fill, bar.FillOpacity, stroke)
	}
	svg.WriteString("</g>\n")
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
