// Package render draws the sequence view on a terminal screen: a ruler,
// the sequence wrapped at a fixed width, the complementary strand, an
// annotation track per row, and a status line.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/seqstorm/internal/engine"
	"github.com/dshills/seqstorm/internal/engine/coord"
)

// Options configures the view.
type Options struct {
	// BasesPerLine is the sequence wrap width.
	BasesPerLine int

	// ShowComplement renders the complementary strand under the primary.
	ShowComplement bool

	// ColorScheme selects the annotation palette.
	ColorScheme string
}

// DefaultOptions returns sensible view defaults.
func DefaultOptions() Options {
	return Options{
		BasesPerLine:   60,
		ShowComplement: true,
		ColorScheme:    "default",
	}
}

// View renders engine state onto a tcell screen. It holds only display
// state (scroll offset); all sequence state is read from the engine at
// draw time.
type View struct {
	eng     *engine.Engine
	opts    Options
	palette *Palette

	// topRow is the first sequence row (not screen line) displayed.
	topRow int
}

// NewView creates a view over the engine.
func NewView(eng *engine.Engine, opts Options) *View {
	if opts.BasesPerLine <= 0 {
		opts.BasesPerLine = DefaultOptions().BasesPerLine
	}
	return &View{
		eng:     eng,
		opts:    opts,
		palette: NewPalette(opts.ColorScheme),
	}
}

// gutterWidth is the width of the position column.
const gutterWidth = 10

// RowCount returns the number of sequence rows at the current wrap width.
func (v *View) RowCount() int {
	n := v.eng.Len()
	if n == 0 {
		return 1
	}
	return (n + v.opts.BasesPerLine - 1) / v.opts.BasesPerLine
}

// linesPerRow is the screen lines each sequence row occupies.
func (v *View) linesPerRow() int {
	lines := 2 // ruler + sequence
	if v.opts.ShowComplement {
		lines++
	}
	lines++ // annotation track
	return lines
}

// ScrollTo makes the row holding pos the top row.
func (v *View) ScrollTo(pos int) {
	row := pos / v.opts.BasesPerLine
	v.setTopRow(row)
}

// ScrollBy moves the viewport by delta rows.
func (v *View) ScrollBy(delta int) {
	v.setTopRow(v.topRow + delta)
}

func (v *View) setTopRow(row int) {
	if row < 0 {
		row = 0
	}
	if max := v.RowCount() - 1; row > max {
		row = max
	}
	v.topRow = row
}

// Draw renders a full frame.
func (v *View) Draw(screen tcell.Screen) {
	screen.Clear()
	width, height := screen.Size()
	if width <= gutterWidth || height < 2 {
		return
	}

	y := 0
	row := v.topRow
	perRow := v.linesPerRow()
	for y+perRow <= height-1 && row < v.RowCount() {
		v.drawRow(screen, row, y, width)
		y += perRow
		row++
	}
	v.drawStatus(screen, width, height)
	screen.Show()
}

// drawRow renders one wrapped sequence row starting at screen line y.
func (v *View) drawRow(screen tcell.Screen, row, y, width int) {
	start := row * v.opts.BasesPerLine
	end := start + v.opts.BasesPerLine
	if end > v.eng.Len() {
		end = v.eng.Len()
	}

	// Ruler with tick marks every ten bases.
	drawText(screen, 0, y, v.palette.rulerStyle(), fmt.Sprintf("%*d", gutterWidth-1, start))
	for i := start; i < end; i++ {
		x := gutterWidth + (i - start)
		if x >= width {
			break
		}
		mark := ' '
		if i%10 == 0 {
			mark = '|'
		}
		screen.SetContent(x, y, mark, nil, v.palette.rulerStyle())
	}

	// Primary strand with selection highlighting.
	text, err := v.eng.TextRange(start, end)
	if err != nil {
		return
	}
	selected := v.selectedColumns(start, end)
	for i, r := range text {
		x := gutterWidth + i
		if x >= width {
			break
		}
		style := v.palette.sequenceStyle()
		if selected[i] {
			style = v.palette.selectionStyle()
		}
		screen.SetContent(x, y+1, r, nil, style)
	}

	line := y + 2
	if v.opts.ShowComplement {
		comp, err := v.eng.Complement(start, end)
		if err == nil {
			drawText(screen, gutterWidth, line, v.palette.complementStyle(), comp)
		}
		line++
	}

	v.drawAnnotationTrack(screen, start, end, line, width)
}

// drawAnnotationTrack renders feature bars under one sequence row.
func (v *View) drawAnnotationTrack(screen tcell.Screen, start, end, y, width int) {
	rowRange := coord.NewRange(start, end)
	for _, a := range v.eng.Annotations() {
		if !a.Span.OverlapsRange(rowRange) {
			continue
		}
		style := v.palette.annotationStyle(a.Type)
		for _, r := range a.Span {
			seg := r.Intersect(rowRange)
			if seg.IsPoint() {
				continue
			}
			for i := seg.Start; i < seg.End; i++ {
				x := gutterWidth + (i - start)
				if x >= width {
					break
				}
				glyph := '='
				if r.Orientation == coord.OrientMinus {
					glyph = '<'
				}
				screen.SetContent(x, y, glyph, nil, style)
			}
		}
		// Caption at the feature's first visible column.
		if first := v.captionColumn(a.Span, start, end); first >= 0 {
			caption := truncate(a.Caption, end-first)
			drawText(screen, gutterWidth+(first-start), y, style, caption)
		}
	}
}

func (v *View) captionColumn(span coord.Span, start, end int) int {
	first := -1
	rowRange := coord.NewRange(start, end)
	for _, r := range span {
		seg := r.Intersect(rowRange)
		if seg.IsPoint() {
			continue
		}
		if first < 0 || seg.Start < first {
			first = seg.Start
		}
	}
	return first
}

// selectedColumns marks which columns of [start, end) are selected.
func (v *View) selectedColumns(start, end int) []bool {
	out := make([]bool, end-start)
	for _, r := range v.eng.Selection() {
		seg := r.Intersect(coord.NewRange(start, end))
		for i := seg.Start; i < seg.End; i++ {
			out[i-start] = true
		}
	}
	return out
}

// drawStatus renders the bottom status line.
func (v *View) drawStatus(screen tcell.Screen, width, height int) {
	topology := "linear"
	if v.eng.Circular() {
		topology = "circular"
	}
	sel := "none"
	if ranges := v.eng.Selection(); ranges != nil {
		sel = coord.Span(ranges).String()
	}
	status := fmt.Sprintf(" %d bp %s | sel: %s | annotations: %d ",
		v.eng.Len(), topology, sel, v.eng.AnnotationCount())

	style := v.palette.statusStyle()
	drawText(screen, 0, height-1, style, truncate(status, width))
	for x := runewidth.StringWidth(status); x < width; x++ {
		screen.SetContent(x, height-1, ' ', nil, style)
	}
}

// drawText writes a string left to right, honoring rune display widths.
func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// truncate shortens s to at most width display columns.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "")
}
