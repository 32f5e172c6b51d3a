package render

import (
	"hash/fnv"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette assigns stable colors to annotation types. The same type always
// gets the same color within a session.
type Palette struct {
	scheme string
}

// NewPalette creates a palette for the named color scheme. Unknown names
// fall back to the default scheme.
func NewPalette(scheme string) *Palette {
	return &Palette{scheme: scheme}
}

// ColorFor returns the display color for an annotation type. Colors are
// derived from the type name so they stay stable across sessions and
// machines.
func (p *Palette) ColorFor(annotationType string) tcell.Color {
	h := fnv.New32a()
	h.Write([]byte(annotationType))
	hue := float64(h.Sum32()%360) + 0.5

	sat, lum := 0.65, 0.55
	if p.scheme == "pastel" {
		sat, lum = 0.4, 0.7
	}
	c := colorful.Hsl(hue, sat, lum)
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Base styles used by the view.
func (p *Palette) sequenceStyle() tcell.Style {
	return tcell.StyleDefault
}

func (p *Palette) rulerStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.ColorGray)
}

func (p *Palette) complementStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
}

func (p *Palette) selectionStyle() tcell.Style {
	return tcell.StyleDefault.Reverse(true)
}

func (p *Palette) statusStyle() tcell.Style {
	return tcell.StyleDefault.Reverse(true).Bold(true)
}

func (p *Palette) annotationStyle(annotationType string) tcell.Style {
	return tcell.StyleDefault.Foreground(p.ColorFor(annotationType))
}
