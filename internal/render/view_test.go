package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/seqstorm/internal/engine"
	"github.com/dshills/seqstorm/internal/engine/coord"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

// screenLine reads a rendered line back as a string.
func screenLine(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) > 0 {
			sb.WriteRune(c.Runes[0])
		} else {
			sb.WriteByte(' ')
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

func newViewEngine(t *testing.T, text string, opts ...engine.Option) *engine.Engine {
	t.Helper()
	opts = append([]engine.Option{engine.WithSequence(text)}, opts...)
	eng, err := engine.New(opts...)
	if err != nil {
		t.Fatal(err)
	}
	return eng
}

func TestDrawSequence(t *testing.T) {
	eng := newViewEngine(t, strings.Repeat("ACGT", 10))
	view := NewView(eng, Options{BasesPerLine: 20, ShowComplement: true})
	screen := newSimScreen(t, 40, 12)

	view.Draw(screen)

	// Line 1 of the first row holds the first 20 bases.
	seqLine := screenLine(screen, 1)
	if !strings.Contains(seqLine, strings.Repeat("ACGT", 5)) {
		t.Errorf("sequence line = %q", seqLine)
	}
	// The complement strand sits below it.
	compLine := screenLine(screen, 2)
	if !strings.Contains(compLine, strings.Repeat("TGCA", 5)) {
		t.Errorf("complement line = %q", compLine)
	}
	// Status line reports the length.
	status := screenLine(screen, 11)
	if !strings.Contains(status, "40 bp linear") {
		t.Errorf("status line = %q", status)
	}
}

func TestDrawAnnotationTrack(t *testing.T) {
	eng := newViewEngine(t, strings.Repeat("ACGT", 10))
	span, err := coord.ParseSpan("2..8")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := eng.AddAnnotation(engine.AnnotationSpec{Caption: "promoter", Type: "promoter", Span: span}); err != nil {
		t.Fatal(err)
	}

	view := NewView(eng, Options{BasesPerLine: 20, ShowComplement: false})
	screen := newSimScreen(t, 40, 12)
	view.Draw(screen)

	// The annotation track is the line under the sequence.
	track := screenLine(screen, 2)
	if !strings.Contains(track, "promoter") {
		t.Errorf("annotation track = %q, want caption", track)
	}
}

func TestRowCountAndScroll(t *testing.T) {
	eng := newViewEngine(t, strings.Repeat("A", 100))
	view := NewView(eng, Options{BasesPerLine: 20})
	if view.RowCount() != 5 {
		t.Errorf("RowCount() = %d, want 5", view.RowCount())
	}

	view.ScrollBy(2)
	if view.topRow != 2 {
		t.Errorf("topRow = %d after ScrollBy(2), want 2", view.topRow)
	}
	view.ScrollBy(100)
	if view.topRow != 4 {
		t.Errorf("topRow = %d, want clamp at 4", view.topRow)
	}
	view.ScrollBy(-100)
	if view.topRow != 0 {
		t.Errorf("topRow = %d, want clamp at 0", view.topRow)
	}
	view.ScrollTo(55)
	if view.topRow != 2 {
		t.Errorf("topRow = %d after ScrollTo(55), want 2", view.topRow)
	}
}

func TestPaletteStability(t *testing.T) {
	p := NewPalette("default")
	if p.ColorFor("cds") != p.ColorFor("cds") {
		t.Error("same type produced different colors")
	}
	if p.ColorFor("cds") == p.ColorFor("promoter") {
		t.Error("distinct types produced the same color")
	}
}
