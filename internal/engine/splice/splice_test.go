package splice

import (
	"testing"

	"github.com/dshills/seqstorm/internal/engine/coord"
)

func TestSpliceDelta(t *testing.T) {
	if Insert(10, 4).Delta() != 4 {
		t.Error("insert delta should equal inserted length")
	}
	if Delete(5, 12).Delta() != -7 {
		t.Error("delete delta should be negative removed length")
	}
	if Replace(20, 30, 15).Delta() != 5 {
		t.Error("replace delta should be inserted minus removed")
	}
}

func TestSpliceValidate(t *testing.T) {
	tests := []struct {
		name   string
		sp     Splice
		seqLen int
		ok     bool
	}{
		{"insert at end", Insert(100, 3), 100, true},
		{"insert beyond end", Insert(101, 3), 100, false},
		{"negative position", Splice{Pos: -1, Inserted: 3}, 100, false},
		{"delete past end", Delete(95, 105), 100, false},
		{"delete inside", Delete(10, 20), 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sp.Validate(tt.seqLen)
			if tt.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestAdjustRangeInsert(t *testing.T) {
	tests := []struct {
		name string
		r    coord.Range
		sp   Splice
		want coord.Range
	}{
		// Scenario A: insert at position 231 into 230..247 grows the end.
		{"inside", coord.NewRange(230, 247), Insert(231, 4), coord.NewRange(230, 251)},
		// Scenario B: insert strictly before shifts both bounds.
		{"before", coord.NewRange(100, 150), Insert(99, 3), coord.NewRange(103, 153)},
		// Boundary asymmetry: insert at the start joins the feature...
		{"at start", coord.NewRange(100, 150), Insert(100, 3), coord.NewRange(100, 153)},
		// ...but insert at the end stays outside it.
		{"at end", coord.NewRange(100, 150), Insert(150, 3), coord.NewRange(100, 150)},
		{"after", coord.NewRange(100, 150), Insert(151, 3), coord.NewRange(100, 150)},
		{"at cursor point", coord.NewPoint(50), Insert(50, 3), coord.NewPoint(50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, collapsed := AdjustRange(tt.r, tt.sp)
			if collapsed {
				t.Fatal("insert must never collapse a range")
			}
			if got != tt.want {
				t.Errorf("AdjustRange = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdjustRangeDelete(t *testing.T) {
	tests := []struct {
		name     string
		r        coord.Range
		sp       Splice
		want     coord.Range
		collapse bool
	}{
		{"before edit untouched", coord.NewRange(0, 5), Delete(10, 20), coord.NewRange(0, 5), false},
		{"after edit shifts", coord.NewRange(30, 40), Delete(10, 20), coord.NewRange(20, 30), false},
		{"contained collapses", coord.NewRange(12, 18), Delete(10, 20), coord.NewRange(10, 10), true},
		{"left overlap truncates end", coord.NewRange(5, 15), Delete(10, 20), coord.NewRange(5, 10), false},
		{"right overlap moves start", coord.NewRange(15, 30), Delete(10, 20), coord.NewRange(10, 20), false},
		{"edit inside shrinks end", coord.NewRange(5, 30), Delete(10, 20), coord.NewRange(5, 20), false},
		{"exact match collapses", coord.NewRange(10, 20), Delete(10, 20), coord.NewRange(10, 10), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, collapsed := AdjustRange(tt.r, tt.sp)
			if collapsed != tt.collapse {
				t.Fatalf("collapsed = %v, want %v", collapsed, tt.collapse)
			}
			if got.Start != tt.want.Start || got.End != tt.want.End {
				t.Errorf("AdjustRange = [%d,%d), want [%d,%d)", got.Start, got.End, tt.want.Start, tt.want.End)
			}
		})
	}
}

func TestAdjustRangeReplace(t *testing.T) {
	// Scenario C: replace 20..30 inside 10..50 with 15 bases (net +10).
	got, collapsed := AdjustRange(coord.NewRange(10, 50), Replace(20, 30, 15))
	if collapsed {
		t.Fatal("edit inside range must not collapse it")
	}
	if got != coord.NewRange(10, 60) {
		t.Errorf("expected 10..60, got %v", got)
	}

	// Scenario D: annotation fully contained in the replaced region
	// collapses to a point at the edit start.
	got, collapsed = AdjustRange(coord.NewRange(25, 35), Replace(20, 40, 3))
	if !collapsed {
		t.Fatal("contained range should collapse")
	}
	if got.Start != 23 || got.End != 23 {
		t.Errorf("collapsed range should land at 23 (pos+inserted), got %v", got)
	}

	// Replace landing position: a range after the edit shifts by delta.
	got, _ = AdjustRange(coord.NewRange(50, 60), Replace(20, 40, 5))
	if got != coord.NewRange(35, 45) {
		t.Errorf("expected 35..45, got %v", got)
	}
}

func TestAdjustRangePreservesFlags(t *testing.T) {
	r := coord.Range{Start: 30, End: 40, Orientation: coord.OrientMinus, StartIndefinite: true}
	got, _ := AdjustRange(r, Delete(10, 20))
	if got.Orientation != coord.OrientMinus || !got.StartIndefinite {
		t.Error("adjustment must preserve orientation and boundary flags")
	}
}

// Deleting a region and re-inserting the same number of bases at the same
// position restores every unrelated range to its pre-edit coordinates.
func TestDeleteReinsertRestores(t *testing.T) {
	ranges := []coord.Range{
		coord.NewRange(0, 8),
		coord.NewRange(40, 55),
		{Start: 70, End: 90, Orientation: coord.OrientMinus},
	}
	del := Delete(20, 30)
	ins := Insert(20, 10)
	for _, r := range ranges {
		afterDel, collapsed := AdjustRange(r, del)
		if collapsed {
			t.Fatalf("range %v should not collapse", r)
		}
		restored, _ := AdjustRange(afterDel, ins)
		if restored != r {
			t.Errorf("range %v not restored: got %v", r, restored)
		}
	}
}

func TestAdjustSpanDropsCollapsedRanges(t *testing.T) {
	span := coord.Span{coord.NewRange(1, 5), coord.NewRange(10, 20)}
	// Remove the first range entirely.
	got, degenerate := AdjustSpan(span, Delete(1, 5))
	if degenerate {
		t.Fatal("span with a surviving range is not degenerate")
	}
	want := coord.Span{coord.NewRange(6, 16)}
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestAdjustSpanDegenerates(t *testing.T) {
	span := coord.Span{coord.NewRange(10, 15), coord.NewRange(20, 25)}
	got, degenerate := AdjustSpan(span, Delete(5, 30))
	if !degenerate {
		t.Fatal("fully deleted span should degenerate, not disappear")
	}
	if len(got) != 1 || !got[0].IsPoint() || got[0].Start != 5 {
		t.Errorf("expected single point at 5, got %v", got)
	}
}

// Deleting the multi-range selection 2..7 + 15..24 from the span
// 1..5 + 10..20, processing splices from highest position to lowest.
func TestMultiRangeDelete(t *testing.T) {
	span := coord.Span{coord.NewRange(1, 5), coord.NewRange(10, 20)}
	splices := DeleteRanges([]coord.Range{coord.NewRange(2, 7), coord.NewRange(15, 24)})

	if len(splices) != 2 || splices[0].Pos != 15 {
		t.Fatalf("splices must be ordered high to low, got %v", splices)
	}

	for _, sp := range splices {
		span, _ = AdjustSpan(span, sp)
	}
	want := coord.Span{coord.NewRange(1, 2), coord.NewRange(5, 10)}
	if !span.Equal(want) {
		t.Errorf("expected %v, got %v", want, span)
	}
}

// Deleting [2,7) first would shift [15,24) before it was applied; the
// engine therefore always applies the highest splice first.
func TestMultiRangeDeleteWrongOrderDiffers(t *testing.T) {
	span := coord.Span{coord.NewRange(1, 5), coord.NewRange(10, 20)}
	low := Delete(2, 7)
	high := Delete(15, 24)

	span, _ = AdjustSpan(span, low)
	span, _ = AdjustSpan(span, high)
	want := coord.Span{coord.NewRange(1, 2), coord.NewRange(5, 10)}
	if span.Equal(want) {
		t.Error("low-first application should not match the high-first fixture")
	}
}

// The outcome of a multi-range delete does not depend on the order the
// selection ranges were given in; DeleteRanges normalizes to high-to-low.
func TestMultiRangeDeleteOrderIndependent(t *testing.T) {
	apply := func(ranges []coord.Range) coord.Span {
		span := coord.Span{coord.NewRange(1, 5), coord.NewRange(10, 20)}
		for _, sp := range DeleteRanges(ranges) {
			span, _ = AdjustSpan(span, sp)
		}
		return span
	}

	a := apply([]coord.Range{coord.NewRange(2, 7), coord.NewRange(15, 24)})
	b := apply([]coord.Range{coord.NewRange(15, 24), coord.NewRange(2, 7)})
	if !a.Equal(b) {
		t.Errorf("order dependence: %v vs %v", a, b)
	}
	want := coord.Span{coord.NewRange(1, 2), coord.NewRange(5, 10)}
	if !a.Equal(want) {
		t.Errorf("expected %v, got %v", want, a)
	}
}

func TestAdjustRanges(t *testing.T) {
	ranges := []coord.Range{coord.NewRange(0, 5), coord.NewRange(12, 18), coord.NewRange(30, 40)}
	got := AdjustRanges(ranges, Delete(10, 20))
	want := []coord.Range{coord.NewRange(0, 5), coord.NewRange(20, 30)}
	if len(got) != len(want) {
		t.Fatalf("expected %d ranges, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("range %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}
