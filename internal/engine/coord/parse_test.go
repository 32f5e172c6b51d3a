package coord

import (
	"errors"
	"testing"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		text string
		want Range
	}{
		{"12..47", Range{Start: 12, End: 47}},
		{"(12..47)", Range{Start: 12, End: 47, Orientation: OrientMinus}},
		{"[12..47]", Range{Start: 12, End: 47, Orientation: OrientNone}},
		{"<12..47", Range{Start: 12, End: 47, StartIndefinite: true}},
		{"12..>47", Range{Start: 12, End: 47, EndIndefinite: true}},
		{"12..47>", Range{Start: 12, End: 47, EndIndefinite: true}},
		{"(<3..>9)", Range{Start: 3, End: 9, Orientation: OrientMinus, StartIndefinite: true, EndIndefinite: true}},
		{"231", Range{Start: 231, End: 231, Orientation: OrientNone}},
		{"0..0", Range{Start: 0, End: 0}},
		{"  7..9 ", Range{Start: 7, End: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseRange(tt.text)
			if err != nil {
				t.Fatalf("ParseRange(%q): %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("ParseRange(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseRangeErrors(t *testing.T) {
	bad := []string{
		"",
		"   ",
		"()",
		"(5..9",
		"5..9)",
		"[5..9",
		"5..9]",
		"abc..9",
		"5..xyz",
		"9..5",
		"-3..5",
		"5..",
		"..9",
	}
	for _, text := range bad {
		t.Run(text, func(t *testing.T) {
			_, err := ParseRange(text)
			if err == nil {
				t.Fatalf("ParseRange(%q) should fail", text)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("expected *ParseError, got %T", err)
			}
		})
	}
}

func TestParseSpanMultiRange(t *testing.T) {
	s, err := ParseSpan("1..5 + (10..20) + <30..40")
	if err != nil {
		t.Fatalf("ParseSpan: %v", err)
	}
	if len(s) != 3 {
		t.Fatalf("expected 3 ranges, got %d", len(s))
	}
	if s[1].Orientation != OrientMinus {
		t.Errorf("second range should be minus strand")
	}
	if !s[2].StartIndefinite {
		t.Errorf("third range should have an indefinite start")
	}
}

func TestParseSpanErrors(t *testing.T) {
	bad := []string{"", "1..5 + ", "+ 1..5", "1..5 ++ 6..9"}
	for _, text := range bad {
		if _, err := ParseSpan(text); err == nil {
			t.Errorf("ParseSpan(%q) should fail", text)
		}
	}
}

// Round-trip law: parsing a serialized span reproduces the value, and
// serializing that value reproduces the canonical text.
func TestSpanRoundTrip(t *testing.T) {
	spans := []Span{
		{NewRange(0, 100)},
		{NewRange(1, 5), NewRange(10, 20)},
		{{Start: 12, End: 47, Orientation: OrientMinus}},
		{{Start: 3, End: 9, StartIndefinite: true}, {Start: 20, End: 40, EndIndefinite: true, Orientation: OrientMinus}},
		{NewPoint(20)},
		{{Start: 90, End: 120}, {Start: 0, End: 30}}, // origin wrap, assembly order
		{{Start: 5, End: 5, Orientation: OrientMinus}},
	}
	for _, s := range spans {
		text := s.String()
		parsed, err := ParseSpan(text)
		if err != nil {
			t.Fatalf("ParseSpan(%q): %v", text, err)
		}
		if !parsed.Equal(s) {
			t.Errorf("round trip of %q produced %+v, want %+v", text, parsed, s)
		}
		if parsed.String() != text {
			t.Errorf("re-serialization of %q produced %q", text, parsed.String())
		}
	}
}
