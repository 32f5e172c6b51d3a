package coord

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError describes why a span or range token could not be parsed.
// No partial value is ever returned alongside a ParseError.
type ParseError struct {
	Text   string // the offending token or input
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse span %q: %s", e.Text, e.Reason)
}

func parseErr(text, format string, args ...any) *ParseError {
	return &ParseError{Text: text, Reason: fmt.Sprintf(format, args...)}
}

// ParseSpan parses span notation: fragment tokens joined by "+".
// See the package documentation for the notation grammar.
func ParseSpan(text string) (Span, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, parseErr(text, "empty span")
	}

	tokens := strings.Split(trimmed, "+")
	span := make(Span, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, parseErr(text, "empty fragment token")
		}
		r, err := ParseRange(tok)
		if err != nil {
			return nil, err
		}
		span = append(span, r)
	}
	return span, nil
}

// ParseRange parses a single fragment token into a Range.
// A bare integer is a zero-length, unoriented point at that position.
func ParseRange(text string) (Range, error) {
	tok := strings.TrimSpace(text)
	if tok == "" {
		return Range{}, parseErr(text, "empty range")
	}

	orientation := OrientPlus
	switch {
	case strings.HasPrefix(tok, "("):
		if !strings.HasSuffix(tok, ")") {
			return Range{}, parseErr(text, "unmatched parenthesis")
		}
		orientation = OrientMinus
		tok = tok[1 : len(tok)-1]
	case strings.HasPrefix(tok, "["):
		if !strings.HasSuffix(tok, "]") {
			return Range{}, parseErr(text, "unmatched bracket")
		}
		orientation = OrientNone
		tok = tok[1 : len(tok)-1]
	case strings.HasSuffix(tok, ")"):
		return Range{}, parseErr(text, "unmatched parenthesis")
	case strings.HasSuffix(tok, "]"):
		return Range{}, parseErr(text, "unmatched bracket")
	}
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return Range{}, parseErr(text, "empty range")
	}

	startPart, endPart, ranged := strings.Cut(tok, "..")
	if !ranged {
		// Bare integer: a point. Wrappers still set orientation.
		pos, err := parseBound(text, startPart)
		if err != nil {
			return Range{}, err
		}
		o := orientation
		if o == OrientPlus {
			o = OrientNone
		}
		return Range{Start: pos, End: pos, Orientation: o}, nil
	}

	r := Range{Orientation: orientation}

	startPart = strings.TrimSpace(startPart)
	if strings.HasPrefix(startPart, "<") {
		r.StartIndefinite = true
		startPart = startPart[1:]
	}

	endPart = strings.TrimSpace(endPart)
	if strings.HasPrefix(endPart, ">") {
		r.EndIndefinite = true
		endPart = endPart[1:]
	} else if strings.HasSuffix(endPart, ">") {
		// Tolerated variant with the marker trailing the number.
		r.EndIndefinite = true
		endPart = endPart[:len(endPart)-1]
	}

	var err error
	if r.Start, err = parseBound(text, startPart); err != nil {
		return Range{}, err
	}
	if r.End, err = parseBound(text, endPart); err != nil {
		return Range{}, err
	}
	if r.End < r.Start {
		return Range{}, parseErr(text, "end %d before start %d", r.End, r.Start)
	}
	return r, nil
}

func parseBound(text, part string) (int, error) {
	part = strings.TrimSpace(part)
	n, err := strconv.Atoi(part)
	if err != nil {
		return 0, parseErr(text, "non-numeric bound %q", part)
	}
	if n < 0 {
		return 0, parseErr(text, "negative bound %d", n)
	}
	return n, nil
}
