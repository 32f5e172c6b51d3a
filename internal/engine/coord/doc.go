// Package coord provides the coordinate primitives for sequence positions:
// Range, a single contiguous interval with strand orientation and optional
// indefinite boundaries, and Span, an ordered list of ranges locating one
// feature (join semantics, possibly disjoint or origin-wrapping).
//
// # Coordinate Convention
//
// All positions are fenced: 0-based and half-open [Start, End). Position k
// denotes the gap immediately before base index k, so position 0 is the gap
// before the first base and a zero-length range is a valid cursor. This
// differs from the 1-based inclusive convention used by GenBank; format
// converters perform the +1/-1 shift at their own boundary.
//
// # Notation
//
// Ranges serialize to a compact textual notation:
//
//	12..47     plus strand, definite bounds
//	(12..47)   minus strand (reads on the complementary strand)
//	[12..47]   no strand meaning
//	<12..47    indefinite start
//	12..>47    indefinite end
//	5          zero-length point at position 5
//
// A span joins fragment tokens with " + ", listed in biological assembly
// order (5'->3'), which is not necessarily ascending coordinate order for
// features that wrap the origin of a circular sequence.
//
// ParseSpan and Span.String round-trip exactly for every span the editor
// engine can produce.
package coord
