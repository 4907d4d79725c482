package bidi

import "github.com/textkit/textkit/internal/cluster"

// VisualCursor is the result of a moveVisually step: the new logical
// position, plus the level of the span the caret now sits in (recorded so
// a following step starts from the correct side, per spec.md §4.5 point 6).
type VisualCursor struct {
	Pos   int
	Level int
}

// MoveVisually locates the span containing pos, advances by one grapheme
// cluster within it, and crosses span boundaries by jumping to the
// visually-next span's appropriate side (spec.md §4.5 point 6).
func MoveVisually(line string, spans []Span, base Direction, pos int, forward bool) VisualCursor {
	idx := spanIndexAt(spans, pos)
	if idx < 0 {
		return VisualCursor{Pos: pos, Level: 0}
	}
	span := spans[idx]

	visualForward := forward
	if span.Level%2 == 1 {
		visualForward = !forward
	}

	next, ok := cluster.FindClusterBreak(line, pos, visualForward)
	if ok && next >= span.From && next <= span.To {
		return VisualCursor{Pos: next, Level: span.Level}
	}

	nextIdx := idx + 1
	if !forward {
		nextIdx = idx - 1
	}
	if nextIdx < 0 || nextIdx >= len(spans) {
		return VisualCursor{Pos: pos, Level: span.Level}
	}
	target := spans[nextIdx]
	landingPos := target.From
	if target.Level%2 == 1 {
		landingPos = target.To
	}
	return VisualCursor{Pos: landingPos, Level: target.Level}
}

func spanIndexAt(spans []Span, pos int) int {
	for i, s := range spans {
		if pos >= s.From && pos < s.To {
			return i
		}
	}
	if len(spans) > 0 && pos == spans[len(spans)-1].To {
		return len(spans) - 1
	}
	return -1
}
