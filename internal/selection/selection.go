// Package selection implements the multi-range cursor/selection model from
// spec.md §4.4: sorted, non-overlapping SelectionRanges with a designated
// main range, mapped atomically through a ChangeSet.
package selection

import (
	"errors"
	"sort"

	"github.com/textkit/textkit/internal/change"
)

// ErrOverlappingRanges is raised by Create when the given ranges overlap
// after sorting.
var ErrOverlappingRanges = errors.New("selection: ranges overlap")

// Range is one anchor/head pair, plus the bookkeeping CodeMirror-style
// editors need for sticky caret behavior across reflow (spec.md §4.4).
type Range struct {
	Anchor, Head int
	Assoc        int // -1, 0, or +1
	GoalColumn   *int
	BidiLevel    *int
}

// From returns min(Anchor, Head).
func (r Range) From() int {
	if r.Anchor < r.Head {
		return r.Anchor
	}
	return r.Head
}

// To returns max(Anchor, Head).
func (r Range) To() int {
	if r.Anchor > r.Head {
		return r.Anchor
	}
	return r.Head
}

// Empty reports whether the range is a plain cursor (Anchor == Head).
func (r Range) Empty() bool { return r.Anchor == r.Head }

// Eq compares two ranges including association and goal column.
func (r Range) Eq(other Range) bool {
	if r.Anchor != other.Anchor || r.Head != other.Head || r.Assoc != other.Assoc {
		return false
	}
	return intPtrEq(r.GoalColumn, other.GoalColumn) && intPtrEq(r.BidiLevel, other.BidiLevel)
}

func intPtrEq(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Cursor builds a zero-width Range at pos.
func Cursor(pos, assoc int, goalColumn ...int) Range {
	r := Range{Anchor: pos, Head: pos, Assoc: assoc}
	if len(goalColumn) > 0 {
		gc := goalColumn[0]
		r.GoalColumn = &gc
	}
	return r
}

// RangeBetween builds a Range from anchor to head (not required to be
// ordered; From/To derive the ordering).
func RangeBetween(anchor, head int) Range {
	return Range{Anchor: anchor, Head: head}
}

// Selection is an ordered, non-overlapping set of Ranges with one
// designated as Main.
type Selection struct {
	Ranges []Range
	Main   int
}

// Create sorts ranges by From, asserts non-overlap, and clamps mainIndex
// into bounds (spec.md §4.4).
func Create(ranges []Range, mainIndex int) (Selection, error) {
	if len(ranges) == 0 {
		return Selection{}, errors.New("selection: at least one range is required")
	}
	rs := make([]Range, len(ranges))
	copy(rs, ranges)
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].From() < rs[j].From() })
	for i := 1; i < len(rs); i++ {
		if rs[i].From() < rs[i-1].To() {
			return Selection{}, ErrOverlappingRanges
		}
	}
	if mainIndex < 0 {
		mainIndex = 0
	}
	if mainIndex >= len(rs) {
		mainIndex = len(rs) - 1
	}
	return Selection{Ranges: rs, Main: mainIndex}, nil
}

// Single builds a Selection containing exactly one Range.
func Single(r Range) Selection {
	sel, _ := Create([]Range{r}, 0)
	return sel
}

// MainRange returns the designated main range.
func (s Selection) MainRange() Range { return s.Ranges[s.Main] }

// Map returns a new Selection with every anchor/head mapped through
// changes, preserving Main, GoalColumn and BidiLevel (the latter two are
// not position-dependent so they carry over unchanged -- a reflow that
// invalidates them is expected to clear them explicitly, not Map).
func (s Selection) Map(changes change.ChangeSet) Selection {
	mapped := make([]Range, len(s.Ranges))
	for i, r := range s.Ranges {
		anchorAssoc, headAssoc := -1, 1
		if r.Assoc != 0 {
			anchorAssoc, headAssoc = r.Assoc, r.Assoc
		}
		na, _ := changes.MapPos(r.Anchor, anchorAssoc, change.ModeSimple)
		nh, _ := changes.MapPos(r.Head, headAssoc, change.ModeSimple)
		mapped[i] = Range{Anchor: na, Head: nh, Assoc: r.Assoc, GoalColumn: r.GoalColumn, BidiLevel: r.BidiLevel}
	}
	sel, err := Create(mapped, s.Main)
	if err != nil {
		// A mapped selection can't normally collide (changes only ever
		// grow or shrink gaps between disjoint ranges); fall back to the
		// unsorted mapped set rather than losing ranges.
		return Selection{Ranges: mapped, Main: s.Main}
	}
	return sel
}

// Eq compares two selections range-by-range, including Main.
func (s Selection) Eq(other Selection) bool {
	if s.Main != other.Main || len(s.Ranges) != len(other.Ranges) {
		return false
	}
	for i := range s.Ranges {
		if !s.Ranges[i].Eq(other.Ranges[i]) {
			return false
		}
	}
	return true
}
