// Package rangeset implements the ordered, tagged range container described
// in spec.md §4.3: ranges bulk-map through a ChangeSet, support layered
// joins, and flatten into active-span iteration for rendering/decoration
// consumers.
package rangeset

import (
	"errors"
	"sort"

	"github.com/textkit/textkit/internal/change"
	"github.com/textkit/textkit/internal/coreconfig"
)

// ErrOutOfRange is raised when a range's bounds fall outside the document
// it is declared against.
var ErrOutOfRange = errors.New("rangeset: range outside document bounds")

// MapMode selects how a range's endpoints are tracked across a ChangeSet,
// mirroring change.MapMode (spec.md §4.3 "side semantics").
type MapMode int

const (
	ModeSimple MapMode = iota
	ModeTrackDel
	ModeTrackBefore
	ModeTrackAfter
)

func (m MapMode) toChangeMode() change.MapMode {
	switch m {
	case ModeTrackDel:
		return change.ModeTrackDel
	case ModeTrackBefore:
		return change.ModeTrackBefore
	case ModeTrackAfter:
		return change.ModeTrackAfter
	default:
		return change.ModeSimple
	}
}

// Value is the payload attached to a Range: its side-disambiguation and
// mapping behavior (spec.md "side semantics").
type Value interface {
	StartSide() int
	EndSide() int
	MapMode() MapMode
	Point() bool
}

// Range is one tagged span (or, when From==To and Value.Point(), a zero-width
// marker) over a shared document.
type Range struct {
	From, To int
	Value    Value
}

func (r Range) startSide() int {
	if r.Value == nil {
		return 0
	}
	return r.Value.StartSide()
}

// chunk holds up to coreconfig.RangeSetChunkSize ranges in (from, startSide)
// order, per spec.md §4.3.
type chunk struct {
	ranges []Range
}

// Set is an ordered collection of Ranges over a document of length Length.
// The zero value is not valid; use Of or Empty.
type Set struct {
	length   int
	chunks   []chunk
	maxPoint int
	cfg      coreconfig.Config
}

// Empty returns a Set with no ranges over a document of the given length.
func Empty(length int) Set {
	return Set{length: length, cfg: coreconfig.Default()}
}

// Of builds a Set from ranges over a document of the given length. When
// sorted is false, the ranges are taken as already ordered by
// (From, startSide); when true, Of sorts them itself.
func Of(ranges []Range, length int, sorted bool) (Set, error) {
	rs := make([]Range, len(ranges))
	copy(rs, ranges)
	for _, r := range rs {
		if r.From < 0 || r.To > length || r.From > r.To {
			return Set{}, ErrOutOfRange
		}
	}
	if sorted {
		sortRanges(rs)
	}
	cfg := coreconfig.Default()
	return Set{length: length, chunks: chunkify(rs, cfg), maxPoint: maxPointLen(rs), cfg: cfg}, nil
}

func sortRanges(rs []Range) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].From != rs[j].From {
			return rs[i].From < rs[j].From
		}
		return rs[i].startSide() < rs[j].startSide()
	})
}

func chunkify(rs []Range, cfg coreconfig.Config) []chunk {
	size := cfg.RangeSetChunkSize
	if size <= 0 {
		size = coreconfig.RangeSetChunkSize
	}
	var chunks []chunk
	for i := 0; i < len(rs); i += size {
		end := i + size
		if end > len(rs) {
			end = len(rs)
		}
		seg := make([]Range, end-i)
		copy(seg, rs[i:end])
		chunks = append(chunks, chunk{ranges: seg})
	}
	return chunks
}

func maxPointLen(rs []Range) int {
	max := 0
	for _, r := range rs {
		if r.Value != nil && r.Value.Point() {
			if l := r.To - r.From; l > max {
				max = l
			}
		}
	}
	return max
}

// Length returns the document length this set is declared against.
func (s Set) Length() int { return s.length }

// Size returns the number of ranges in the set.
func (s Set) Size() int {
	n := 0
	for _, c := range s.chunks {
		n += len(c.ranges)
	}
	return n
}

// All returns every range in ascending (From, startSide) order.
func (s Set) All() []Range {
	var out []Range
	for _, c := range s.chunks {
		out = append(out, c.ranges...)
	}
	return out
}
