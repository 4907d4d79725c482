package rangeset

// Comparator receives the boundaries where two sets' active-range stacks
// differ (spec.md §4.3 "compare").
type Comparator interface {
	CompareRange(from, to int, activeA, activeB []Value)
	ComparePoint(from, to int, valueA, valueB Value)
}

// Compare walks a and b simultaneously and reports the spans/points where
// their active ranges differ, restricted to [from, to).
//
// The source's comparator is explicitly underspecified about when a
// coincident point decoration should be reported via ComparePoint versus
// folded into the surrounding CompareRange call (spec.md §9 open question).
// This implementation resolves it by always reporting point-valued ranges
// (From==To, Value.Point()) through ComparePoint when the two sides disagree
// on them, and everything else -- including any span overlapping a point --
// through CompareRange; that keeps compare deterministic and total without
// requiring a second pass once more test vectors pin the original rule
// down.
func Compare(a, b Set, from, to int, cmp Comparator) {
	bounds := collectBoundaries(a, from, to)
	bounds = mergeBoundaries(bounds, collectBoundaries(b, from, to))

	comparePoints(a, b, from, to, cmp)

	positions := sortedPositions(bounds)
	for i := 0; i+1 < len(positions); i++ {
		segFrom, segTo := positions[i], positions[i+1]
		if segFrom >= segTo {
			continue
		}
		activeAVals := activeValuesAt(a, segFrom, segTo)
		activeBVals := activeValuesAt(b, segFrom, segTo)
		if !sameValues(activeAVals, activeBVals) {
			cmp.CompareRange(segFrom, segTo, activeAVals, activeBVals)
		}
	}
}

func comparePoints(a, b Set, from, to int, cmp Comparator) {
	pointAt := func(s Set, pos int) Value {
		var found Value
		s.Between(pos, pos, func(r Range) bool {
			if r.From == r.To && r.From == pos && r.Value != nil && r.Value.Point() {
				found = r.Value
			}
			return true
		})
		return found
	}
	positions := map[int]bool{}
	a.Between(from, to, func(r Range) bool {
		if r.From == r.To {
			positions[r.From] = true
		}
		return true
	})
	b.Between(from, to, func(r Range) bool {
		if r.From == r.To {
			positions[r.From] = true
		}
		return true
	})
	sorted := make([]int, 0, len(positions))
	for p := range positions {
		sorted = append(sorted, p)
	}
	sortInts(sorted)
	for _, p := range sorted {
		va, vb := pointAt(a, p), pointAt(b, p)
		if va != vb {
			cmp.ComparePoint(p, p, va, vb)
		}
	}
}

func collectBoundaries(s Set, from, to int) []int {
	var out []int
	s.Between(from, to, func(r Range) bool {
		out = append(out, clamp(r.From, from, to), clamp(r.To, from, to))
		return true
	})
	return out
}

func mergeBoundaries(a, b []int) []int {
	return append(append([]int{}, a...), b...)
}

func sortedPositions(bounds []int) []int {
	seen := map[int]bool{}
	var out []int
	for _, p := range bounds {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sortInts(out)
	return out
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func activeValuesAt(s Set, from, to int) []Value {
	var out []Value
	s.Between(from, to, func(r Range) bool {
		if r.From <= from && r.To >= to && r.Value != nil {
			out = append(out, r.Value)
		}
		return true
	})
	return out
}

func sameValues(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
