package rangeset

import "sort"

// taggedRange carries the index of the originating set, used by join to
// break (from, startSide) ties by set precedence (earlier sets first).
type taggedRange struct {
	Range
	setIdx int
}

// Join merges multiple sets into one ordered stream, interleaving by
// (from, startSide) and, for ties, by the order the sets were passed in
// (spec.md §4.3 "join" / "facet precedence").
func Join(sets ...Set) []Range {
	var tagged []taggedRange
	for i, s := range sets {
		for _, r := range s.All() {
			tagged = append(tagged, taggedRange{Range: r, setIdx: i})
		}
	}
	sort.SliceStable(tagged, func(i, j int) bool {
		a, b := tagged[i], tagged[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.startSide() != b.startSide() {
			return a.startSide() < b.startSide()
		}
		return a.setIdx < b.setIdx
	})
	out := make([]Range, len(tagged))
	for i, t := range tagged {
		out[i] = t.Range
	}
	return out
}
