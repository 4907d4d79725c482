package cluster

import "github.com/clipperhouse/uax29/v2/words"

// WordTokens splits text into UAX#29 word segments (spec.md §4.8's
// "word-motion" concept, at the token granularity uax29 defines -- distinct
// from the narrower per-cluster Category classification ByGroup uses for
// single-step motion). Editors that implement "move by word" /
// "select word at cursor" commands on top of the core can use this
// directly instead of re-deriving segment boundaries from Category.
func WordTokens(text string) []string {
	var out []string
	seg := words.FromString(text)
	for seg.Next() {
		out = append(out, seg.Value())
	}
	return out
}

// WordBoundariesUTF16 returns the UTF-16 code-unit offsets at which
// uax29 word segments begin and end.
func WordBoundariesUTF16(text string) []int {
	bounds := []int{0}
	units := 0
	seg := words.FromString(text)
	for seg.Next() {
		units += utf16Units(seg.Value())
		bounds = append(bounds, units)
	}
	return bounds
}
