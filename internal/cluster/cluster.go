// Package cluster implements grapheme-cluster and word-boundary walking for
// the core (spec.md §4.8), grounded on github.com/rivo/uniseg for grapheme
// segmentation and github.com/clipperhouse/uax29/v2/words for word
// segmentation.
package cluster

import "github.com/rivo/uniseg"

// boundariesUTF16 returns every grapheme-cluster boundary in s, expressed
// as UTF-16 code-unit offsets (including 0 and len(s) in UTF-16 units),
// so callers working in the core's UTF-16 position space can binary-search
// it directly.
func boundariesUTF16(s string) []int {
	bounds := []int{0}
	units := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		units += utf16Units(cluster)
		bounds = append(bounds, units)
	}
	return bounds
}

// utf16Units counts the UTF-16 code units a string would occupy (astral
// runes count as 2), matching internal/text's encoding.
func utf16Units(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// FindClusterBreak walks from pos by one grapheme cluster, forward or
// backward, returning the new position. It reports false if pos is already
// at the relevant end of the string (spec.md §4.8).
func FindClusterBreak(text string, pos int, forward bool) (int, bool) {
	bounds := boundariesUTF16(text)
	idx := indexOf(bounds, pos)
	if idx < 0 {
		return pos, false
	}
	if forward {
		if idx >= len(bounds)-1 {
			return pos, false
		}
		return bounds[idx+1], true
	}
	if idx <= 0 {
		return pos, false
	}
	return bounds[idx-1], true
}

func indexOf(bounds []int, pos int) int {
	for i, b := range bounds {
		if b == pos {
			return i
		}
	}
	return -1
}
