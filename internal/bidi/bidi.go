// Package bidi computes the bidirectional-text span partition and
// visual-motion rules described in spec.md §4.5, built on
// golang.org/x/text/unicode/bidi for character classification and run
// resolution (the weak/neutral W1-W7/N1-N2 rules spec.md names are exactly
// what that package's algorithm already implements internally).
package bidi

import (
	gobidi "golang.org/x/text/unicode/bidi"
)

// Direction is the paragraph base direction.
type Direction int

const (
	LTR Direction = iota
	RTL
)

// Span is one maximal run of a single bidi level within a line
// (spec.md "BidiSpan").
type Span struct {
	From, To int // UTF-16 code-unit offsets
	Level    int
}

// rtlFastPathRanges are the script blocks spec.md's fast path checks for:
// Hebrew, Arabic, Syriac, Thaana, Arabic Presentation Forms.
var rtlFastPathRanges = [][2]rune{
	{0x0590, 0x05FF}, // Hebrew
	{0x0600, 0x06FF}, // Arabic
	{0x0700, 0x074F}, // Syriac
	{0x0780, 0x07BF}, // Thaana
	{0xFB1D, 0xFB4F}, // Hebrew presentation forms
	{0xFB50, 0xFDFF}, // Arabic presentation forms A
	{0xFE70, 0xFEFF}, // Arabic presentation forms B
}

func hasRTLCandidate(line string) bool {
	for _, r := range line {
		for _, rng := range rtlFastPathRanges {
			if r >= rng[0] && r <= rng[1] {
				return true
			}
		}
	}
	return false
}

// Order computes the BidiSpan partition of line under the given base
// direction (spec.md §4.5).
func Order(line string, base Direction) []Span {
	if line == "" {
		return []Span{{From: 0, To: 0, Level: 0}}
	}
	if base == LTR && !hasRTLCandidate(line) {
		return []Span{{From: 0, To: utf16Units(line), Level: 0}}
	}

	var p gobidi.Paragraph
	opt := gobidi.DefaultDirection(gobidi.LeftToRight)
	if base == RTL {
		opt = gobidi.DefaultDirection(gobidi.RightToLeft)
	}
	if _, err := p.SetString(line, opt); err != nil {
		return []Span{{From: 0, To: utf16Units(line), Level: 0}}
	}
	ordering, err := p.Order()
	if err != nil {
		return []Span{{From: 0, To: utf16Units(line), Level: 0}}
	}

	runes := []rune(line)
	runeToUnit := make([]int, len(runes)+1)
	units := 0
	for i, r := range runes {
		runeToUnit[i] = units
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
	}
	runeToUnit[len(runes)] = units

	spans := make([]Span, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		start, end := run.Pos()
		level := 0
		runDir := run.Direction()
		if (base == LTR && runDir == gobidi.RightToLeft) || (base == RTL && runDir == gobidi.LeftToRight) {
			level = 1
		}
		spans = append(spans, Span{From: runeToUnit[start], To: runeToUnit[end+1], Level: level})
	}
	return mergeAdjacentSameLevel(spans)
}

func mergeAdjacentSameLevel(spans []Span) []Span {
	if len(spans) == 0 {
		return spans
	}
	out := []Span{spans[0]}
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if last.Level == s.Level && last.To == s.From {
			last.To = s.To
			continue
		}
		out = append(out, s)
	}
	return out
}

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
