package text

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOfEmptyInput(t *testing.T) {
	t.Parallel()
	_, err := Of(nil)
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	cases := [][]string{
		{""},
		{"one"},
		{"one", "two", "three"},
		{"a", "", "b", "", "", "c"},
	}
	for _, lines := range cases {
		doc, err := Of(lines)
		require.NoError(t, err)
		require.Equal(t, lines, doc.ToJSON())
	}
}

func TestLineAndLineAt(t *testing.T) {
	t.Parallel()
	doc := MustOf([]string{"one", "two", "three"})
	l1, err := doc.Line(1)
	require.NoError(t, err)
	require.Equal(t, Line{From: 0, To: 3, Number: 1, Text: "one"}, l1)

	l2, err := doc.Line(2)
	require.NoError(t, err)
	require.Equal(t, Line{From: 4, To: 7, Number: 2, Text: "two"}, l2)

	l3, err := doc.Line(3)
	require.NoError(t, err)
	require.Equal(t, Line{From: 8, To: 13, Number: 3, Text: "three"}, l3)

	at, err := doc.LineAt(5)
	require.NoError(t, err)
	require.Equal(t, 2, at.Number)

	_, err = doc.Line(0)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = doc.Line(4)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = doc.LineAt(-1)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = doc.LineAt(doc.Length() + 1)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestSliceString(t *testing.T) {
	t.Parallel()
	doc := MustOf([]string{"one", "two", "three"})
	s, err := doc.SliceString(2, 5)
	require.NoError(t, err)
	require.Equal(t, "e\nt", s)
}

// S1 from spec.md §8.
func TestReplaceScenarioS1(t *testing.T) {
	t.Parallel()
	doc := MustOf([]string{"one", "two", "three"})
	rep, err := doc.Replace(2, 5, MustOf([]string{"foo", "bar"}))
	require.NoError(t, err)
	require.Equal(t, 3, rep.Lines())
	s, err := rep.SliceString(0, rep.Length())
	require.NoError(t, err)
	require.Equal(t, "onfoo\nbarwo\nthree", s)
}

func TestAppend(t *testing.T) {
	t.Parallel()
	a := MustOf([]string{"foo"})
	b := MustOf([]string{"bar", "baz"})
	c, err := a.Append(b)
	require.NoError(t, err)
	require.Equal(t, []string{"foobar", "baz"}, c.ToJSON())
}

func TestEqIgnoresTreeShape(t *testing.T) {
	t.Parallel()
	// Force two different tree shapes for the same content by going
	// through different Replace histories.
	a := MustOf([]string{"a", "b", "c", "d", "e"})
	b, err := MustOf([]string{"a", "X", "c", "d", "e"}).Replace(2, 3, MustOf([]string{"b"}))
	require.NoError(t, err)
	require.True(t, a.Eq(b))

	c := MustOf([]string{"a", "b", "c", "d", "zzz"})
	require.False(t, a.Eq(c))
}

func TestBalanceDepthBound(t *testing.T) {
	t.Parallel()
	lines := make([]string, 5000)
	for i := range lines {
		lines[i] = "line"
	}
	doc := MustOf(lines)
	maxDepth := bits.Len(uint(doc.Lines())) + 2
	require.LessOrEqual(t, doc.Depth(), maxDepth)

	// Apply a sequence of replaces and recheck the bound each time
	// (spec.md §8 property 2).
	for i := 0; i < 50; i++ {
		var err error
		doc, err = doc.Replace(10, 14, MustOf([]string{"edited"}))
		require.NoError(t, err)
		maxDepth = bits.Len(uint(doc.Lines())) + 2
		require.LessOrEqual(t, doc.Depth(), maxDepth)
	}
}

func TestIterForwardBackwardSymmetric(t *testing.T) {
	t.Parallel()
	doc := MustOf([]string{"aa", "bb", "cc"})
	var fwd []string
	cur := doc.Iter(1)
	for cur.Next() {
		if cur.LineBreak() {
			fwd = append(fwd, "\n")
		} else {
			fwd = append(fwd, cur.Value())
		}
	}
	var bwd []string
	rcur := doc.Iter(-1)
	for rcur.Next() {
		if rcur.LineBreak() {
			bwd = append(bwd, "\n")
		} else {
			bwd = append(bwd, rcur.Value())
		}
	}
	require.Len(t, bwd, len(fwd))
	for i := range fwd {
		require.Equal(t, fwd[i], bwd[len(bwd)-1-i])
	}
}

func TestIterLines(t *testing.T) {
	t.Parallel()
	doc := MustOf([]string{"one", "two", "three"})
	cur, err := doc.IterLines(2, 3)
	require.NoError(t, err)
	var got []string
	for cur.Next() {
		got = append(got, cur.Value())
	}
	require.Equal(t, []string{"two", "three"}, got)
}

func TestOutOfRangeSlice(t *testing.T) {
	t.Parallel()
	doc := MustOf([]string{"abc"})
	_, err := doc.Slice(-1, 2)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = doc.Slice(0, doc.Length()+1)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestAstralPlaneUTF16Length(t *testing.T) {
	t.Parallel()
	// U+1F600 is a surrogate pair in UTF-16.
	doc := MustOf([]string{"a\U0001F600b"})
	require.Equal(t, 4, doc.Length())
	l, err := doc.Line(1)
	require.NoError(t, err)
	require.Equal(t, 4, l.Length())
}
