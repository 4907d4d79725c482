package heightmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textkit/textkit/internal/change"
	"github.com/textkit/textkit/internal/text"
)

func lineLengths(doc text.Text) []int {
	lengths := make([]int, doc.Lines())
	for i := 1; i <= doc.Lines(); i++ {
		line, err := doc.Line(i)
		if err != nil {
			continue
		}
		lengths[i-1] = line.Length()
	}
	return lengths
}

func sumLeafHeights(n node) float64 {
	switch v := n.(type) {
	case *lineLeaf:
		return v.ht
	case *branch:
		var sum float64
		for _, k := range v.kids {
			sum += sumLeafHeights(k)
		}
		return sum
	}
	return 0
}

// TestHeightSums is spec.md §8 property 9.
func TestHeightSums(t *testing.T) {
	t.Parallel()
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "x"
	}
	doc := text.MustOf(lines)
	oracle := Oracle{LineHeight: 20}

	m := BuildFromLineLengths(lineLengths(doc), oracle)
	assert.InDelta(t, sumLeafHeights(m.root), m.Height(), 0.001)
	assert.Equal(t, doc.Length(), m.Length())

	m2 := m.UpdateHeight(0, 30, false)
	assert.InDelta(t, sumLeafHeights(m2.root), m2.Height(), 0.001)
}

// TestLineAtByHeight is scenario S5.
func TestLineAtByHeight(t *testing.T) {
	t.Parallel()
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "x"
	}
	doc := text.MustOf(lines)
	oracle := Oracle{LineHeight: 20}
	m := BuildFromLineLengths(lineLengths(doc), oracle)

	// Measure 0-indexed lines 10..20 (1-based 11..21) as 30px each, so the
	// first 10 lines (1-based 1..10) still contribute 10*20 = 200px.
	pos := 0
	for i := 1; i <= doc.Lines(); i++ {
		line, err := doc.Line(i)
		require.NoError(t, err)
		if i >= 11 && i <= 21 {
			m = m.UpdateHeight(pos, 30, true)
		}
		pos = line.To + 1
	}

	block := m.LineAt(ByHeight, 250)
	assert.LessOrEqual(t, block.Top, 250.0)
	assert.Greater(t, block.Top+block.Height, 250.0)

	// The 10 unmeasured lines before the measured run contribute exactly
	// 200px, matching the linear model spec.md's scenario describes.
	tenthLineBlock := m.LineAt(ByHeight, 199)
	assert.InDelta(t, 180, tenthLineBlock.Top, 0.001)
}

func collectLineLeaves(n node, out *[]*lineLeaf) {
	switch v := n.(type) {
	case *lineLeaf:
		*out = append(*out, v)
	case *branch:
		for _, k := range v.kids {
			collectLineLeaves(k, out)
		}
	}
}

// TestApplyChangesPreservesMeasuredLeaves reproduces the reviewer's failure
// scenario directly: a measured line far from an unrelated edit must keep
// its measured height across ApplyChanges, not fall back to the oracle's
// estimate.
func TestApplyChangesPreservesMeasuredLeaves(t *testing.T) {
	t.Parallel()
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "x"
	}
	doc := text.MustOf(lines)
	oracle := Oracle{LineHeight: 20}
	m := BuildFromLineLengths(lineLengths(doc), oracle)

	for i := 20; i <= 25; i++ {
		line, err := doc.Line(i)
		require.NoError(t, err)
		m = m.UpdateHeight(line.From, 99, true)
	}

	spec := change.NewSpec(0, 0, "Z")
	cs, err := change.Of([]change.Spec{spec}, doc.Length())
	require.NoError(t, err)
	newDoc, err := cs.Apply(doc)
	require.NoError(t, err)

	m2 := m.ApplyChanges(cs, newDoc, oracle)

	var leaves []*lineLeaf
	collectLineLeaves(m2.root, &leaves)
	require.Equal(t, newDoc.Lines(), len(leaves))

	measured := 0
	for i := 19; i <= 24; i++ { // still 1-based lines 20..25 (0-indexed 19..24), line count unchanged
		require.True(t, leaves[i].measured, "line %d should still be measured", i+1)
		assert.InDelta(t, 99, leaves[i].ht, 0.001)
		measured++
	}
	assert.Equal(t, 6, measured)
	assert.False(t, leaves[0].measured, "edited line should have been re-estimated, not measured")
}
