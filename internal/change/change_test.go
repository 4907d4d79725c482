package change

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textkit/textkit/internal/text"
)

func TestBuildAndApply(t *testing.T) {
	t.Parallel()
	doc := text.MustOf([]string{"hello world"})
	cs, err := Of([]Spec{NewSpec(6, 11, "there")}, doc.Length())
	require.NoError(t, err)

	out, err := cs.Apply(doc)
	require.NoError(t, err)
	s, err := out.SliceString(0, out.Length())
	require.NoError(t, err)
	assert.Equal(t, "hello there", s)
}

// TestInversionRoundTrip is spec.md §8 property 4: invert(cs, doc).apply(cs.apply(doc)) == doc.
func TestInversionRoundTrip(t *testing.T) {
	t.Parallel()
	doc := text.MustOf([]string{"the quick brown fox"})
	cs, err := Of([]Spec{NewSpec(4, 9, "slow"), NewSpec(16, 19, "cat")}, doc.Length())
	require.NoError(t, err)

	edited, err := cs.Apply(doc)
	require.NoError(t, err)

	inv, err := cs.Invert(doc)
	require.NoError(t, err)

	back, err := inv.Apply(edited)
	require.NoError(t, err)
	assert.True(t, doc.Eq(back))
}

// TestComposeAssociativity is spec.md §8 property 5:
// compose(compose(a,b),c) == compose(a,compose(b,c)) as measured by applying
// both to the same document and comparing results.
func TestComposeAssociativity(t *testing.T) {
	t.Parallel()
	doc := text.MustOf([]string{"0123456789"})

	a, err := Of([]Spec{NewSpec(2, 4, "AB")}, doc.Length())
	require.NoError(t, err)
	docA, err := a.Apply(doc)
	require.NoError(t, err)

	b, err := Of([]Spec{NewSpec(0, 1, ""), NewSpec(5, 6, "X")}, docA.Length())
	require.NoError(t, err)
	docB, err := b.Apply(docA)
	require.NoError(t, err)

	c, err := Of([]Spec{NewSpec(3, 3, "Z")}, docB.Length())
	require.NoError(t, err)
	docC, err := c.Apply(docB)
	require.NoError(t, err)

	ab, err := a.Compose(b)
	require.NoError(t, err)
	abc1, err := ab.Compose(c)
	require.NoError(t, err)

	bc, err := b.Compose(c)
	require.NoError(t, err)
	abc2, err := a.Compose(bc)
	require.NoError(t, err)

	out1, err := abc1.Apply(doc)
	require.NoError(t, err)
	out2, err := abc2.Apply(doc)
	require.NoError(t, err)

	assert.True(t, out1.Eq(docC))
	assert.True(t, out2.Eq(docC))
	assert.True(t, out1.Eq(out2))
}

// TestComposeAndMapPosScenarioS2 exercises scenario S2: compose two
// changesets then map a position through the composed result, and through
// cs2 in trackDel mode.
func TestComposeAndMapPosScenarioS2(t *testing.T) {
	t.Parallel()
	cs1, err := Of([]Spec{NewSpec(3, 3, "abc")}, 10)
	require.NoError(t, err)
	require.Equal(t, 10, cs1.LenA())
	require.Equal(t, 13, cs1.LenB())

	cs2, err := Of([]Spec{NewSpec(5, 7, "")}, 13)
	require.NoError(t, err)
	require.Equal(t, 13, cs2.LenA())
	require.Equal(t, 11, cs2.LenB())

	composed, err := cs1.Compose(cs2)
	require.NoError(t, err)
	assert.Equal(t, 10, composed.LenA())
	assert.Equal(t, 11, composed.LenB())

	mapped, ok := cs1.MapPos(3, 1, ModeSimple)
	require.True(t, ok)
	assert.Equal(t, 6, mapped)

	_, ok = cs2.MapPos(5, -1, ModeTrackDel)
	assert.False(t, ok)
}

// TestMapPosBoundaryAssoc is spec.md §8 property 6.
func TestMapPosBoundaryAssoc(t *testing.T) {
	t.Parallel()
	cs, err := Of([]Spec{NewSpec(4, 7, "XY")}, 10)
	require.NoError(t, err)

	f, t_ := 4, 7
	got, ok := cs.MapPos(f, -1, ModeSimple)
	require.True(t, ok)
	assert.Equal(t, f, got)

	got, ok = cs.MapPos(f, 1, ModeSimple)
	require.True(t, ok)
	assert.Equal(t, f+2, got)

	got, ok = cs.MapPos(t_, -1, ModeSimple)
	require.True(t, ok)
	assert.Equal(t, f, got)

	got, ok = cs.MapPos(t_, 1, ModeSimple)
	require.True(t, ok)
	assert.Equal(t, f+2, got)
}

func TestMapPosTrackModes(t *testing.T) {
	t.Parallel()
	cs, err := Of([]Spec{NewSpec(4, 7, "")}, 10)
	require.NoError(t, err)

	_, ok := cs.MapPos(5, -1, ModeTrackDel)
	assert.False(t, ok)
	_, ok = cs.MapPos(4, -1, ModeTrackDel)
	assert.True(t, ok)
	_, ok = cs.MapPos(7, -1, ModeTrackDel)
	assert.True(t, ok)

	_, ok = cs.MapPos(5, -1, ModeTrackBefore)
	assert.False(t, ok)
	_, ok = cs.MapPos(4, -1, ModeTrackBefore)
	assert.True(t, ok)

	_, ok = cs.MapPos(5, -1, ModeTrackAfter)
	assert.False(t, ok)
	_, ok = cs.MapPos(7, -1, ModeTrackAfter)
	assert.True(t, ok)
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()
	cs, err := Of([]Spec{NewSpec(2, 2, "ab"), NewSpec(5, 8, "")}, 10)
	require.NoError(t, err)

	raw := cs.ToJSON()
	back, err := FromJSON(raw, 10)
	require.NoError(t, err)

	assert.Equal(t, cs.LenA(), back.LenA())
	assert.Equal(t, cs.LenB(), back.LenB())

	doc := text.MustOf([]string{"0123456789"})
	out1, err := cs.Apply(doc)
	require.NoError(t, err)
	out2, err := back.Apply(doc)
	require.NoError(t, err)
	assert.True(t, out1.Eq(out2))
}

func TestInvalidChangeRejected(t *testing.T) {
	t.Parallel()
	_, err := Of([]Spec{NewSpec(5, 2, "")}, 10)
	assert.ErrorIs(t, err, ErrInvalidChange)

	_, err = Of([]Spec{NewSpec(0, 5, ""), NewSpec(3, 6, "")}, 10)
	assert.ErrorIs(t, err, ErrInvalidChange)

	_, err = Of([]Spec{NewSpec(0, 20, "")}, 10)
	assert.ErrorIs(t, err, ErrInvalidChange)
}

func TestMapDescIdentityOther(t *testing.T) {
	t.Parallel()
	cs, err := Of([]Spec{NewSpec(2, 4, "Q")}, 10)
	require.NoError(t, err)

	mapped := cs.Desc().MapDesc(EmptyDesc(10), false)
	assert.Equal(t, cs.LenA(), mapped.LenA())
	assert.Equal(t, cs.LenB(), mapped.LenB())
}
