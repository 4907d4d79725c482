package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textkit/textkit/internal/change"
	"github.com/textkit/textkit/internal/selection"
	"github.com/textkit/textkit/internal/text"
)

func TestFacetCombineOrderAndPriority(t *testing.T) {
	t.Parallel()

	tabSize := DefineFacet(func(inputs []int) int {
		if len(inputs) == 0 {
			return 4
		}
		return inputs[0]
	})

	ext := Extensions(
		tabSize.Of(2, PriorityLow),
		tabSize.Of(8, PriorityHighest),
		tabSize.Of(4),
	)
	cfg, err := ResolveConfig(ext)
	require.NoError(t, err)

	doc, err := text.Of([]string{"hello"})
	require.NoError(t, err)
	st, err := cfg.Init(doc, selection.Single(selection.Cursor(0, -1)))
	require.NoError(t, err)

	assert.Equal(t, 8, Get(st, tabSize))
}

func TestStaticFacetCombinesProvidedInput(t *testing.T) {
	t.Parallel()

	readOnly := DefineStaticFacet(func(inputs []bool) bool {
		for _, v := range inputs {
			if v {
				return true
			}
		}
		return false
	})

	cfg, err := ResolveConfig(readOnly.Of(true))
	require.NoError(t, err)
	doc := text.Empty()
	st, err := cfg.Init(doc, selection.Single(selection.Cursor(0, -1)))
	require.NoError(t, err)
	assert.True(t, Get(st, readOnly))
}

func TestComputeFacetDependsOnAnotherFacet(t *testing.T) {
	t.Parallel()

	base := DefineFacet(func(inputs []int) int {
		if len(inputs) == 0 {
			return 0
		}
		return inputs[0]
	})
	doubled := DefineFacet(func(inputs []int) int {
		if len(inputs) == 0 {
			return 0
		}
		return inputs[0]
	})

	ext := Extensions(
		base.Of(5),
		doubled.Compute([]FacetID{base.ID()}, func(g Getter) int {
			return Get(g, base) * 2
		}),
	)
	cfg, err := ResolveConfig(ext)
	require.NoError(t, err)

	doc := text.Empty()
	st, err := cfg.Init(doc, selection.Single(selection.Cursor(0, -1)))
	require.NoError(t, err)

	assert.Equal(t, 5, Get(st, base))
	assert.Equal(t, 10, Get(st, doubled))
}

func TestFacetCycleRejected(t *testing.T) {
	t.Parallel()

	a := DefineFacet(func(inputs []int) int { return 0 })
	b := DefineFacet(func(inputs []int) int { return 0 })

	ext := Extensions(
		a.Compute([]FacetID{b.ID()}, func(g Getter) int { return Get(g, b) }),
		b.Compute([]FacetID{a.ID()}, func(g Getter) int { return Get(g, a) }),
	)

	_, err := ResolveConfig(ext)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFacetCycle)
}

func TestFieldCreateAndUpdate(t *testing.T) {
	t.Parallel()

	editCount := DefineField(
		func(*EditorState) any { return 0 },
		func(prev any, tr *Transaction) any { return prev.(int) + 1 },
	)

	cfg, err := ResolveConfig(editCount.Extension())
	require.NoError(t, err)

	doc, err := text.Of([]string{"abc"})
	require.NoError(t, err)
	st, err := cfg.Init(doc, selection.Single(selection.Cursor(0, -1)))
	require.NoError(t, err)
	assert.Equal(t, 0, GetField[int](st, editCount))

	next, tr, err := st.Update(TransactionSpec{
		Changes: []change.Spec{change.NewSpec(3, 3, "d")},
	})
	require.NoError(t, err)
	require.NotNil(t, tr)
	assert.Equal(t, 1, GetField[int](next, editCount))

	want, err := text.Of([]string{"abcd"})
	require.NoError(t, err)
	assert.True(t, next.Doc.Eq(want))
}

func TestUpdateMapsSelectionWhenNotSpecified(t *testing.T) {
	t.Parallel()

	cfg, err := ResolveConfig(Extension{})
	require.NoError(t, err)

	doc, err := text.Of([]string{"hello world"})
	require.NoError(t, err)
	st, err := cfg.Init(doc, selection.Single(selection.Cursor(6, -1)))
	require.NoError(t, err)

	next, _, err := st.Update(TransactionSpec{
		Changes: []change.Spec{change.NewSpec(0, 0, "XX")},
	})
	require.NoError(t, err)
	assert.Equal(t, 8, next.Selection.MainRange().From())
}

func TestUpdateHonorsExplicitSelection(t *testing.T) {
	t.Parallel()

	cfg, err := ResolveConfig(Extension{})
	require.NoError(t, err)

	doc, err := text.Of([]string{"hello world"})
	require.NoError(t, err)
	st, err := cfg.Init(doc, selection.Single(selection.Cursor(0, -1)))
	require.NoError(t, err)

	explicit := selection.Single(selection.Cursor(5, -1))
	next, _, err := st.Update(TransactionSpec{
		Changes:   []change.Spec{change.NewSpec(0, 0, "hi ")},
		Selection: &explicit,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, next.Selection.MainRange().From())
}

func TestChangeFilterCanRejectChange(t *testing.T) {
	t.Parallel()

	readOnly := func(cs change.ChangeSet, st *EditorState) (change.ChangeSet, error) {
		return change.Empty(cs.LenA()), nil
	}
	cfg, err := ResolveConfig(ChangeFilters.Of([]ChangeFilterFunc{readOnly}))
	require.NoError(t, err)

	doc, err := text.Of([]string{"abcdef"})
	require.NoError(t, err)
	st, err := cfg.Init(doc, selection.Single(selection.Cursor(0, -1)))
	require.NoError(t, err)

	next, _, err := st.Update(TransactionSpec{
		Changes: []change.Spec{change.NewSpec(0, 1, "")},
	})
	require.NoError(t, err)
	assert.True(t, next.Doc.Eq(doc))
}

func TestTransactionFilterReentryBound(t *testing.T) {
	t.Parallel()

	alwaysRetry := func(specs []TransactionSpec, st *EditorState) ([]TransactionSpec, error) {
		return specs, nil
	}
	cfg, err := ResolveConfig(TransactionFilters.Of([]TransactionFilterFunc{alwaysRetry}))
	require.NoError(t, err)

	doc := text.Empty()
	st, err := cfg.Init(doc, selection.Single(selection.Cursor(0, -1)))
	require.NoError(t, err)

	_, _, err = st.Update(TransactionSpec{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransactionFilterOverflow)
}

func TestFieldUpdatePanicKeepsPriorValueAndReportsToSink(t *testing.T) {
	t.Parallel()

	var sunk error
	flaky := DefineField(
		func(*EditorState) any { return "ok" },
		func(prev any, tr *Transaction) any {
			panic("boom")
		},
	)

	cfg, err := ResolveConfig(Extensions(flaky.Extension(), ErrorSink.Of(func(err error) { sunk = err })))
	require.NoError(t, err)

	doc := text.Empty()
	st, err := cfg.Init(doc, selection.Single(selection.Cursor(0, -1)))
	require.NoError(t, err)

	next, _, err := st.Update(TransactionSpec{})
	require.NoError(t, err)
	assert.Equal(t, "ok", GetField[string](next, flaky))
	require.Error(t, sunk)
	assert.True(t, errors.Is(sunk, ErrFieldUpdateFailure))
}

func TestReconfigureEffectSwapsConfig(t *testing.T) {
	t.Parallel()

	tabSize := DefineFacet(func(inputs []int) int {
		if len(inputs) == 0 {
			return 4
		}
		return inputs[0]
	})

	cfg1, err := ResolveConfig(tabSize.Of(2))
	require.NoError(t, err)
	doc := text.Empty()
	st, err := cfg1.Init(doc, selection.Single(selection.Cursor(0, -1)))
	require.NoError(t, err)
	assert.Equal(t, 2, Get(st, tabSize))

	next, _, err := st.Update(TransactionSpec{
		Effects: []Effect{Reconfigure(Extensions(tabSize.Of(8)))},
	})
	require.NoError(t, err)
	assert.Equal(t, 8, Get(next, tabSize))
}

func TestIsUserEventPrefixMatching(t *testing.T) {
	t.Parallel()

	tr := &Transaction{UserEvent: "input.type.compose"}
	assert.True(t, tr.IsUserEvent("input"))
	assert.True(t, tr.IsUserEvent("input.type"))
	assert.True(t, tr.IsUserEvent("input.type.compose"))
	assert.False(t, tr.IsUserEvent("input.typex"))
	assert.False(t, tr.IsUserEvent("delete"))
}
