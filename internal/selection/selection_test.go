package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textkit/textkit/internal/change"
)

func TestCreateSortsAndRejectsOverlap(t *testing.T) {
	t.Parallel()
	sel, err := Create([]Range{RangeBetween(10, 10), RangeBetween(2, 5)}, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, sel.Ranges[0].From())
	assert.Equal(t, 10, sel.Ranges[1].From())

	_, err = Create([]Range{RangeBetween(0, 5), RangeBetween(3, 8)}, 0)
	assert.ErrorIs(t, err, ErrOverlappingRanges)
}

// TestSelectionMap is scenario S4: sel = [range(2..5, main), cursor(10)];
// insert "XY" at position 3 -> [range(2..7, main), cursor(12)].
func TestSelectionMap(t *testing.T) {
	t.Parallel()
	sel, err := Create([]Range{RangeBetween(2, 5), Cursor(10, 1)}, 0)
	require.NoError(t, err)

	cs, err := change.Of([]change.Spec{change.NewSpec(3, 3, "XY")}, 13)
	require.NoError(t, err)

	mapped := sel.Map(cs)
	require.Len(t, mapped.Ranges, 2)
	assert.Equal(t, 2, mapped.Ranges[0].From())
	assert.Equal(t, 7, mapped.Ranges[0].To())
	assert.Equal(t, 12, mapped.Ranges[1].From())
}

func TestRangeEqIncludesGoalColumn(t *testing.T) {
	t.Parallel()
	a := Cursor(4, -1, 7)
	b := Cursor(4, -1, 7)
	c := Cursor(4, -1, 8)
	assert.True(t, a.Eq(b))
	assert.False(t, a.Eq(c))
}
