package bidi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderFastPathPureLTR(t *testing.T) {
	t.Parallel()
	spans := Order("hello world", LTR)
	require.Len(t, spans, 1)
	assert.Equal(t, 0, spans[0].From)
	assert.Equal(t, 11, spans[0].To)
	assert.Equal(t, 0, spans[0].Level)
}

// TestOrderPartitionsFully is spec.md §8 property 10: spans cover [0,len)
// exactly once and levels differ by <= 1 from the base level.
func TestOrderPartitionsFully(t *testing.T) {
	t.Parallel()
	line := "Hello שלום World"
	spans := Order(line, LTR)
	require.NotEmpty(t, spans)

	total := 0
	for _, s := range line {
		if s > 0xFFFF {
			total += 2
		} else {
			total++
		}
	}

	assert.Equal(t, 0, spans[0].From)
	for i := 1; i < len(spans); i++ {
		assert.Equal(t, spans[i-1].To, spans[i].From)
	}
	assert.Equal(t, total, spans[len(spans)-1].To)

	for _, s := range spans {
		assert.LessOrEqual(t, s.Level, 1)
		assert.GreaterOrEqual(t, s.Level, 0)
	}
}

// TestMixedLineHasRTLSpan is scenario S6 (approximate boundaries, per the
// spec's own caveat).
func TestMixedLineHasRTLSpan(t *testing.T) {
	t.Parallel()
	line := "Hello שלום World"
	spans := Order(line, LTR)

	var sawRTL bool
	for _, s := range spans {
		if s.Level == 1 {
			sawRTL = true
		}
	}
	assert.True(t, sawRTL)
}
