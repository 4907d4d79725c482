package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestClusterBreakSymmetric is spec.md §8 property 11.
func TestClusterBreakSymmetric(t *testing.T) {
	t.Parallel()
	text := "ab\U0001F600cd"

	var forwardPositions []int
	pos := 0
	forwardPositions = append(forwardPositions, pos)
	for {
		next, ok := FindClusterBreak(text, pos, true)
		if !ok {
			break
		}
		pos = next
		forwardPositions = append(forwardPositions, pos)
	}

	var backwardPositions []int
	pos = forwardPositions[len(forwardPositions)-1]
	backwardPositions = append(backwardPositions, pos)
	for {
		prev, ok := FindClusterBreak(text, pos, false)
		if !ok {
			break
		}
		pos = prev
		backwardPositions = append(backwardPositions, pos)
	}

	reversed := make([]int, len(backwardPositions))
	for i, p := range backwardPositions {
		reversed[len(backwardPositions)-1-i] = p
	}
	assert.Equal(t, forwardPositions, reversed)
}

func TestCategorizeBasic(t *testing.T) {
	t.Parallel()
	var c CharCategorizer
	assert.Equal(t, CategoryWord, c.Categorize("a"))
	assert.Equal(t, CategorySpace, c.Categorize(" "))
	assert.Equal(t, CategoryOther, c.Categorize("."))
}

func TestByGroupStaysWithinContiguousRun(t *testing.T) {
	t.Parallel()
	text := "foo  bar"
	inGroup := ByGroup(text, 0)
	assert.True(t, inGroup(0))
	assert.True(t, inGroup(2))
	assert.False(t, inGroup(5))
}

func TestWordTokens(t *testing.T) {
	t.Parallel()
	toks := WordTokens("hello, world")
	assert.NotEmpty(t, toks)
}
