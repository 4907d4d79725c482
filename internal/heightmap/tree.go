package heightmap

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/textkit/textkit/internal/coreconfig"
)

// node is either a leaf (one document line) or a branch grouping a
// contiguous run of lines, matching spec.md's HeightMapLine / branch split.
type node interface {
	height() float64
	length() int
	numLines() int
}

// lineLeaf is one HeightMapLine: the line's code-unit length and its
// pixel height, either oracle-estimated or measured.
type lineLeaf struct {
	lineLen  int
	ht       float64
	measured bool
}

func (l *lineLeaf) height() float64  { return l.ht }
func (l *lineLeaf) length() int      { return l.lineLen }
func (l *lineLeaf) numLines() int    { return 1 }

// branch sums its children's height/length, recomputed bottom-up on every
// edit (spec.md §8 property 9).
type branch struct {
	kids         []node
	cachedHeight float64
	cachedLen    int
	cachedLines  int
}

func newBranch(kids []node) *branch {
	b := &branch{kids: kids}
	for _, k := range kids {
		b.cachedHeight += k.height()
		b.cachedLen += k.length() + 1 // +1 for the line break between siblings
		b.cachedLines += k.numLines()
	}
	if len(kids) > 0 {
		b.cachedLen-- // no trailing break after the last child
	}
	return b
}

func (b *branch) height() float64 { return b.cachedHeight }
func (b *branch) length() int     { return b.cachedLen }
func (b *branch) numLines() int   { return b.cachedLines }

// Map is the HeightMap tree: a persistent structure mapping document
// position (and, separately, accumulated pixel height) to line blocks
// (spec.md §4.7).
type Map struct {
	root node
	cfg  coreconfig.Config
}

// estimateKey identifies one HeightForLine result: the oracle's
// measurements together with the (unwrapped) line length.
type estimateKey struct {
	oracle  Oracle
	lineLen int
}

// estimateCache memoizes Oracle.HeightForLine by (oracle, line length),
// avoiding recomputation across the many same-length lines a typical
// source file has. Shared across Maps; entries are pure function results so
// concurrent read-only access needs no external locking, matching the
// core's "no shared mutable state" policy (spec.md §5) -- the LRU's
// internal lock only serializes its own bookkeeping.
var estimateCache, _ = lru.New[estimateKey, float64](coreconfig.DefaultHeightCacheEntries)

func estimatedHeight(oracle Oracle, lineLen int) float64 {
	if oracle.LineWrapping {
		return oracle.HeightForLine(lineLen)
	}
	key := estimateKey{oracle: oracle, lineLen: lineLen}
	if h, ok := estimateCache.Get(key); ok {
		return h
	}
	h := oracle.HeightForLine(lineLen)
	estimateCache.Add(key, h)
	return h
}

// Empty returns the single zero-length-leaf HeightMap (spec.md "empty()").
func Empty() Map {
	return Map{root: &lineLeaf{}, cfg: coreconfig.Default()}
}

// BuildFromLineLengths builds a HeightMap from scratch, estimating every
// line's height via oracle. ApplyChanges calls buildBalanced directly (not
// this function) to rebuild just the leaves covering a changed span, so
// unaffected lines keep their existing lineLeaf, measured or not.
func BuildFromLineLengths(lengths []int, oracle Oracle) Map {
	if len(lengths) == 0 {
		return Empty()
	}
	leaves := make([]node, len(lengths))
	for i, l := range lengths {
		leaves[i] = &lineLeaf{lineLen: l, ht: estimatedHeight(oracle, l)}
	}
	return Map{root: buildBalanced(leaves), cfg: coreconfig.Default()}
}

func buildBalanced(leaves []node) node {
	if len(leaves) == 1 {
		return leaves[0]
	}
	cfg := coreconfig.Default()
	if len(leaves) <= cfg.MaxBranchChildren {
		return newBranch(leaves)
	}
	mid := len(leaves) / 2
	left := buildBalanced(leaves[:mid])
	right := buildBalanced(leaves[mid:])
	return newBranch([]node{left, right})
}

// Height returns the total pixel height of the tree.
func (m Map) Height() float64 { return m.root.height() }

// Length returns the total document length (code units) the tree spans.
func (m Map) Length() int { return m.root.length() }

// NumLines returns the number of line leaves in the tree.
func (m Map) NumLines() int { return m.root.numLines() }
