package heightmap

import (
	"github.com/textkit/textkit/internal/change"
	"github.com/textkit/textkit/internal/text"
)

// ApplyChanges patches m to reflect changes, which were applied to produce
// newDoc, and returns the updated HeightMap (spec.md "applyChanges").
//
// Each non-identity region changes.IterChanges visits is spliced in
// independently via persistent path copying (the same technique
// internal/text/node.go's replaceNode uses for the rope itself): a branch
// not on the path to a changed region keeps its exact kids slice, and only
// the line leaves whose old span actually overlaps the region are
// discarded and re-estimated from newDoc. Every lineLeaf outside every
// changed region -- including its measured flag and measured pixel height
// -- is reused by reference, never passed back through the oracle.
func (m Map) ApplyChanges(changes change.ChangeSet, newDoc text.Text, oracle Oracle) Map {
	root := m.root
	shift := 0
	changes.IterChanges(func(cr change.ChangeRange) {
		// root mixes old-document content (for everything not yet spliced)
		// with already-rebuilt newDoc content (for regions already
		// processed); shift translates this region's old-document bounds
		// into that hybrid tree's coordinates.
		from, to := cr.FromA+shift, cr.ToA+shift
		root = spliceHeightRegion(root, from, to, 0, cr.FromB, cr.ToB, newDoc, oracle)
		shift += (cr.ToB - cr.FromB) - (cr.ToA - cr.FromA)
	})
	if root == nil {
		return Empty()
	}
	return Map{root: root, cfg: m.cfg}
}

// spliceHeightRegion replaces the old-document span [from, to) of nd (base
// relative) with freshly estimated lines covering [fromB, toB) of newDoc,
// reusing every sibling outside [from, to) unchanged. A lineLeaf is atomic
// (exactly one line), so any leaf whose span merely touches [from, to) is
// discarded wholesale rather than partially truncated -- correct because
// rebuildLines reads the replacement lines directly out of newDoc, which
// already reflects whatever prefix/suffix merging the edit caused.
func spliceHeightRegion(nd node, from, to, base, fromB, toB int, newDoc text.Text, oracle Oracle) node {
	switch v := nd.(type) {
	case *lineLeaf:
		lines := rebuildLines(newDoc, fromB, toB, oracle)
		if len(lines) == 0 {
			return nil
		}
		return buildBalanced(lines)
	case *branch:
		off := base
		for i, k := range v.kids {
			kl := k.length()
			childEnd := off + kl
			if from > childEnd {
				off += kl + 1
				continue
			}
			if to <= childEnd {
				sub := spliceHeightRegion(k, from, to, off, fromB, toB, newDoc, oracle)
				out := make([]node, 0, len(v.kids))
				out = append(out, v.kids[:i]...)
				if sub != nil {
					out = append(out, sub)
				}
				out = append(out, v.kids[i+1:]...)
				if len(out) == 0 {
					return nil
				}
				return buildBalanced(out)
			}
			return spliceHeightMultiChild(v, i, from, to, base, fromB, toB, newDoc, oracle)
		}
		return v
	}
	return nd
}

// spliceHeightMultiChild handles a region that starts within v.kids[firstIdx]
// but extends past its end: every child from firstIdx through the one
// containing `to` is dropped wholesale (no partial truncation needed --
// lineLeaf holds one whole line) and replaced once by rebuildLines.
func spliceHeightMultiChild(v *branch, firstIdx, from, to, base, fromB, toB int, newDoc text.Text, oracle Oracle) node {
	off := base
	for i := 0; i < firstIdx; i++ {
		off += v.kids[i].length() + 1
	}
	lastIdx := firstIdx
	childEnd := off + v.kids[firstIdx].length()
	for childEnd < to && lastIdx < len(v.kids)-1 {
		lastIdx++
		off = childEnd + 1
		childEnd = off + v.kids[lastIdx].length()
	}

	rebuilt := rebuildLines(newDoc, fromB, toB, oracle)

	out := make([]node, 0, firstIdx+len(rebuilt)+(len(v.kids)-lastIdx-1))
	out = append(out, v.kids[:firstIdx]...)
	out = append(out, rebuilt...)
	out = append(out, v.kids[lastIdx+1:]...)
	if len(out) == 0 {
		return nil
	}
	return buildBalanced(out)
}

// rebuildLines estimates fresh lineLeaf nodes for every newDoc line from the
// one containing fromB through the one containing toB, i.e. the lines that
// replace the touched old leaves. An empty newDoc yields one zero-length leaf.
func rebuildLines(newDoc text.Text, fromB, toB int, oracle Oracle) []node {
	if newDoc.Length() == 0 {
		return []node{&lineLeaf{}}
	}
	start, err := newDoc.LineAt(fromB)
	if err != nil {
		return nil
	}
	end, err := newDoc.LineAt(toB)
	if err != nil {
		return nil
	}
	out := make([]node, 0, end.Number-start.Number+1)
	for n := start.Number; n <= end.Number; n++ {
		line, err := newDoc.Line(n)
		if err != nil {
			continue
		}
		out = append(out, &lineLeaf{lineLen: line.Length(), ht: estimatedHeight(oracle, line.Length())})
	}
	return out
}
