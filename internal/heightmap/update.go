package heightmap

// UpdateHeight writes a pixel-measured height for the line at document
// position offset, returning a new Map with ancestor sums recomputed along
// the path to that leaf (spec.md "updateHeight"). Force re-measures even
// when a prior measurement already exists; otherwise a previously measured
// leaf is left untouched.
func (m Map) UpdateHeight(offset int, measured float64, force bool) Map {
	newRoot, _ := updateHeightNode(m.root, offset, measured, force)
	return Map{root: newRoot, cfg: m.cfg}
}

// updateHeightNode returns the (possibly new) node and whether anything
// under it changed.
func updateHeightNode(n node, offset int, measured float64, force bool) (node, bool) {
	switch v := n.(type) {
	case *lineLeaf:
		if v.measured && !force {
			return v, false
		}
		return &lineLeaf{lineLen: v.lineLen, ht: measured, measured: true}, true
	case *branch:
		off := 0
		changed := false
		newKids := make([]node, len(v.kids))
		copy(newKids, v.kids)
		for i, k := range v.kids {
			kl := k.length()
			if offset >= off && offset <= off+kl {
				updated, ch := updateHeightNode(k, offset-off, measured, force)
				newKids[i] = updated
				changed = ch
				break
			}
			off += kl + 1
		}
		if !changed {
			return v, false
		}
		return newBranch(newKids), true
	}
	return n, false
}
