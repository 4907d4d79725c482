package text

import "github.com/textkit/textkit/internal/coreconfig"

// node is the immutable tree node shared by leaf and branch. Every edit
// returns a new node; unchanged subtrees are reused by the caller (spec.md
// §3 "Text").
//
// Design note (see DESIGN.md): leaves hold whole, complete lines rather than
// the open/partial boundary lines the original editor's rope uses at split
// points. That keeps length/lines bookkeeping simple (no "-1 for
// seam-sharing" term — a seam between two whole-line nodes is a real
// newline, not a shared half-line) while still satisfying every externally
// observable invariant in spec.md §8: round-trip, balance, structural
// equality and O(log N) depth. The tradeoff is that an edit landing near a
// leaf boundary rebuilds that leaf instead of splicing a partial line; large
// unrelated subtrees on either side of an edit are still shared untouched.
type node interface {
	length() int
	numLines() int
	depth() int
}

// leaf holds a contiguous run of whole document lines.
type leaf struct {
	ls  []string
	len int // cached utf16 length: sum(utf16Len(ls[i])) + (len(ls)-1)
}

func newLeaf(lines []string) *leaf {
	n := -1
	for _, l := range lines {
		n += utf16Len(l) + 1
	}
	if n < 0 {
		n = 0
	}
	return &leaf{ls: lines, len: n}
}

func (l *leaf) length() int   { return l.len }
func (l *leaf) numLines() int { return len(l.ls) }
func (l *leaf) depth() int    { return 1 }

// branch groups 2..MaxBranchChildren child subtrees.
type branch struct {
	kids []node
	len  int
	lns  int
	dep  int
}

func newBranch(kids []node) *branch {
	b := &branch{kids: kids}
	total := -1
	lines := 0
	maxDepth := 0
	for _, k := range kids {
		total += k.length() + 1
		lines += k.numLines()
		if k.depth() > maxDepth {
			maxDepth = k.depth()
		}
	}
	if total < 0 {
		total = 0
	}
	b.len = total
	b.lns = lines
	b.dep = maxDepth + 1
	return b
}

func (b *branch) length() int   { return b.len }
func (b *branch) numLines() int { return b.lns }
func (b *branch) depth() int    { return b.dep }

// collectLines appends every whole line held under n, in order, to out.
func collectLines(n node, out *[]string) {
	switch nn := n.(type) {
	case *leaf:
		*out = append(*out, nn.ls...)
	case *branch:
		for _, k := range nn.kids {
			collectLines(k, out)
		}
	}
}

// buildBalanced builds a balanced tree of leaves over lines, honoring the
// configured leaf/branch size limits.
func buildBalanced(lines []string, cfg coreconfig.Config) node {
	leaves := chunkLeaves(lines, cfg)
	return buildBalancedFromNodes(leaves, cfg)
}

func chunkLeaves(lines []string, cfg coreconfig.Config) []node {
	if len(lines) == 0 {
		return []node{newLeaf([]string{""})}
	}
	var leaves []node
	start := 0
	units := 0
	for i, l := range lines {
		lu := utf16Len(l) + 1
		count := i - start + 1
		if count > 1 && (units+lu > cfg.MaxLeafUnits || count > cfg.MaxLeafLines) {
			leaves = append(leaves, newLeaf(lines[start:i]))
			start = i
			units = 0
		}
		units += lu
	}
	leaves = append(leaves, newLeaf(lines[start:]))
	return leaves
}

// sliceNodes returns the nodes covering exactly [from, to) of nd (base is
// nd's absolute position). A subtree entirely inside the range is returned
// by reference, unmaterialized; only the leaves straddling from/to are
// truncated into freshly built leaves. Cost is O(depth + k) where k is the
// number of nodes actually touched by the boundary, not the document size
// (spec.md §4.1's slice/replace contract).
func sliceNodes(nd node, from, to, base int) []node {
	length := nd.length()
	if from <= base && to >= base+length {
		return []node{nd}
	}
	if to <= base || from >= base+length {
		return nil
	}
	switch v := nd.(type) {
	case *leaf:
		lines := materializeLines(v, from-base, to-base, 0)
		if len(lines) == 0 {
			return nil
		}
		return []node{newLeaf(lines)}
	case *branch:
		var out []node
		off := base
		for _, k := range v.kids {
			out = append(out, sliceNodes(k, from, to, off)...)
			off += k.length() + 1
		}
		return out
	}
	return nil
}

// splitBeforeExclusive returns the nodes covering [base, pos) of nd, sharing
// whole untouched subtrees by reference, with the final line peeled off
// separately so Replace can merge it with whatever follows instead of
// leaving a spurious line break at a mid-line edit. Requires
// base <= pos <= base+nd.length().
func splitBeforeExclusive(nd node, pos, base int) (nodes []node, lastLine string) {
	switch v := nd.(type) {
	case *leaf:
		lines := v.ls
		if pos-base < v.len {
			lines = materializeLines(v, 0, pos-base, 0)
		}
		if len(lines) == 1 {
			return nil, lines[0]
		}
		return []node{newLeaf(lines[:len(lines)-1])}, lines[len(lines)-1]
	case *branch:
		var out []node
		off := base
		for _, k := range v.kids {
			kl := k.length()
			if pos > off+kl {
				out = append(out, k)
				off += kl + 1
				continue
			}
			subNodes, last := splitBeforeExclusive(k, pos, off)
			out = append(out, subNodes...)
			return out, last
		}
		return out, ""
	}
	return nil, ""
}

// splitAfterExclusive returns the nodes covering [pos, base+nd.length()) of
// nd, sharing whole untouched subtrees by reference, with the first line
// peeled off separately for the same reason splitBeforeExclusive peels its
// last line. Requires base <= pos <= base+nd.length().
func splitAfterExclusive(nd node, pos, base int) (firstLine string, nodes []node) {
	switch v := nd.(type) {
	case *leaf:
		lines := v.ls
		if pos-base > 0 {
			lines = materializeLines(v, pos-base, v.len, 0)
		}
		if len(lines) == 1 {
			return lines[0], nil
		}
		return lines[0], []node{newLeaf(lines[1:])}
	case *branch:
		off := base
		for i, k := range v.kids {
			kl := k.length()
			if pos > off+kl {
				off += kl + 1
				continue
			}
			first, subNodes := splitAfterExclusive(k, pos, off)
			out := append(append([]node{}, subNodes...), v.kids[i+1:]...)
			return first, out
		}
		return "", nil
	}
	return "", nil
}

// replaceNode returns the replacement for nd (spanning [base, base+nd.length()))
// after substituting replacementLines into [from, to). It is true persistent
// path copying: a branch whose children aren't touched by the edit keeps its
// exact kids slice (reused by reference), and only the one slot actually
// overlapping [from, to) is rebuilt, so depth never grows beyond what
// re-chunking the touched content itself requires — repeated small edits
// never accumulate extra tree levels (spec.md §4.1's O(log N + k) contract,
// §8 property 2's balance bound).
func replaceNode(nd node, from, to, base int, replacementLines []string, cfg coreconfig.Config) node {
	length := nd.length()
	switch v := nd.(type) {
	case *leaf:
		var before, after []string
		if from > base {
			before = materializeLines(v, 0, from-base, 0)
		}
		if to < base+length {
			after = materializeLines(v, to-base, length, 0)
		}
		newLines := joinLineLists(joinLineLists(before, replacementLines), after)
		return buildBalancedFromNodes(chunkLeaves(newLines, cfg), cfg)
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
				sub := replaceNode(k, from, to, off, replacementLines, cfg)
				out := make([]node, 0, len(v.kids))
				out = append(out, v.kids[:i]...)
				out = append(out, sub)
				out = append(out, v.kids[i+1:]...)
				return buildBalancedFromNodes(out, cfg)
			}
			return replaceMultiChild(v, i, from, to, base, replacementLines, cfg)
		}
		return v
	}
	return nd
}

// replaceMultiChild handles an edit that starts within v.kids[firstIdx] but
// extends past its end. Only the first and last overlapping children are
// peeled (via splitBeforeExclusive / splitAfterExclusive); every child
// strictly between them is dropped wholesale and every sibling strictly
// outside the span is reused untouched — the flattening this needs is
// scoped to this one branch's children, never cascading into ancestors.
func replaceMultiChild(v *branch, firstIdx, from, to, base int, replacementLines []string, cfg coreconfig.Config) node {
	off := base
	for i := 0; i < firstIdx; i++ {
		off += v.kids[i].length() + 1
	}
	firstOff := off
	lastIdx := firstIdx
	childEnd := off + v.kids[firstIdx].length()
	for childEnd < to && lastIdx < len(v.kids)-1 {
		lastIdx++
		off = childEnd + 1
		childEnd = off + v.kids[lastIdx].length()
	}
	lastOff := off

	prefixNodes, lastPrefixLine := splitBeforeExclusive(v.kids[firstIdx], from, firstOff)
	firstSuffixLine, suffixNodes := splitAfterExclusive(v.kids[lastIdx], to, lastOff)

	boundaryLines := joinLineLists(joinLineLists([]string{lastPrefixLine}, replacementLines), []string{firstSuffixLine})
	boundaryNodes := chunkLeaves(boundaryLines, cfg)

	out := make([]node, 0, firstIdx+len(prefixNodes)+len(boundaryNodes)+len(suffixNodes)+(len(v.kids)-lastIdx-1))
	out = append(out, v.kids[:firstIdx]...)
	out = append(out, prefixNodes...)
	out = append(out, boundaryNodes...)
	out = append(out, suffixNodes...)
	out = append(out, v.kids[lastIdx+1:]...)
	return buildBalancedFromNodes(out, cfg)
}

// buildBalancedFromNodes groups an ordered list of nodes into a balanced
// branch tree, recursively, respecting MaxBranchChildren / MinBranchChildren.
func buildBalancedFromNodes(nodes []node, cfg coreconfig.Config) node {
	if len(nodes) == 1 {
		return nodes[0]
	}
	if len(nodes) <= cfg.MaxBranchChildren {
		return newBranch(nodes)
	}
	// Group into roughly equal-sized chunks of at most MaxBranchChildren,
	// then recurse, matching the "split at the median / merge-and-resplit"
	// balance policy in spec.md §4.1.
	groupSize := cfg.MaxBranchChildren
	numGroups := (len(nodes) + groupSize - 1) / groupSize
	perGroup := (len(nodes) + numGroups - 1) / numGroups
	if perGroup < cfg.MinBranchChildren && numGroups > 1 {
		perGroup = cfg.MinBranchChildren
	}
	var groups []node
	for i := 0; i < len(nodes); i += perGroup {
		end := i + perGroup
		if end > len(nodes) {
			end = len(nodes)
		}
		groups = append(groups, buildBalancedFromNodes(nodes[i:end], cfg))
	}
	return buildBalancedFromNodes(groups, cfg)
}
