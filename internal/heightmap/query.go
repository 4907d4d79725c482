package heightmap

// QueryType selects whether LineAt descends by document position or by
// accumulated pixel height (spec.md "lineAt").
type QueryType int

const (
	ByPos QueryType = iota
	ByHeight
)

// ContentKind classifies a BlockInfo's payload. This port implements only
// the plain-text line content spec.md's BlockInfo enumerates; widget
// blocks are a UI-layer concept with no representation in the core height
// tree here.
type ContentKind int

const (
	ContentText ContentKind = iota
)

// BlockInfo describes one line's placement in the rendered document
// (spec.md "BlockInfo").
type BlockInfo struct {
	From, Length int
	Top, Height  float64
	Content      ContentKind
}

// LineAt descends the tree by position (ByPos) or accumulated height
// (ByHeight) to the BlockInfo of the line covering target. Ties at a leaf
// boundary favor the later block, per spec.md.
func (m Map) LineAt(qt QueryType, target float64) BlockInfo {
	return lineAtNode(m.root, qt, target, 0, 0)
}

func lineAtNode(n node, qt QueryType, target float64, fromBase int, topBase float64) BlockInfo {
	switch v := n.(type) {
	case *lineLeaf:
		return BlockInfo{From: fromBase, Length: v.lineLen, Top: topBase, Height: v.ht, Content: ContentText}
	case *branch:
		from := fromBase
		top := topBase
		for i, k := range v.kids {
			last := i == len(v.kids)-1
			switch qt {
			case ByPos:
				kl := k.length()
				if float64(target) <= float64(from+kl) || last {
					return lineAtNode(k, qt, target, from, top)
				}
				from += kl + 1
				top += k.height()
			case ByHeight:
				kh := k.height()
				if target < top+kh || last {
					return lineAtNode(k, qt, target, from, top)
				}
				from += k.length() + 1
				top += kh
			}
		}
	}
	return BlockInfo{}
}

// BlockAt is the ByHeight analogue used by rendering to locate the
// enclosing block for a given pixel offset. This port has no widget
// blocks, so it is equivalent to LineAt(ByHeight, height); kept as a
// distinct method so callers can migrate to widget-aware behavior later
// without an API change.
func (m Map) BlockAt(height float64) BlockInfo {
	return m.LineAt(ByHeight, height)
}

// ForEachLine visits every line BlockInfo whose range intersects
// [from, to), in document order (spec.md "forEachLine").
func (m Map) ForEachLine(from, to int, cb func(BlockInfo)) {
	forEachLineNode(m.root, from, to, 0, 0, cb)
}

func forEachLineNode(n node, from, to, base int, topBase float64, cb func(BlockInfo)) float64 {
	switch v := n.(type) {
	case *lineLeaf:
		end := base + v.lineLen
		if end >= from && base <= to {
			cb(BlockInfo{From: base, Length: v.lineLen, Top: topBase, Height: v.ht, Content: ContentText})
		}
		return topBase + v.ht
	case *branch:
		off := base
		top := topBase
		for _, k := range v.kids {
			kl := k.length()
			if off+kl >= from && off <= to {
				top = forEachLineNode(k, from, to, off, top, cb)
			} else {
				top += k.height()
			}
			off += kl + 1
		}
		return top
	}
	return topBase
}
