package change

import "github.com/textkit/textkit/internal/text"

// bTag tags one contiguous run of B-space (the output of ChangeSet a) with
// where it came from: either a verbatim copy-through of an A range (a keep
// section) or a slice of one specific insertion a made.
type bTag struct {
	length             int
	isCopy             bool
	fromA              int // valid when isCopy
	changeIdx          int // valid when !isCopy: index into a.inserted
	localOff           int // offset within a.inserted[changeIdx]
	chFrom, chTo       int // valid when !isCopy: the originating change's A extent
}

func buildBTags(a ChangeSet) []bTag {
	var tags []bTag
	aOff := 0
	ci := 0
	for _, s := range a.sections {
		if s.isChange {
			if s.insLen > 0 {
				tags = append(tags, bTag{length: s.insLen, changeIdx: ci, chFrom: aOff, chTo: aOff + s.n})
			}
			aOff += s.n
			ci++
		} else {
			if s.n > 0 {
				tags = append(tags, bTag{length: s.n, isCopy: true, fromA: aOff})
			}
			aOff += s.n
		}
	}
	return tags
}

// composer accumulates the combined result sections/inserted text while
// walking the bTag/b.sections merge.
type composer struct {
	sections []section
	inserted []text.Text

	inKeep           bool
	keepFrom, keepTo int

	inChange         bool
	chFrom, chTo     int
	textParts        []text.Text
}

func (c *composer) flushKeep() {
	if c.inKeep {
		c.sections = append(c.sections, section{n: c.keepTo - c.keepFrom})
		c.inKeep = false
	}
}

func (c *composer) flushChange() {
	if c.inChange {
		ins := concatTexts(c.textParts)
		c.sections = append(c.sections, section{isChange: true, n: c.chTo - c.chFrom, insLen: ins.Length()})
		c.inserted = append(c.inserted, ins)
		c.inChange = false
		c.textParts = nil
	}
}

func (c *composer) addKeep(from, to int) {
	c.flushChange()
	if c.inKeep && c.keepTo == from {
		c.keepTo = to
		return
	}
	c.flushKeep()
	c.inKeep, c.keepFrom, c.keepTo = true, from, to
}

func (c *composer) extendChange(from, to int) {
	c.flushKeep()
	if !c.inChange {
		c.inChange = true
		c.chFrom, c.chTo = from, to
		return
	}
	if from < c.chFrom {
		c.chFrom = from
	}
	if to > c.chTo {
		c.chTo = to
	}
}

func (c *composer) addChangeText(t text.Text) {
	if t.Length() > 0 {
		c.textParts = append(c.textParts, t)
	}
}

func concatTexts(parts []text.Text) text.Text {
	out := text.Empty()
	for _, p := range parts {
		out, _ = out.Append(p)
	}
	return out
}

// Compose yields the ChangeSet equivalent to applying a then b:
// compose(a,b).Apply(doc) == b.Apply(a.Apply(doc)) for any doc of length
// a.LenA().
func (a ChangeSet) Compose(b ChangeSet) (ChangeSet, error) {
	if a.lenB != b.lenA {
		return ChangeSet{}, ErrInvalidCompose
	}
	tags := buildBTags(a)
	ti := 0
	var tRem int
	var curTag *bTag
	if len(tags) > 0 {
		curTag = &tags[0]
		tRem = curTag.length
	}

	posAt := func() int {
		if curTag == nil {
			return a.lenA
		}
		if curTag.isCopy {
			return curTag.fromA + (curTag.length - tRem)
		}
		return curTag.chFrom
	}

	advanceTag := func(k int) {
		tRem -= k
		if tRem == 0 {
			ti++
			if ti < len(tags) {
				curTag = &tags[ti]
				tRem = curTag.length
			} else {
				curTag = nil
			}
		}
	}

	c := &composer{}
	bi := 0
	for _, s := range b.sections {
		if s.isChange && s.n == 0 {
			pos := posAt()
			c.extendChange(pos, pos)
			c.addChangeText(b.inserted[bi])
			bi++
			continue
		}
		remaining := s.n
		firstChunk := true
		for remaining > 0 {
			if curTag == nil {
				return ChangeSet{}, ErrInvalidCompose
			}
			k := remaining
			if tRem < k {
				k = tRem
			}
			if s.isChange {
				if curTag.isCopy {
					from := curTag.fromA + (curTag.length - tRem)
					c.extendChange(from, from+k)
				} else {
					c.extendChange(curTag.chFrom, curTag.chTo)
				}
				if firstChunk {
					c.addChangeText(b.inserted[bi])
					firstChunk = false
				}
			} else {
				if curTag.isCopy {
					from := curTag.fromA + (curTag.length - tRem)
					c.addKeep(from, from+k)
				} else {
					c.extendChange(curTag.chFrom, curTag.chTo)
					off := curTag.localOff + (curTag.length - tRem)
					sub, _ := a.inserted[curTag.changeIdx].Slice(off, off+k)
					c.addChangeText(sub)
				}
			}
			remaining -= k
			advanceTag(k)
		}
		if s.isChange {
			bi++
		}
	}
	c.flushKeep()
	c.flushChange()

	return ChangeSet{
		ChangeDesc: ChangeDesc{lenA: a.lenA, lenB: b.lenB, sections: c.sections},
		inserted:   c.inserted,
	}, nil
}

// ComposeDesc is the length-only analogue of Compose, for callers that only
// have ChangeDescs (no inserted text).
func (a ChangeDesc) ComposeDesc(b ChangeDesc) (ChangeDesc, error) {
	aSet := ChangeSet{ChangeDesc: a, inserted: placeholderInserts(a)}
	bSet := ChangeSet{ChangeDesc: b, inserted: placeholderInserts(b)}
	composed, err := aSet.Compose(bSet)
	if err != nil {
		return ChangeDesc{}, err
	}
	return composed.Desc(), nil
}

func placeholderInserts(cd ChangeDesc) []text.Text {
	out := make([]text.Text, 0, len(cd.changeSections()))
	for _, idx := range cd.changeSections() {
		s := cd.sections[idx]
		lines := make([]string, 1)
		if s.insLen > 0 {
			b := make([]byte, s.insLen)
			for i := range b {
				b[i] = '_'
			}
			lines[0] = string(b)
		}
		t, _ := text.Of(lines)
		out = append(out, t)
	}
	return out
}
