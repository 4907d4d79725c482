package rangeset

// Cursor walks a Set's ranges in ascending order, optionally skipping ahead
// to a starting position (spec.md §4.3 "iter").
type Cursor struct {
	ranges []Range
	pos    int
}

// Iter returns a Cursor positioned at the first range with From >= from.
func (s Set) Iter(from int) *Cursor {
	all := s.All()
	i := 0
	for i < len(all) && all[i].From < from {
		i++
	}
	return &Cursor{ranges: all, pos: i}
}

// Next advances the cursor and reports whether a range was produced.
func (c *Cursor) Next() (Range, bool) {
	if c.pos >= len(c.ranges) {
		return Range{}, false
	}
	r := c.ranges[c.pos]
	c.pos++
	return r, true
}

// Done reports whether the cursor has been exhausted.
func (c *Cursor) Done() bool { return c.pos >= len(c.ranges) }

// Between calls cb for every range intersecting [from, to].
func (s Set) Between(from, to int, cb func(r Range) (cont bool)) {
	for _, r := range s.All() {
		if r.From > to {
			return
		}
		if r.To < from {
			continue
		}
		if !cb(r) {
			return
		}
	}
}
