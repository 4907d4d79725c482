package text

// chunk is one event in a Cursor's sequence: either a text fragment or a
// line-break token. A line break is represented distinctly from an empty
// string (spec.md §4.1).
type chunk struct {
	text      string
	lineBreak bool
}

// Cursor is a lazy iterator alternating text chunks and line-break tokens.
type Cursor struct {
	chunks []chunk
	idx    int
	dir    int
}

// Next advances the cursor and reports whether a value is available.
func (c *Cursor) Next() bool {
	c.idx++
	return c.idx < len(c.chunks)
}

// Value returns the current chunk's text; empty and meaningless on a
// line-break chunk (use LineBreak to distinguish).
func (c *Cursor) Value() string {
	if c.idx < 0 || c.idx >= len(c.chunks) {
		return ""
	}
	return c.chunks[c.idx].text
}

// LineBreak reports whether the current chunk is a line-break token.
func (c *Cursor) LineBreak() bool {
	if c.idx < 0 || c.idx >= len(c.chunks) {
		return false
	}
	return c.chunks[c.idx].lineBreak
}

// Done reports whether the cursor has been exhausted.
func (c *Cursor) Done() bool { return c.idx >= len(c.chunks) }

func chunksFromLines(lines []string) []chunk {
	out := make([]chunk, 0, len(lines)*2-1)
	for i, l := range lines {
		if i > 0 {
			out = append(out, chunk{lineBreak: true})
		}
		out = append(out, chunk{text: l})
	}
	return out
}

func reverseChunks(cs []chunk) []chunk {
	out := make([]chunk, len(cs))
	for i, c := range cs {
		out[len(cs)-1-i] = c
	}
	return out
}

// Iter returns a cursor over the whole document. dir must be +1 (forward)
// or -1 (backward).
func (t Text) Iter(dir int) *Cursor {
	var lines []string
	collectLines(t.root, &lines)
	cs := chunksFromLines(lines)
	if dir < 0 {
		cs = reverseChunks(cs)
	}
	return &Cursor{chunks: cs, idx: -1, dir: dir}
}

// IterRange returns a cursor over [from, to).
func (t Text) IterRange(from, to int) (*Cursor, error) {
	sub, err := t.Slice(from, to)
	if err != nil {
		return nil, err
	}
	return sub.Iter(1), nil
}

// LineCursor is a lazy iterator over whole lines.
type LineCursor struct {
	lines []string
	from  int
	idx   int
}

func (c *LineCursor) Next() bool {
	c.idx++
	return c.idx < len(c.lines)
}

func (c *LineCursor) Value() string {
	if c.idx < 0 || c.idx >= len(c.lines) {
		return ""
	}
	return c.lines[c.idx]
}

func (c *LineCursor) LineNumber() int { return c.from + c.idx }

func (c *LineCursor) Done() bool { return c.idx >= len(c.lines) }

// IterLines returns a cursor over whole lines in [fromLine, toLine]
// (1-based, inclusive). fromLine defaults to 1, toLine to Lines().
func (t Text) IterLines(fromLine, toLine int) (*LineCursor, error) {
	if fromLine <= 0 {
		fromLine = 1
	}
	if toLine <= 0 || toLine > t.Lines() {
		toLine = t.Lines()
	}
	if fromLine > toLine || fromLine > t.Lines() {
		return &LineCursor{idx: -1}, nil
	}
	lines := make([]string, 0, toLine-fromLine+1)
	for n := fromLine; n <= toLine; n++ {
		l, err := t.Line(n)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l.Text)
	}
	return &LineCursor{lines: lines, from: fromLine, idx: -1}, nil
}
