// Package text implements the persistent, balanced rope described in
// spec.md §3, §4.1: an immutable sequence of UTF-16 code units with line
// structure, sub-linear slice/replace, and structural equality independent
// of tree shape.
package text

import (
	"github.com/dustin/go-humanize"
	"github.com/textkit/textkit/internal/coreconfig"
)

// Text is an immutable document. The zero value is not valid; use Of or
// Empty.
type Text struct {
	root node
	cfg  coreconfig.Config
}

// Empty returns the single-line empty document.
func Empty() Text {
	return Text{root: newLeaf([]string{""}), cfg: coreconfig.Default()}
}

// Of builds a balanced tree from a non-empty list of line strings. Lines
// must not themselves contain "\n" — the separator is implicit between
// list entries.
func Of(lines []string) (Text, error) {
	if len(lines) == 0 {
		return Text{}, ErrEmptyInput
	}
	cfg := coreconfig.Default()
	return Text{root: buildBalanced(lines, cfg), cfg: cfg}, nil
}

// MustOf panics on error; for tests and constant documents.
func MustOf(lines []string) Text {
	t, err := Of(lines)
	if err != nil {
		panic(err)
	}
	return t
}

// Length returns the document length in UTF-16 code units.
func (t Text) Length() int { return t.root.length() }

// Lines returns the number of lines in the document.
func (t Text) Lines() int { return t.root.numLines() }

// Depth returns the tree depth, exposed for the balance property test
// (spec.md §8 property 2).
func (t Text) Depth() int { return t.root.depth() }

func (t Text) config() coreconfig.Config {
	if t.cfg.MaxLeafUnits == 0 {
		return coreconfig.Default()
	}
	return t.cfg
}

// Line returns the n'th line (1-based).
func (t Text) Line(n int) (Line, error) {
	if n < 1 || n > t.Lines() {
		return Line{}, ErrOutOfRange
	}
	return findLine(t.root, n, 0, 1), nil
}

// LineAt returns the line containing the document position pos.
func (t Text) LineAt(pos int) (Line, error) {
	if pos < 0 || pos > t.Length() {
		return Line{}, ErrOutOfRange
	}
	return findLineAt(t.root, pos, 0, 1), nil
}

func findLine(nd node, n, posBase, lineBase int) Line {
	switch v := nd.(type) {
	case *leaf:
		idx := n - lineBase
		off := posBase
		for i := 0; i < idx; i++ {
			off += utf16Len(v.ls[i]) + 1
		}
		txt := v.ls[idx]
		return Line{From: off, To: off + utf16Len(txt), Number: n, Text: txt}
	case *branch:
		off := posBase
		lb := lineBase
		for _, k := range v.kids {
			kl := k.numLines()
			if n < lb+kl {
				return findLine(k, n, off, lb)
			}
			off += k.length() + 1
			lb += kl
		}
	}
	panic("text: line index out of bounds")
}

func findLineAt(nd node, pos, posBase, lineBase int) Line {
	switch v := nd.(type) {
	case *leaf:
		off := posBase
		for i, l := range v.ls {
			ll := utf16Len(l)
			to := off + ll
			if pos <= to || i == len(v.ls)-1 {
				return Line{From: off, To: to, Number: lineBase + i, Text: l}
			}
			off = to + 1
		}
	case *branch:
		off := posBase
		lb := lineBase
		for i, k := range v.kids {
			kl := k.length()
			last := i == len(v.kids)-1
			if pos <= off+kl || last {
				return findLineAt(k, pos, off, lb)
			}
			off += kl + 1
			lb += k.numLines()
		}
	}
	panic("text: position out of bounds")
}

// materializeLines returns the lines (possibly partially clipped at the
// boundary) spanning UTF-16 positions [from, to). The recursion prunes
// subtrees that don't overlap the range, so cost is proportional to the
// depth plus the number of lines actually touched.
func materializeLines(nd node, from, to, base int) []string {
	switch v := nd.(type) {
	case *leaf:
		var out []string
		off := base
		for _, l := range v.ls {
			ll := utf16Len(l)
			lineFrom, lineTo := off, off+ll
			if from <= lineTo && to >= lineFrom {
				a := from - lineFrom
				if a < 0 {
					a = 0
				}
				b := to - lineFrom
				if b > ll {
					b = ll
				}
				if b < 0 {
					b = 0
				}
				if a <= b {
					out = append(out, sliceUTF16(l, a, b))
				}
			}
			off = lineTo + 1
		}
		return out
	case *branch:
		var out []string
		off := base
		for _, k := range v.kids {
			kl := k.length()
			if from <= off+kl && to >= off {
				out = append(out, materializeLines(k, from, to, off)...)
			}
			off += kl + 1
		}
		return out
	}
	return nil
}

func joinLineLists(a, b []string) []string {
	if len(a) == 0 {
		out := make([]string, len(b))
		copy(out, b)
		return out
	}
	if len(b) == 0 {
		out := make([]string, len(a))
		copy(out, a)
		return out
	}
	out := make([]string, 0, len(a)+len(b)-1)
	out = append(out, a[:len(a)-1]...)
	out = append(out, a[len(a)-1]+b[0])
	out = append(out, b[1:]...)
	return out
}

// Slice extracts the subdocument spanning UTF-16 positions [from, to).
// Subtrees wholly inside [from, to) are reused by reference; only the
// leaves straddling from/to are rebuilt (spec.md §4.1, §3/§9's "edits
// return new nodes sharing unchanged subtrees").
func (t Text) Slice(from, to int) (Text, error) {
	if from < 0 || to > t.Length() || from > to {
		return Text{}, ErrOutOfRange
	}
	if from == 0 && to == t.Length() {
		return t, nil
	}
	cfg := t.config()
	nodes := sliceNodes(t.root, from, to, 0)
	if len(nodes) == 0 {
		return Text{root: newLeaf([]string{""}), cfg: cfg}, nil
	}
	return Text{root: buildBalancedFromNodes(nodes, cfg), cfg: cfg}, nil
}

// SliceString extracts [from, to) as a plain string, joining lines with sep
// (default "\n").
func (t Text) SliceString(from, to int, sep ...string) (string, error) {
	s := "\n"
	if len(sep) > 0 {
		s = sep[0]
	}
	sub, err := t.Slice(from, to)
	if err != nil {
		return "", err
	}
	var lines []string
	collectLines(sub.root, &lines)
	return joinStrings(lines, s), nil
}

func joinStrings(parts []string, sep string) string {
	if len(parts) == 0 {
		return ""
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += sep + p
	}
	return out
}

// Replace produces a new document with [from, to) replaced by replacement.
//
// This is persistent path copying (see replaceNode): every branch not on
// the path to the edited region keeps its exact child slice, and only the
// nodes actually straddling from/to are rebuilt. That bounds the cost to
// O(log N + k) and, critically, keeps tree depth from growing across
// repeated edits the way a naive "collect shared nodes, rewrap" approach
// would (spec.md §4.1's implementation hint, §3/§9's sharing invariant, §8
// property 2's balance bound).
func (t Text) Replace(from, to int, replacement Text) (Text, error) {
	if from < 0 || to > t.Length() || from > to {
		return Text{}, ErrOutOfRange
	}
	cfg := t.config()
	if from == 0 && to == t.Length() {
		return Text{root: replacement.root, cfg: cfg}, nil
	}

	var midLines []string
	collectLines(replacement.root, &midLines)

	return Text{root: replaceNode(t.root, from, to, 0, midLines, cfg), cfg: cfg}, nil
}

// Append is shorthand for Replace(Length, Length, other).
func (t Text) Append(other Text) (Text, error) {
	return t.Replace(t.Length(), t.Length(), other)
}

// Eq reports whether t and other contain the same lines, regardless of tree
// shape (spec.md §8 property 3).
func (t Text) Eq(other Text) bool {
	if t.Length() != other.Length() || t.Lines() != other.Lines() {
		return false
	}
	var a, b []string
	collectLines(t.root, &a)
	collectLines(other.root, &b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ToJSON returns the canonical array-of-lines representation (spec.md §6).
func (t Text) ToJSON() []string {
	var lines []string
	collectLines(t.root, &lines)
	return lines
}

// FromJSON rebuilds a Text from its canonical line-array form.
func FromJSON(lines []string) (Text, error) {
	return Of(lines)
}

// DebugString renders a short human-readable summary, grounded in the
// teacher's use of byte/line counts in diagnostic output.
func (t Text) DebugString() string {
	return humanize.Comma(int64(t.Length())) + " units, " + humanize.Comma(int64(t.Lines())) + " lines"
}
