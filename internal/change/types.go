// Package change implements the edit algebra described in spec.md §4.2:
// ChangeDesc (a length-only description of an edit) and ChangeSet (the same,
// plus the actual inserted text), with compose, invert and position mapping.
package change

import "github.com/textkit/textkit/internal/text"

// section is one alternating span: either a pure keep of n code units, or a
// change that deletes n code units and inserts insLen units (ChangeSet also
// keeps the inserted text itself, in a parallel slice).
//
// Of emits sections that strictly alternate keep/change, starting and ending
// with a (possibly zero-length) keep. Compose merges adjacent runs of the
// same kind but omits zero-length keeps, so its output may start or end
// with a change section.
type section struct {
	isChange bool
	n        int // keep length, or delete length if isChange
	insLen   int
}

// ChangeDesc describes an edit from a document of length LenA to one of
// length LenB, without recording the inserted content.
type ChangeDesc struct {
	lenA, lenB int
	sections   []section
}

// ChangeSet is a ChangeDesc that additionally carries the inserted text for
// each change section.
type ChangeSet struct {
	ChangeDesc
	inserted []text.Text // parallel to the isChange sections, in order
}

func (cd ChangeDesc) LenA() int { return cd.lenA }
func (cd ChangeDesc) LenB() int { return cd.lenB }

// Empty returns the identity ChangeDesc/ChangeSet over a document of length
// n: a single keep section spanning the whole document, matching what Of
// produces for a spec list with no edits (MapPos relies on there always
// being at least one section to walk).
func EmptyDesc(n int) ChangeDesc {
	return ChangeDesc{lenA: n, lenB: n, sections: []section{{n: n}}}
}

func Empty(n int) ChangeSet {
	return ChangeSet{ChangeDesc: EmptyDesc(n)}
}

// Desc strips the inserted text, yielding a ChangeDesc.
func (cs ChangeSet) Desc() ChangeDesc { return cs.ChangeDesc }

// IsEmpty reports whether the change has no change sections, i.e. leaves
// the document untouched.
func (cd ChangeDesc) IsEmpty() bool {
	for _, s := range cd.sections {
		if s.isChange {
			return false
		}
	}
	return true
}

// changeSections returns the insertion-order indices of change sections,
// used to align ChangeSet.inserted with ChangeDesc.sections.
func (cd ChangeDesc) changeSections() []int {
	var idx []int
	for i, s := range cd.sections {
		if s.isChange {
			idx = append(idx, i)
		}
	}
	return idx
}
