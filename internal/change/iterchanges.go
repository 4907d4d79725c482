package change

import "github.com/textkit/textkit/internal/text"

// ChangeRange describes one non-identity region of an edit, in the shape
// IterChanges visits it (spec.md §4.2).
type ChangeRange struct {
	FromA, ToA, FromB, ToB int
	Inserted               text.Text
}

// IterChanges visits each non-identity region of the change, in ascending
// order.
func (cs ChangeSet) IterChanges(cb func(ChangeRange)) {
	aOff, bOff := 0, 0
	ci := 0
	for _, s := range cs.sections {
		if s.isChange {
			cb(ChangeRange{FromA: aOff, ToA: aOff + s.n, FromB: bOff, ToB: bOff + s.insLen, Inserted: cs.inserted[ci]})
			aOff += s.n
			bOff += s.insLen
			ci++
		} else {
			aOff += s.n
			bOff += s.n
		}
	}
}

// DescRange is the length-only analogue of ChangeRange.
type DescRange struct {
	FromA, ToA, FromB, ToB int
}

func (cd ChangeDesc) IterChanges(cb func(DescRange)) {
	aOff, bOff := 0, 0
	for _, s := range cd.sections {
		if s.isChange {
			cb(DescRange{FromA: aOff, ToA: aOff + s.n, FromB: bOff, ToB: bOff + s.insLen})
			aOff += s.n
			bOff += s.insLen
		} else {
			aOff += s.n
			bOff += s.n
		}
	}
}
