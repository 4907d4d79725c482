package change

import "github.com/textkit/textkit/internal/text"

// Apply executes the edit against doc, producing the B document.
func (cs ChangeSet) Apply(doc text.Text) (text.Text, error) {
	if doc.Length() != cs.lenA {
		return text.Text{}, ErrInvalidChange
	}
	cur := doc
	off := 0
	aPos := 0
	ci := 0
	for _, s := range cs.sections {
		if s.isChange {
			from, to := aPos+off, aPos+off+s.n
			var err error
			cur, err = cur.Replace(from, to, cs.inserted[ci])
			if err != nil {
				return text.Text{}, err
			}
			off += s.insLen - s.n
			aPos += s.n
			ci++
		} else {
			aPos += s.n
		}
	}
	return cur, nil
}

// Invert returns the ChangeSet such that
// cs.Invert(oldDoc).Apply(cs.Apply(oldDoc)) == oldDoc.
func (cs ChangeSet) Invert(oldDoc text.Text) (ChangeSet, error) {
	if oldDoc.Length() != cs.lenA {
		return ChangeSet{}, ErrInvalidChange
	}
	var specs []Spec
	var iterErr error
	cs.IterChanges(func(r ChangeRange) {
		if iterErr != nil {
			return
		}
		orig, err := oldDoc.Slice(r.FromA, r.ToA)
		if err != nil {
			iterErr = err
			return
		}
		specs = append(specs, Spec{From: r.FromB, To: r.ToB, Insert: orig})
	})
	if iterErr != nil {
		return ChangeSet{}, iterErr
	}
	return Of(specs, cs.lenB)
}
