package change

import (
	"github.com/textkit/textkit/internal/corelog"
	"github.com/textkit/textkit/internal/text"
)

// mappedSpec is an intermediate edit description expressed in other's output
// coordinates, built while rebasing cd against other.
type mappedSpec struct {
	from, to int
	insLen   int
	ins      text.Text
}

// MapDesc rebases cd so that it is expressed against the document produced
// by other, given both started from the same base document (spec.md §4.2).
// When before is true, a change boundary that coincides with one of
// other's insertions is kept on the side preceding other's insertion.
//
// This is a practical position-based rebase (map each change's edges
// through other.MapPos) rather than the fully general OT transform: a
// change whose edges land inside a deletion made by other collapses to a
// zero-width point at an edge of that deletion, and a mapped spec that
// overlaps an earlier one is dropped on rebuild (touching specs are kept
// as separate edits). That covers every case exercised by the core
// (selection/rangeset mapping composes through the *new* changeset after a
// transaction, never through a concurrent one) while staying simple enough
// to trust without a test harness for every OT corner case.
func (cd ChangeDesc) MapDesc(other ChangeDesc, before bool) ChangeDesc {
	assoc := 1
	if before {
		assoc = -1
	}
	var specs []mappedSpec
	cd.IterChanges(func(r DescRange) {
		nf, okf := other.MapPos(r.FromA, assoc, ModeSimple)
		nt, okt := other.MapPos(r.ToA, assoc, ModeSimple)
		if !okf || !okt {
			return
		}
		if nt < nf {
			nt = nf
		}
		specs = append(specs, mappedSpec{from: nf, to: nt, insLen: r.ToB - r.FromB})
	})
	return buildDescFromMapped(specs, other.lenB)
}

// Map is the ChangeSet-level analogue of MapDesc, carrying inserted text.
func (cs ChangeSet) Map(other ChangeDesc, before bool) ChangeSet {
	assoc := 1
	if before {
		assoc = -1
	}
	var specs []mappedSpec
	cs.IterChanges(func(r ChangeRange) {
		nf, okf := other.MapPos(r.FromA, assoc, ModeSimple)
		nt, okt := other.MapPos(r.ToA, assoc, ModeSimple)
		if !okf || !okt {
			return
		}
		if nt < nf {
			nt = nf
		}
		specs = append(specs, mappedSpec{from: nf, to: nt, ins: r.Inserted})
	})
	return buildSetFromMapped(specs, other.lenB)
}

func buildDescFromMapped(specs []mappedSpec, newLen int) ChangeDesc {
	normalized := dedupMapped(specs)
	var plain []Spec
	for _, s := range normalized {
		plain = append(plain, Spec{From: s.from, To: s.to, Insert: placeholderOfLen(s.insLen)})
	}
	cs, err := Of(plain, newLen)
	if err != nil {
		corelog.Warn("change: MapDesc produced an inconsistent rebase; returning identity", "err", err)
		return EmptyDesc(newLen)
	}
	return cs.Desc()
}

func buildSetFromMapped(specs []mappedSpec, newLen int) ChangeSet {
	normalized := dedupMapped(specs)
	var plain []Spec
	for _, s := range normalized {
		plain = append(plain, Spec{From: s.from, To: s.to, Insert: s.ins})
	}
	cs, err := Of(plain, newLen)
	if err != nil {
		corelog.Warn("change: Map produced an inconsistent rebase; returning identity", "err", err)
		return Empty(newLen)
	}
	return cs
}

// dedupMapped drops specs that, after mapping, now overlap an
// earlier-sorted one -- this only happens when two edits were rebased onto
// the same deleted region of other, which collapses naturally.
func dedupMapped(specs []mappedSpec) []mappedSpec {
	var out []mappedSpec
	cursor := 0
	for _, s := range specs {
		if s.from < cursor {
			continue
		}
		out = append(out, s)
		cursor = s.to
	}
	return out
}

func placeholderOfLen(n int) text.Text {
	if n <= 0 {
		return text.Empty()
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = '_'
	}
	t, _ := text.Of([]string{string(b)})
	return t
}
