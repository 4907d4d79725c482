package change

import (
	"sort"

	"github.com/textkit/textkit/internal/text"
)

// Spec describes a single edit: replace [From, To) with Insert. To must be
// at least From; a pure insertion has To == From.
type Spec struct {
	From, To int
	Insert   text.Text
}

// NewSpec builds a Spec for a pure insertion or deletion/replacement given a
// plain string, matching the `{from, to?, insert?}` shape in spec.md §6.
func NewSpec(from, to int, insert string) Spec {
	ins, _ := text.Of([]string{insert})
	if insert == "" {
		ins = text.Empty()
	}
	return Spec{From: from, To: to, Insert: ins}
}

// Of builds a normalized ChangeSet from one or more specs applied
// simultaneously to a document of length docLen (spec.md §4.2).
func Of(specs []Spec, docLen int) (ChangeSet, error) {
	ordered := make([]Spec, len(specs))
	copy(ordered, specs)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].From < ordered[j].From })

	var sections []section
	var inserted []text.Text
	cursor := 0
	bLen := 0
	for _, s := range ordered {
		if s.From < 0 || s.To < s.From || s.To > docLen || s.From < cursor {
			return ChangeSet{}, ErrInvalidChange
		}
		keepLen := s.From - cursor
		sections = append(sections, section{n: keepLen})
		bLen += keepLen
		insLen := s.Insert.Length()
		sections = append(sections, section{isChange: true, n: s.To - s.From, insLen: insLen})
		inserted = append(inserted, s.Insert)
		bLen += insLen
		cursor = s.To
	}
	if cursor > docLen {
		return ChangeSet{}, ErrInvalidChange
	}
	tailKeep := docLen - cursor
	sections = append(sections, section{n: tailKeep})
	bLen += tailKeep

	return ChangeSet{
		ChangeDesc: ChangeDesc{lenA: docLen, lenB: bLen, sections: sections},
		inserted:   inserted,
	}, nil
}
