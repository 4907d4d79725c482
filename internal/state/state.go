package state

import (
	"errors"
	"fmt"

	"github.com/textkit/textkit/internal/corelog"
	"github.com/textkit/textkit/internal/selection"
	"github.com/textkit/textkit/internal/text"
)

// ErrOutOfRange mirrors spec.md §7's "OutOfRange" kind at the state
// boundary (e.g. a selection spec naming a position outside the document).
var ErrOutOfRange = errors.New("state: position out of range")

// EditorState is a frozen tuple of (doc, selection, facet values, field
// values, config) produced only by Config.Init / (*EditorState).Update
// (spec.md §4.6 "EditorState. A frozen tuple of...").
type EditorState struct {
	Doc         text.Text
	Selection   selection.Selection
	config      *Config
	facetValues map[FacetID]any
	fieldValues map[FieldID]any
}

// GetByID implements Getter, letting a Facet.Compute callback or external
// caller read another facet's resolved value out of this state.
func (s *EditorState) GetByID(id FacetID) any {
	return s.facetValues[id]
}

// Field reads a declared field's current value.
func (s *EditorState) Field(f *FieldDef) any {
	return s.fieldValues[f.id]
}

// Init builds the initial EditorState for a resolved Config: every field's
// create callback runs once, and every facet is resolved from its Of/Compute
// providers with no previous state to fall back on.
func (cfg *Config) Init(doc text.Text, sel selection.Selection) (*EditorState, error) {
	st := &EditorState{Doc: doc, Selection: sel, config: cfg}
	st.facetValues = cfg.resolveFacets(nil)

	fieldValues := make(map[FieldID]any, len(cfg.fields))
	for _, f := range cfg.fields {
		fieldValues[f.id] = f.create(st)
	}
	st.fieldValues = fieldValues
	return st, nil
}

func (s *EditorState) String() string {
	return fmt.Sprintf("EditorState(doc=%d units, %d fields, %d facets)", s.Doc.Length(), len(s.fieldValues), len(s.facetValues))
}

func logFieldFailure(id FieldID, err error) {
	corelog.Error("state field update panicked, keeping prior value", "field", id, "error", err)
}

func logComposeFailure(err error) {
	corelog.Warn("transaction spec rejected", "error", err)
}
