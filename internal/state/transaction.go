package state

import (
	"fmt"
	"reflect"

	"github.com/textkit/textkit/internal/change"
	"github.com/textkit/textkit/internal/coreconfig"
	"github.com/textkit/textkit/internal/selection"
)

// Effect is a typed opaque payload consumed by state fields; a field that
// doesn't recognize an effect's Type ignores it (spec.md §4.6 "Effects").
type Effect struct {
	Type  EffectType
	Value any
}

// Annotation is a typed tag attached to a transaction so extensions can
// distinguish causes without inspecting the changes themselves (spec.md
// §4.6 "Annotations").
type Annotation struct {
	Type  AnnotationType
	Value any
}

// ReconfigureEffectType swaps the active extension set mid-session
// (SPEC_FULL.md §3 "Transaction reconfigure effect"). Its Value is the new
// Extension; EditorState.Update re-resolves Config when it sees one.
var ReconfigureEffectType = NewEffectType()

// Reconfigure builds an Effect that replaces the session's Config.
func Reconfigure(ext Extension) Effect {
	return Effect{Type: ReconfigureEffectType, Value: ext}
}

// ChangeFilterFunc inspects (and may shrink or reject) the composed change
// for a pending update (spec.md §4.6 step 2).
type ChangeFilterFunc func(cs change.ChangeSet, state *EditorState) (change.ChangeSet, error)

// TransactionFilterFunc may append to or replace the spec list before
// EditorState.Update re-enters step 1 (spec.md §4.6 step 4).
type TransactionFilterFunc func(specs []TransactionSpec, state *EditorState) ([]TransactionSpec, error)

// ChangeFilters collects every declared change filter, in priority order.
// An extension contributes one with ChangeFilters.Of([]ChangeFilterFunc{fn}).
var ChangeFilters = DefineFacet(func(inputs [][]ChangeFilterFunc) []ChangeFilterFunc {
	var all []ChangeFilterFunc
	for _, in := range inputs {
		all = append(all, in...)
	}
	return all
})

// TransactionFilters collects every declared transaction filter, in
// priority order.
var TransactionFilters = DefineFacet(func(inputs [][]TransactionFilterFunc) []TransactionFilterFunc {
	var all []TransactionFilterFunc
	for _, in := range inputs {
		all = append(all, in...)
	}
	return all
})

// ErrorSink collects a handler invoked when a field update panics
// (spec.md §7 "FieldUpdateFailure... exception forwarded to sink facet").
// The highest-priority declared handler wins; with none declared, Update
// falls back to logging through corelog.
var ErrorSink = DefineFacet(func(inputs []func(error)) func(error) {
	if len(inputs) == 0 {
		return nil
	}
	return inputs[0]
})

// TransactionSpec is the caller-facing description of one pending update
// (spec.md §6 "TransactionSpec fields").
type TransactionSpec struct {
	Changes        []change.Spec
	ChangeSet      *change.ChangeSet // precomposed; takes precedence over Changes if set
	Selection      *selection.Selection
	Effects        []Effect
	Annotations    []Annotation
	UserEvent      string
	FilterDisabled bool // inverse of spec.md's "filter" flag, default false == filters run
	ScrollIntoView bool
}

// Transaction is the frozen record of one completed update (spec.md §4.6
// step 5 "Build transaction").
type Transaction struct {
	StartState  *EditorState
	Changes     change.ChangeSet
	Selection   selection.Selection
	Effects     []Effect
	Annotations []Annotation
	UserEvent   string
}

// IsUserEvent reports whether tr.UserEvent matches prefix dot-segmentwise
// (spec.md §4.6 "isUserEvent(prefix) returns true when prefix matches
// dot-segmentwise").
func (tr *Transaction) IsUserEvent(prefix string) bool {
	return isUserEventPrefix(tr.UserEvent, prefix)
}

func isUserEventPrefix(event, prefix string) bool {
	if event == prefix {
		return true
	}
	if len(event) <= len(prefix) {
		return false
	}
	return event[:len(prefix)] == prefix && event[len(prefix)] == '.'
}

// Update runs the deterministic transaction pipeline of spec.md §4.6 over
// one or more specs and returns the resulting state plus the Transaction
// record, or an error if the update is rejected (state unchanged).
func (s *EditorState) Update(specs ...TransactionSpec) (*EditorState, *Transaction, error) {
	return s.update(specs, 0)
}

func (s *EditorState) update(specs []TransactionSpec, tries int) (*EditorState, *Transaction, error) {
	// Step 1: resolve + compose.
	total := change.Empty(s.Doc.Length())
	var selSpec *selection.Selection
	var effects []Effect
	var annotations []Annotation
	var userEvent string

	for _, spec := range specs {
		cs, err := resolveSpecChanges(spec, total.LenB())
		if err != nil {
			logComposeFailure(err)
			return s, nil, fmt.Errorf("state: resolving transaction spec: %w", err)
		}
		total, err = total.Compose(cs)
		if err != nil {
			return s, nil, fmt.Errorf("state: composing transaction spec: %w", err)
		}
		if spec.Selection != nil {
			selSpec = spec.Selection
		}
		effects = append(effects, spec.Effects...)
		annotations = append(annotations, spec.Annotations...)
		if spec.UserEvent != "" {
			userEvent = spec.UserEvent
		}
	}

	// Step 2: change filters.
	filtersEnabled := true
	for _, spec := range specs {
		if spec.FilterDisabled {
			filtersEnabled = false
		}
	}
	if filtersEnabled {
		for _, filter := range Get(s, ChangeFilters) {
			filtered, err := filter(total, s)
			if err != nil {
				return s, nil, fmt.Errorf("state: change filter rejected transaction: %w", err)
			}
			total = filtered
		}
	}

	// Step 3: map or keep selection.
	var sel selection.Selection
	if selSpec != nil {
		sel = *selSpec
	} else {
		sel = s.Selection.Map(total)
	}

	// Step 4: transaction filters, bounded reentry.
	if filtersEnabled {
		for _, filter := range Get(s, TransactionFilters) {
			next, err := filter(specs, s)
			if err != nil {
				return s, nil, fmt.Errorf("state: transaction filter rejected transaction: %w", err)
			}
			if next != nil {
				if tries >= coreconfig.TransactionFilterMaxReentries {
					return s, nil, ErrTransactionFilterOverflow
				}
				return s.update(next, tries+1)
			}
		}
	}

	// Step 5: build transaction.
	tr := &Transaction{
		StartState:  s,
		Changes:     total,
		Selection:   sel,
		Effects:     effects,
		Annotations: annotations,
		UserEvent:   userEvent,
	}

	// Step 6: compute new state.
	newDoc, err := total.Apply(s.Doc)
	if err != nil {
		return s, nil, fmt.Errorf("state: applying transaction changes: %w", err)
	}

	cfg := s.config
	for _, eff := range effects {
		if eff.Type == ReconfigureEffectType {
			ext, _ := eff.Value.(Extension)
			newCfg, err := ResolveConfig(ext)
			if err != nil {
				return s, nil, fmt.Errorf("state: reconfigure effect: %w", err)
			}
			cfg = newCfg
		}
	}

	next := &EditorState{Doc: newDoc, Selection: sel, config: cfg}
	next.fieldValues = make(map[FieldID]any, len(cfg.fields))
	for _, f := range cfg.fields {
		prev, hadPrev := s.fieldValues[f.id]
		if !hadPrev {
			next.fieldValues[f.id] = f.create(next)
			continue
		}
		v, err := safeFieldUpdate(f, prev, tr)
		if err != nil {
			sink, _ := s.facetValues[ErrorSink.id].(func(error))
			if sink == nil {
				sink = func(e error) { logFieldFailure(f.id, e) }
			}
			sink(err)
			v = prev
		}
		next.fieldValues[f.id] = v
	}

	fresh := cfg.resolveFacets(s)
	next.facetValues = make(map[FacetID]any, len(fresh))
	for id, v := range fresh {
		if old, ok := s.facetValues[id]; ok && reflect.DeepEqual(old, v) {
			next.facetValues[id] = old // referential stability: an unchanged combined value keeps the old one
			continue
		}
		next.facetValues[id] = v
	}

	return next, tr, nil
}

func safeFieldUpdate(f *FieldDef, prev any, tr *Transaction) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrFieldUpdateFailure, r)
		}
	}()
	return f.update(prev, tr), nil
}

func resolveSpecChanges(spec TransactionSpec, docLen int) (change.ChangeSet, error) {
	if spec.ChangeSet != nil {
		return *spec.ChangeSet, nil
	}
	if len(spec.Changes) == 0 {
		return change.Empty(docLen), nil
	}
	return change.Of(spec.Changes, docLen)
}
