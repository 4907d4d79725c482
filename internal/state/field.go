package state

// FieldDef declares a value computed from (state, transaction) and carried
// forward across updates (spec.md §4.6 "a field declares a value computed
// from (state, transaction)").
type FieldDef struct {
	id     FieldID
	create func(*EditorState) any
	update func(prev any, tr *Transaction) any
}

// DefineField declares a new field. create computes the field's initial
// value for a freshly constructed EditorState; update derives the next
// value from the previous one and the transaction being applied.
func DefineField(create func(*EditorState) any, update func(prev any, tr *Transaction) any) *FieldDef {
	return &FieldDef{id: newFieldID(), create: create, update: update}
}

// ID exposes the field's interned identifier.
func (f *FieldDef) ID() FieldID { return f.id }

// Extension wraps the field declaration so it can be passed to
// ResolveConfig alongside facet inputs.
func (f *FieldDef) Extension() Extension {
	return Extension{fields: []*FieldDef{f}}
}

// GetField reads a field's current value out of an EditorState.
func GetField[V any](state *EditorState, f *FieldDef) V {
	v, _ := state.fieldValues[f.id].(V)
	return v
}
