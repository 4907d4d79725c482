package state

// Extension is a flattenable tree of facet inputs and field declarations
// (spec.md §6: "extensions are declared as a tree of
// (facet.of(value) | field.define(spec) | list of extensions)").
type Extension struct {
	providers []facetProvider
	fields    []*FieldDef
	nested    []Extension
}

// Extensions concatenates a list of extensions into one, mirroring how the
// source treats a plain array as an Extension.
func Extensions(exts ...Extension) Extension {
	return Extension{nested: exts}
}

// flatten walks the Extension tree in declaration order, appending every
// facet provider and field it finds to the given slices.
func (e Extension) flatten(providers *[]facetProvider, fields *[]*FieldDef) {
	*providers = append(*providers, e.providers...)
	*fields = append(*fields, e.fields...)
	for _, n := range e.nested {
		n.flatten(providers, fields)
	}
}
