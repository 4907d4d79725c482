package state

// Facet declares a slot of type V produced by combining a list of typed
// inputs (spec.md §4.6, "A facet declares a slot of type V produced by
// combining a list of inputs of type Input").
//
// Facet is intentionally not generic over its stored representation inside
// Config: Go generics can't express a heterogeneous map of *Facet[V] for
// differing V without reaching for `any` at the boundary, exactly like
// CM6's own facets erase to untyped storage internally and recover the
// type at Get/of call sites. Static mirrors the source's `static: true`
// short-circuit (SPEC_FULL.md §3): a static facet's combine only ever runs
// once, since by construction its inputs never change across updates.
type Facet[V any] struct {
	id      FacetID
	combine func(inputs []V) V
	static  bool
}

// DefineFacet declares a new facet. combine reduces the (priority-ordered)
// list of provided inputs into the facet's value.
func DefineFacet[V any](combine func(inputs []V) V) *Facet[V] {
	return &Facet[V]{id: newFacetID(), combine: combine}
}

// DefineStaticFacet declares a facet whose combine function is invoked at
// most once per Config, since static facets by convention take inputs that
// cannot change between transactions (SPEC_FULL.md §3).
func DefineStaticFacet[V any](combine func(inputs []V) V) *Facet[V] {
	return &Facet[V]{id: newFacetID(), combine: combine, static: true}
}

// ID exposes the facet's interned identifier, e.g. for dependency lists
// passed to Facet.Compute.
func (f *Facet[V]) ID() FacetID { return f.id }

// facetProvider is the type-erased view ResolveConfig and Config operate
// on: every *Facet[V].Of/.Compute call produces one, so a Config can hold
// providers for many different V in one map without reaching for
// reflection at resolve time.
type facetProvider interface {
	facetID() FacetID
	priority() Priority
	order() int
	isStatic() bool
	// resolveValue produces this provider's contribution to its facet's
	// combine input list. A plain Of value ignores g; a Compute provider
	// calls its callback against g, which by the time resolveFacets
	// reaches a Compute-declared facet exposes every facet it depends on.
	resolveValue(g Getter) any
	// combineFn returns the facet's combine function erased to operate on
	// []any, recovering V via a type assertion per element. Any provider
	// for a given facet can produce this closure: they all close over the
	// same *Facet[V].
	combineFn() func(inputs []any) any
}

type facetValueProvider[V any] struct {
	facet *Facet[V]
	value V
	prio  Priority
	ord   int
}

func (p facetValueProvider[V]) facetID() FacetID   { return p.facet.id }
func (p facetValueProvider[V]) priority() Priority { return p.prio }
func (p facetValueProvider[V]) order() int         { return p.ord }
func (p facetValueProvider[V]) isStatic() bool     { return p.facet.static }

func (p facetValueProvider[V]) resolveValue(g Getter) any { return p.value }

func (p facetValueProvider[V]) combineFn() func(inputs []any) any {
	return facetCombineFn(p.facet)
}

// Of declares a static input value for this facet at the given priority
// (spec.md §9 "priority tags {highest, high, default, low, lowest}").
func (f *Facet[V]) Of(value V, priority ...Priority) Extension {
	prio := PriorityDefault
	if len(priority) > 0 {
		prio = priority[0]
	}
	return Extension{providers: []facetProvider{facetValueProvider[V]{facet: f, value: value, prio: prio, ord: nextOrder()}}}
}

type facetComputeProvider[V any] struct {
	facet      *Facet[V]
	dependsOn  []FacetID
	compute    func(Getter) V
	prio       Priority
	ord        int
}

func (p facetComputeProvider[V]) facetID() FacetID   { return p.facet.id }
func (p facetComputeProvider[V]) priority() Priority { return p.prio }
func (p facetComputeProvider[V]) order() int         { return p.ord }
func (p facetComputeProvider[V]) isStatic() bool     { return p.facet.static }

func (p facetComputeProvider[V]) resolveValue(g Getter) any { return p.compute(g) }

func (p facetComputeProvider[V]) combineFn() func(inputs []any) any {
	return facetCombineFn(p.facet)
}

// deps satisfies config.go's computeProvider interface, exposing the facet
// IDs this Compute declaration reads so ResolveConfig can topologically
// order facets and detect cycles.
func (p facetComputeProvider[V]) deps() []FacetID { return p.dependsOn }

func facetCombineFn[V any](f *Facet[V]) func(inputs []any) any {
	return func(inputs []any) any {
		vs := make([]V, len(inputs))
		for i, in := range inputs {
			vs[i] = in.(V)
		}
		return f.combine(vs)
	}
}

// Getter reads another facet's resolved value by ID, used by Compute
// callbacks (the facet-depends-on-facets case the resolver's topological
// ordering + cycle detection exists for).
type Getter interface {
	GetByID(id FacetID) any
}

// Compute declares a derived input computed from other facets' values
// (spec.md §9's dependency-resolved value slots). The resolver rejects a
// Config whose Compute declarations form a cycle (ErrFacetCycle).
func (f *Facet[V]) Compute(deps []FacetID, compute func(Getter) V, priority ...Priority) Extension {
	prio := PriorityDefault
	if len(priority) > 0 {
		prio = priority[0]
	}
	return Extension{providers: []facetProvider{facetComputeProvider[V]{facet: f, dependsOn: deps, compute: compute, prio: prio, ord: nextOrder()}}}
}

var orderCounter int

// nextOrder assigns a monotonically increasing declaration-order tiebreaker.
// It is package-level mutable state, but -- like the source's module-load
// identifier interning (spec.md §5) -- it is only ever written while
// building an Extension tree before any EditorState exists, never during
// concurrent use of a constructed state.
func nextOrder() int {
	orderCounter++
	return orderCounter
}

// Get reads a facet's resolved value out of a built Config/EditorState.
func Get[V any](g Getter, f *Facet[V]) V {
	v, _ := g.GetByID(f.id).(V)
	return v
}
