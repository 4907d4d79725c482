package state

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/singleflight"
)

// ErrFacetCycle is raised when Facet.Compute dependencies form a cycle
// (spec.md §7 "FacetCycle").
var ErrFacetCycle = errors.New("state: facet dependency cycle")

type facetDef struct {
	static bool
}

// Config is the resolved extension graph (spec.md "EditorState.config").
// It groups facet inputs by facet, ordered by priority then declaration
// order, and topologically orders Compute-declared facets so each one's
// dependencies are resolved before it runs.
type Config struct {
	facets        map[FacetID]facetDef
	providers     map[FacetID][]facetProvider
	computedOrder []FacetID // topological order: computed facets and the facets they depend on
	fields        []*FieldDef

	// sf coalesces concurrent recomputation of the same facet against the
	// same state snapshot, so two observers racing to read a derived
	// value right after an update don't both pay for the combine.
	sf singleflight.Group
}

// ResolveConfig flattens ext and builds a Config, rejecting a cyclic
// Compute dependency graph (ErrFacetCycle).
func ResolveConfig(ext Extension) (*Config, error) {
	var providers []facetProvider
	var fields []*FieldDef
	ext.flatten(&providers, &fields)

	cfg := &Config{
		facets:    map[FacetID]facetDef{},
		providers: map[FacetID][]facetProvider{},
		fields:    fields,
	}

	deps := map[FacetID][]FacetID{}
	for _, p := range providers {
		id := p.facetID()
		cfg.providers[id] = append(cfg.providers[id], p)
		if cp, ok := p.(computeProvider); ok {
			if _, seen := deps[id]; !seen {
				deps[id] = nil
			}
			deps[id] = append(deps[id], cp.deps()...)
		}
	}
	for id, ps := range cfg.providers {
		sort.SliceStable(ps, func(i, j int) bool {
			if ps[i].priority() != ps[j].priority() {
				return ps[i].priority() < ps[j].priority()
			}
			return ps[i].order() < ps[j].order()
		})
		cfg.providers[id] = ps
		cfg.facets[id] = facetDef{static: ps[0].isStatic()}
	}

	order, err := topoSort(deps)
	if err != nil {
		return nil, err
	}
	cfg.computedOrder = order
	return cfg, nil
}

type computeProvider interface {
	deps() []FacetID
}

func topoSort(deps map[FacetID][]FacetID) ([]FacetID, error) {
	const (
		white = iota
		gray
		black
	)
	color := map[FacetID]int{}
	var order []FacetID
	var visit func(id FacetID) error
	visit = func(id FacetID) error {
		switch color[id] {
		case black:
			return nil
		case gray:
			return ErrFacetCycle
		}
		color[id] = gray
		for _, d := range deps[id] {
			if err := visit(d); err != nil {
				return err
			}
		}
		color[id] = black
		order = append(order, id)
		return nil
	}
	ids := make([]FacetID, 0, len(deps))
	for id := range deps {
		ids = append(ids, id)
	}
	for _, id := range ids {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// resolveFacets computes every facet's combined value, processing facets
// outside the Compute dependency graph first (no dependencies to wait on)
// and then the graph's facets in topological order, so a Compute callback
// reading another facet via Getter always sees an already-resolved value.
// A static facet keeps the previous state's value while the Config is the
// same, so its combine runs once per Config.
func (cfg *Config) resolveFacets(prevGetter Getter) map[FacetID]any {
	values := map[FacetID]any{}
	g := &liveGetter{values: values, prev: prevGetter}
	gen := snapshotKey(prevGetter)

	computed := make(map[FacetID]bool, len(cfg.computedOrder))
	for _, id := range cfg.computedOrder {
		computed[id] = true
	}

	prevState, _ := prevGetter.(*EditorState)
	reuseStatic := func(id FacetID) bool {
		if prevState == nil || prevState.config != cfg || !cfg.facets[id].static {
			return false
		}
		v, ok := prevState.facetValues[id]
		if ok {
			values[id] = v
		}
		return ok
	}

	for id, ps := range cfg.providers {
		if computed[id] || reuseStatic(id) {
			continue
		}
		values[id] = cfg.combineFacet(id, ps, g, gen)
	}
	for _, id := range cfg.computedOrder {
		if reuseStatic(id) {
			continue
		}
		values[id] = cfg.combineFacet(id, cfg.providers[id], g, gen)
	}
	return values
}

// snapshotKey identifies the EditorState a resolveFacets call is advancing
// from, so concurrent resolveFacets calls against the *same* snapshot share
// one singleflight key and actually coalesce. prevGetter is always either
// nil (Config.Init, one fixed key) or the *EditorState being updated
// (EditorState.update passes s itself) -- never a value freshly allocated
// per call, which would make every call its own singleflight group of one.
func snapshotKey(prevGetter Getter) string {
	if prevGetter == nil {
		return "init"
	}
	return fmt.Sprintf("%p", prevGetter)
}

func (cfg *Config) combineFacet(id FacetID, ps []facetProvider, g Getter, gen string) any {
	key := gen + ":" + id.String()
	v, _, _ := cfg.sf.Do(key, func() (any, error) {
		inputs := make([]any, len(ps))
		for i, p := range ps {
			inputs[i] = p.resolveValue(g)
		}
		return ps[0].combineFn()(inputs), nil
	})
	return v
}

// liveGetter exposes a partially-built values map to Compute callbacks; it
// falls back to the previous EditorState's value for a facet not yet
// present (only relevant if a Compute callback reaches outside the current
// resolution pass, which the topological ordering otherwise prevents).
type liveGetter struct {
	values map[FacetID]any
	prev   Getter
}

func (g *liveGetter) GetByID(id FacetID) any {
	if v, ok := g.values[id]; ok {
		return v
	}
	if g.prev != nil {
		return g.prev.GetByID(id)
	}
	return nil
}
