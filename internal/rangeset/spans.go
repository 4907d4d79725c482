package rangeset

// SpanIterator receives each non-overlapping segment produced by Spans,
// plus the set of values active across it (spec.md §4.3 "spans").
type SpanIterator interface {
	Span(from, to int, active []Value)
	Point(from, to int, value Value)
}

// Spans flattens a stack of sets into non-overlapping segments across
// [from, to), calling iterator.Span for plain runs and iterator.Point for
// point-valued ranges at least minPointSize units long (zero-length points
// are always reported via Point regardless of minPointSize).
func Spans(sets []Set, from, to int, iterator SpanIterator, minPointSize int) {
	type edge struct {
		pos   int
		start bool
		r     Range
	}
	var edges []edge
	for _, s := range sets {
		s.Between(from, to, func(r Range) bool {
			f, t := clamp(r.From, from, to), clamp(r.To, from, to)
			if r.Value != nil && r.Value.Point() {
				if t-f >= minPointSize || f == t {
					edges = append(edges, edge{pos: f, start: true, r: Range{From: f, To: t, Value: r.Value}})
				}
				return true
			}
			edges = append(edges, edge{pos: f, start: true, r: Range{From: f, To: t, Value: r.Value}})
			edges = append(edges, edge{pos: t, start: false, r: Range{From: f, To: t, Value: r.Value}})
			return true
		})
	}

	boundarySet := map[int]bool{from: true, to: true}
	var points []Range
	for _, e := range edges {
		if e.r.Value != nil && e.r.Value.Point() {
			points = append(points, e.r)
			continue
		}
		boundarySet[e.pos] = true
	}
	positions := make([]int, 0, len(boundarySet))
	for p := range boundarySet {
		positions = append(positions, p)
	}
	sortInts(positions)

	for i := 0; i+1 < len(positions); i++ {
		segFrom, segTo := positions[i], positions[i+1]
		if segFrom >= segTo {
			continue
		}
		var active []Value
		for _, s := range sets {
			s.Between(segFrom, segTo, func(r Range) bool {
				if r.Value == nil || r.Value.Point() {
					return true
				}
				if r.From <= segFrom && r.To >= segTo {
					active = append(active, r.Value)
				}
				return true
			})
		}
		iterator.Span(segFrom, segTo, active)
	}
	for _, p := range points {
		iterator.Point(p.From, p.To, p.Value)
	}
}
