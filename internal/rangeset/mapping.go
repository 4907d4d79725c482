package rangeset

import "github.com/textkit/textkit/internal/change"

func clampSide(side int) int {
	if side < 0 {
		return -1
	}
	return 1
}

// changeRegion is one non-identity section of a ChangeSet on the A (old)
// coordinate axis, plus the cumulative B-A length delta of every section up
// to and including it.
type changeRegion struct {
	fromA, toA int
	afterShift int
}

func collectRegions(changes change.ChangeSet) []changeRegion {
	var regions []changeRegion
	shift := 0
	changes.Desc().IterChanges(func(r change.DescRange) {
		shift += (r.ToB - r.FromB) - (r.ToA - r.FromA)
		regions = append(regions, changeRegion{fromA: r.FromA, toA: r.ToA, afterShift: shift})
	})
	return regions
}

// chunkBounds returns the [from, to] span actually covered by a chunk's
// ranges (ranges needn't nest, so the max To can come from any entry).
func chunkBounds(c chunk) (from, to int) {
	from, to = c.ranges[0].From, c.ranges[0].To
	for _, r := range c.ranges[1:] {
		if r.To > to {
			to = r.To
		}
	}
	return from, to
}

// overlapShift reports whether any change touches [cFrom, cTo], and when it
// doesn't, the constant shift (from changes entirely before the chunk) that
// applies to every position in it.
func overlapShift(regions []changeRegion, cFrom, cTo int) (shift int, overlaps bool) {
	for _, rg := range regions {
		if rg.toA < cFrom {
			shift = rg.afterShift
			continue
		}
		if rg.fromA <= cTo {
			overlaps = true
		}
		break
	}
	return shift, overlaps
}

// Map bulk-maps every range through changes (spec.md §4.3, scenario S3).
// Chunks whose ranges lie entirely outside every changed region need no
// remapping (or, at most, a constant position shift) and are preserved --
// reused verbatim when the shift is zero, otherwise rebuilt by a plain
// offset add -- rather than rebuilding the whole set through Of. Only
// chunks a change actually overlaps pay for per-range change.MapPos calls
// and rechunking.
func (s Set) Map(changes change.ChangeSet) Set {
	if changes.Desc().IsEmpty() {
		return Set{length: changes.LenB(), chunks: s.chunks, maxPoint: s.maxPoint, cfg: s.cfg}
	}

	regions := collectRegions(changes)
	newLen := changes.LenB()

	var newChunks []chunk
	var dirty []Range
	maxPoint := 0
	notePoint := func(r Range) {
		if r.Value != nil && r.Value.Point() {
			if l := r.To - r.From; l > maxPoint {
				maxPoint = l
			}
		}
	}
	flushDirty := func() {
		if len(dirty) == 0 {
			return
		}
		sortRanges(dirty)
		newChunks = append(newChunks, chunkify(dirty, s.cfg)...)
		for _, r := range dirty {
			notePoint(r)
		}
		dirty = nil
	}

	for _, c := range s.chunks {
		if len(c.ranges) == 0 {
			continue
		}
		cFrom, cTo := chunkBounds(c)
		shift, overlaps := overlapShift(regions, cFrom, cTo)

		if !overlaps {
			flushDirty()
			if shift == 0 {
				newChunks = append(newChunks, c)
				for _, r := range c.ranges {
					notePoint(r)
				}
				continue
			}
			shifted := make([]Range, len(c.ranges))
			for i, r := range c.ranges {
				shifted[i] = Range{From: r.From + shift, To: r.To + shift, Value: r.Value}
				notePoint(shifted[i])
			}
			newChunks = append(newChunks, chunk{ranges: shifted})
			continue
		}

		for _, r := range c.ranges {
			mode := ModeSimple
			if r.Value != nil {
				mode = r.Value.MapMode()
			}
			assocFrom, assocTo := -1, 1
			if r.Value != nil {
				assocFrom = clampSide(r.Value.StartSide())
				assocTo = clampSide(r.Value.EndSide())
			}
			nf, okf := changes.MapPos(r.From, assocFrom, mode.toChangeMode())
			nt, okt := changes.MapPos(r.To, assocTo, mode.toChangeMode())
			if !okf || !okt {
				continue
			}
			if nt < nf {
				nt = nf
			}
			dirty = append(dirty, Range{From: nf, To: nt, Value: r.Value})
		}
	}
	flushDirty()

	return Set{length: newLen, chunks: newChunks, maxPoint: maxPoint, cfg: s.cfg}
}
