package change

// MapPos maps a position in the A document through this ChangeDesc/ChangeSet
// into the B document (spec.md §4.2, testable property 6).
//
// Any position within a change section's closed interval [fromA, toA] -
// including both edges - is resolved by assoc, not by strict "interior vs
// edge" distinction: assoc<0 keeps the pre-change side, assoc>=0 the
// post-change side. Only the track* modes distinguish open vs closed
// intervals, per spec.md property 6 ("trackDel nulls pos ∈ (f,t)", an open
// interval -- the edges f and t themselves are never deleted).
func (cd ChangeDesc) MapPos(pos, assoc int, mode MapMode) (int, bool) {
	off, bOff := 0, 0
	for i, s := range cd.sections {
		if s.isChange {
			delFrom, delTo := off, off+s.n
			if pos >= delFrom && pos <= delTo {
				switch mode {
				case ModeTrackDel:
					if pos > delFrom && pos < delTo {
						return 0, false
					}
				case ModeTrackBefore:
					if pos > delFrom && s.n > 0 {
						return 0, false
					}
				case ModeTrackAfter:
					if pos < delTo && s.n > 0 {
						return 0, false
					}
				}
				if assoc < 0 {
					return bOff, true
				}
				return bOff + s.insLen, true
			}
			off = delTo
			bOff += s.insLen
		} else {
			upper := off + s.n
			isLast := i == len(cd.sections)-1
			if pos >= off && (pos < upper || (isLast && pos == upper)) {
				return bOff + (pos - off), true
			}
			off = upper
			bOff += s.n
		}
	}
	return bOff, true
}

// MapPos is the ChangeSet-level convenience forwarding to its ChangeDesc.
func (cs ChangeSet) MapPos(pos, assoc int, mode MapMode) (int, bool) {
	return cs.ChangeDesc.MapPos(pos, assoc, mode)
}
