package change

import "errors"

// Error kinds from spec.md §7.
var (
	ErrInvalidChange  = errors.New("change: invalid change (from>to, negative length, or out of document range)")
	ErrInvalidCompose = errors.New("change: compose requires this.newLength == other.length")
)

// MapMode selects mapPos's tracking behavior (spec.md §4.2).
type MapMode int

const (
	ModeSimple MapMode = iota
	ModeTrackDel
	ModeTrackBefore
	ModeTrackAfter
)
