package text

import "errors"

// ErrOutOfRange is returned by Line, LineAt, Slice and SliceString when a
// position or line number falls outside the document (spec.md §7).
var ErrOutOfRange = errors.New("text: position out of range")

// ErrEmptyInput is returned by Of when given an empty line list (spec.md §7).
var ErrEmptyInput = errors.New("text: Of requires at least one line")
