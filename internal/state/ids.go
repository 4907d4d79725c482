// Package state implements the Facet/StateField extension system and the
// Transaction/EditorState update pipeline from spec.md §4.6 and §9's design
// note on dependency-resolved value slots.
package state

import "github.com/google/uuid"

// FacetID, FieldID, EffectType and AnnotationType are interned identifiers
// created once per declared facet/field/effect/annotation (spec.md §5:
// "interned identifiers... created at module load and never mutated
// thereafter"). Using uuid.New() rather than incrementing package-level
// counters means two independently loaded extension packages never
// collide, even if neither imports the other.
type FacetID uuid.UUID
type FieldID uuid.UUID
type EffectType uuid.UUID
type AnnotationType uuid.UUID

func newFacetID() FacetID               { return FacetID(uuid.New()) }
func newFieldID() FieldID               { return FieldID(uuid.New()) }
func newEffectType() EffectType         { return EffectType(uuid.New()) }
func newAnnotationType() AnnotationType { return AnnotationType(uuid.New()) }

// NewEffectType and NewAnnotationType let extension authors mint their own
// typed effect/annotation identifiers outside this package, mirroring how
// newFacetID/newFieldID are used internally.
func NewEffectType() EffectType         { return newEffectType() }
func NewAnnotationType() AnnotationType { return newAnnotationType() }

func (id FacetID) String() string      { return uuid.UUID(id).String() }
func (id FieldID) String() string      { return uuid.UUID(id).String() }
func (id EffectType) String() string   { return uuid.UUID(id).String() }
func (id AnnotationType) String() string { return uuid.UUID(id).String() }

// Priority orders facet inputs within the config resolver (spec.md §4.6,
// §9 "priority tags").
type Priority int

const (
	PriorityHighest Priority = iota
	PriorityHigh
	PriorityDefault
	PriorityLow
	PriorityLowest
)
