// Package match decides which slot of a variant satisfies an accessor.
package match

import (
	"fmt"

	"github.com/sublee/caseval/internal/caseval/decl"
	"github.com/sublee/caseval/internal/caseval/strategy"
)

// Types reports whether a slot of type slot can be returned as target. It
// holds when both spell the same type, or when target is a pointer to the
// slot type. A pointer slot is never dereferenced and no conversion is
// attempted.
func Types(slot, target decl.Type) bool {
	return slot.Name == target.Name || target.Nullable() && slot.Name == target.Inner
}

// Promotes reports whether returning a slot as target requires taking its
// address.
func Promotes(slot, target decl.Type) bool {
	return slot.Name != target.Name && target.Nullable() && slot.Name == target.Inner
}

// Resolution is the outcome of [Resolve]. It is one of [Found], [NotFound] or
// [Mismatch].
type Resolution interface {
	fmt.Stringer
	resolution()
}

// Found is the index of the chosen slot.
type Found struct{ Index int }

// NotFound means that no slot qualifies. A default value may stand in.
type NotFound struct{}

// Mismatch means that the slot the strategy pinned has another type. A
// default value cannot repair it.
type Mismatch struct{ Index int }

func (Found) resolution()    {}
func (NotFound) resolution() {}
func (Mismatch) resolution() {}

func (r Found) String() string    { return fmt.Sprintf("found at %d", r.Index) }
func (NotFound) String() string   { return "not found" }
func (r Mismatch) String() string { return fmt.Sprintf("mismatch at %d", r.Index) }

// Resolve finds the slot of v to return as target under s.
func Resolve(v decl.Variant, s strategy.Strategy, target decl.Type) Resolution {
	switch s := s.(type) {
	case strategy.Position:
		if s.Index >= len(v.Slots) {
			return NotFound{}
		}
		if !Types(v.Slots[s.Index].Type, target) {
			return Mismatch{s.Index}
		}
		return Found{s.Index}

	case strategy.NamedSlot:
		for i, slot := range v.Slots {
			if slot.Label != s.Label {
				continue
			}
			if !Types(slot.Type, target) {
				return Mismatch{i}
			}
			return Found{i}
		}
		return NotFound{}

	case strategy.FirstMatchingType:
		for i, slot := range v.Slots {
			if Types(slot.Type, target) {
				return Found{i}
			}
		}
		return NotFound{}
	}

	panic(fmt.Sprintf("unknown strategy %T", s))
}
