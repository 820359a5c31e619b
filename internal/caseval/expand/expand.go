// Package expand turns a directive into an accessor of a sealed interface.
//
// For each variant in declaration order the engine picks one of three
// outcomes: read a slot, return the default value, or fail. The first failing
// variant aborts the whole request with exactly one diagnostic.
package expand

import (
	"go/token"
	"maps"

	"github.com/sublee/caseval/internal/caseval/decl"
	"github.com/sublee/caseval/internal/caseval/diag"
	"github.com/sublee/caseval/internal/caseval/match"
	"github.com/sublee/caseval/internal/caseval/strategy"
	"github.com/sublee/caseval/internal/codefmt"
	"github.com/sublee/caseval/internal/lcs"
)

// ArmKind tells how an [Arm] produces its result.
type ArmKind int

const (
	// Bind reads a slot into a fresh local and returns it.
	Bind ArmKind = iota

	// Default returns the default value because no slot qualifies.
	Default

	// NoPayload returns the default value for a variant without slots.
	NoPayload
)

func (k ArmKind) String() string {
	switch k {
	case Bind:
		return "bind"
	case Default:
		return "default"
	case NoPayload:
		return "no-payload"
	}
	return "unknown"
}

// Arm is one case of the generated type switch.
type Arm struct {
	Kind    ArmKind
	Variant decl.Variant

	// Slot and Binding are set for Bind arms. Promote reports that the
	// binding is returned by address.
	Slot    decl.Slot
	Binding string
	Promote bool

	// Value is set for Default and NoPayload arms.
	Value decl.Expr
}

// Binds reports whether the arm reads the switched value.
func (a Arm) Binds() bool { return a.Kind == Bind }

// Accessor is a generated function returning one value of every variant.
type Accessor struct {
	// Name is the function name, e.g. "CoordinateZ".
	Name string

	// Property is the Name of the directive, e.g. "z".
	Property string

	// SumType is the name of the sealed interface.
	SumType string

	ReturnType decl.Type
	Strategy   strategy.Strategy

	// Default is the default value in effect, explicit or implied.
	Default *decl.Expr

	// Arms has one arm per variant in declaration order.
	Arms []Arm

	// Pos is the position of the directive.
	Pos token.Pos
}

// Exported reports whether the accessor is exported.
func (acc *Accessor) Exported() bool { return token.IsExported(acc.Name) }

// Binds reports whether any arm reads the switched value.
func (acc *Accessor) Binds() bool {
	for _, arm := range acc.Arms {
		if arm.Binds() {
			return true
		}
	}
	return false
}

// Names mints identifiers for accessors of one package.
type Names struct {
	// Package holds the package-level names including the accessors
	// generated so far.
	Package codefmt.NS

	// Locals holds the names the accessors of one sealed interface must not
	// use for bindings. It is shared by all directives of the type.
	Locals codefmt.NS
}

// Param is the name of the parameter of every accessor.
const Param = "in"

// NewNames creates [Names] for the package scope pkg. Call [Names.ForType]
// to get the names for each sealed interface.
func NewNames(pkg codefmt.NS) Names {
	return Names{Package: pkg}
}

// ForType returns Names whose Locals start from the package names, the
// predeclared identifiers and [Param].
func (n Names) ForType() Names {
	locals := codefmt.NewNS(nil)
	maps.Copy(locals, n.Package)
	locals.ReserveUniverse().Reserve(Param)
	return Names{Package: n.Package, Locals: locals}
}

// Expand builds the accessor requested by dir on d. Names are reserved in
// names only when the expansion succeeds.
func Expand(d decl.Decl, dir decl.Directive, names Names) (*Accessor, *diag.Diagnostic) {
	req, dg := ParseRequest(d, dir)
	if dg != nil {
		return nil, dg
	}

	def := req.Default
	if def == nil && req.Target.Nullable() {
		def = &decl.Expr{Text: "nil"}
	}

	insertDefault := func() *diag.Fix {
		return diag.InsertDefault(req.After, req.Target)
	}

	if names.Locals == nil {
		names = names.ForType()
	}
	locals := maps.Clone(names.Locals)
	base := codefmt.LowerCamel(req.Property)

	arms := make([]Arm, 0, len(d.Variants))
	for _, v := range d.Variants {
		if len(v.Slots) == 0 {
			if def == nil {
				return nil, diag.NewNoAssociatedValues(v.Pos, v.End, v.Name).WithFix(insertDefault())
			}
			arms = append(arms, Arm{Kind: NoPayload, Variant: v, Value: *def})
			continue
		}

		switch r := match.Resolve(v, req.Strategy, req.Target).(type) {
		case match.Found:
			slot := v.Slots[r.Index]
			arms = append(arms, Arm{
				Kind:    Bind,
				Variant: v,
				Slot:    slot,
				Binding: locals.Name(base),
				Promote: match.Promotes(slot.Type, req.Target),
			})

		case match.NotFound:
			if def != nil {
				arms = append(arms, Arm{Kind: Default, Variant: v, Value: *def})
				continue
			}
			return nil, notFound(v, req).WithFix(insertDefault())

		case match.Mismatch:
			return nil, mismatch(v, v.Slots[r.Index], req)
		}
	}

	name := d.Name + codefmt.UpperCamel(req.Property)
	if names.Package.Has(name) {
		pos, end := dir.Span(dir.X)
		return nil, diag.NewAccessorRedeclared(pos, end, name)
	}
	if names.Package != nil {
		names.Package.Reserve(name)
	}
	maps.Copy(names.Locals, locals)

	return &Accessor{
		Name:       name,
		Property:   req.Property,
		SumType:    d.Name,
		ReturnType: req.Target,
		Strategy:   req.Strategy,
		Default:    def,
		Arms:       arms,
		Pos:        dir.Pos,
	}, nil
}

// notFound reports a variant without a qualifying slot.
func notFound(v decl.Variant, req *Request) *diag.Diagnostic {
	switch s := req.Strategy.(type) {
	case strategy.Position:
		return diag.NewNoValueAtIndex(v.Pos, v.End, v.Name, s.Index)

	case strategy.NamedSlot:
		dg := diag.NewNoAssociatedValueForName(v.Pos, v.End, s.Label, v.Name)
		if label, ok := lcs.Closest(s.Label, v.Labels()); ok {
			for _, slot := range v.Slots {
				if slot.Label == label {
					dg.WithRelated(slot.Pos, slot.End, "did you mean `%s`?", label)
					break
				}
			}
		}
		return dg
	}
	return diag.NewNoMatchingType(v.Pos, v.End, req.Target, v.Name)
}

// mismatch reports a slot pinned by the strategy having another type.
func mismatch(v decl.Variant, slot decl.Slot, req *Request) *diag.Diagnostic {
	if s, ok := req.Strategy.(strategy.NamedSlot); ok {
		return diag.NewTypeMismatchNamed(slot.Pos, slot.End, s.Label, v.Name)
	}
	return diag.NewTypeMismatch(slot.Pos, slot.End, v.Name, slot.Position)
}
