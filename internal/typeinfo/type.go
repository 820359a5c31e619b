package typeinfo

import "go/types"

// Type describes a type information. It holds information of [types.Type] that
// is necessary to recognize sealed interfaces and their variants.
type Type struct {
	T types.Type

	Struct    *types.Struct
	Interface *types.Interface
	Pointer   *types.Pointer
	Named     *types.Named

	Elem *Type
}

func (t Type) String() string { return t.T.String() }

func (t Type) IsStruct() bool    { return t.Struct != nil }
func (t Type) IsInterface() bool { return t.Interface != nil }
func (t Type) IsPointer() bool   { return t.Pointer != nil }
func (t Type) IsNamed() bool     { return t.Named != nil }

// TypeOf inspects the given type and returns a new [Type]. Types which play
// no role in sealed interfaces, such as basic types or slices, are described
// only by T.
func TypeOf(t types.Type) Type {
	switch tt := types.Unalias(t).(type) {
	case *types.Struct:
		return Type{T: t, Struct: tt}
	case *types.Interface:
		return Type{T: t, Interface: tt}
	case *types.Pointer:
		elem := TypeOf(tt.Elem())
		return Type{T: t, Pointer: tt, Elem: &elem}
	case *types.Named:
		info := TypeOf(tt.Underlying())
		info.T = t
		info.Named = tt
		return info
	}
	return Type{T: t}
}

// Ref returns the pointer type of the type. For type of X, it returns type of
// *X.
func (t Type) Ref() Type {
	return TypeOf(types.NewPointer(t.T))
}

// Deref returns the element type if the type is a pointer. For type of *X, it
// returns type of X. If the type is not a pointer, it returns the type itself.
func (t Type) Deref() Type {
	if t.IsPointer() {
		return (*t.Elem).Deref()
	}
	return t
}

// IsSealed reports whether the type can act as a sealed interface: a named,
// non-generic interface type with at least one method. Types with an empty
// method set would be implemented by everything.
func (t Type) IsSealed() bool {
	if !t.IsNamed() || !t.IsInterface() || t.IsGeneric() {
		return false
	}
	return t.Interface.NumMethods() != 0
}

// Implementer reports whether t is a variant of the sealed interface iface.
// It returns t when its value type implements iface, or *t when only its
// pointer type does. Interfaces, generic types and unnamed types are never
// variants.
func (t Type) Implementer(iface Type) (Type, bool) {
	if !iface.IsInterface() {
		return Type{}, false
	}
	if t.IsInterface() || t.IsGeneric() || !t.IsNamed() {
		return Type{}, false
	}

	if types.AssertableTo(iface.Interface, t.Named) {
		return t, true
	}
	if ref := t.Ref(); types.AssertableTo(iface.Interface, ref.Pointer) {
		return ref, true
	}
	return Type{}, false
}

// IsGeneric reports whether the type is generic or has any generic type
// parameters. Even though the type has type parameters, if all type arguments
// are concrete types, it returns false.
func (t Type) IsGeneric() bool {
	return isGeneric(t.T)
}

func isGeneric(t types.Type) bool {
	switch t := types.Unalias(t).(type) {
	case *types.Named:
		if t.TypeParams().Len() == 0 {
			// No type parameters
			// e.g., Foo
			return false
		}

		targs := t.TypeArgs()
		if targs.Len() == 0 {
			// Have type parameters but no arguments
			// e.g., Foo[T]
			return true
		}

		for i := 0; i < targs.Len(); i++ {
			if isGeneric(targs.At(i)) {
				// Some type argument is generic
				// e.g., Foo[int, T]
				return true
			}
		}
	case *types.Struct:
		for f := range t.Fields() {
			if isGeneric(f.Type()) {
				return true
			}
		}
	case *types.Interface:
		for m := range t.Methods() {
			if isGeneric(m.Type()) {
				return true
			}
		}
	case *types.Signature:
		return t.TypeParams().Len() != 0
	case *types.TypeParam:
		return true
	}
	return false
}
