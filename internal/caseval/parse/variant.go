package parse

import (
	"go/ast"
	"go/types"

	"github.com/sublee/caseval/internal/caseval/decl"
	"github.com/sublee/caseval/internal/typeinfo"
)

// variantOf describes a type implementing the sealed interface iface.
func (p *Parser) variantOf(vs typeSpec, iface typeinfo.Type) decl.Variant {
	impl, _ := typeinfo.TypeOf(vs.obj.Type()).Implementer(iface)

	v := decl.Variant{
		Name: vs.obj.Name(),
		Type: impl.T,
		Pos:  vs.spec.Name.Pos(),
		End:  vs.spec.Name.End(),
	}

	if st, ok := ast.Unparen(vs.spec.Type).(*ast.StructType); ok {
		v.Struct = true
		v.Slots = p.fieldSlots(st, vs.imports)
		return v
	}

	if t := typeinfo.TypeOf(vs.obj.Type()); t.IsStruct() {
		// Defined from another struct type, as in "type T U".
		v.Struct = true
		v.Slots = p.typeSlots(t.Struct)
		return v
	}

	// A non-struct variant holds itself converted to its declared type.
	v.Slots = []decl.Slot{{
		Type: decl.TypeOf(p.pkg.Fset, vs.spec.Type, vs.imports),
		Pos:  vs.spec.Type.Pos(),
		End:  vs.spec.Type.End(),
	}}
	return v
}

// fieldSlots reads the slots of a struct type as written.
func (p *Parser) fieldSlots(st *ast.StructType, imports map[string]string) []decl.Slot {
	var slots []decl.Slot
	add := func(label string, typ ast.Expr, node ast.Node) {
		slots = append(slots, decl.Slot{
			Label:    label,
			Type:     decl.TypeOf(p.pkg.Fset, typ, imports),
			Position: len(slots),
			Pos:      node.Pos(),
			End:      node.End(),
		})
	}

	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			if label, ok := embeddedName(field.Type); ok {
				add(label, field.Type, field.Type)
			}
			continue
		}
		for _, name := range field.Names {
			if name.Name == "_" {
				continue
			}
			add(name.Name, field.Type, name)
		}
	}
	return slots
}

// typeSlots reads the slots of a struct type known only by its type.
func (p *Parser) typeSlots(st *types.Struct) []decl.Slot {
	var slots []decl.Slot
	for i := range st.NumFields() {
		field := st.Field(i)
		if field.Name() == "_" {
			continue
		}

		quals := make(map[string]string)
		name := types.TypeString(field.Type(), func(pkg *types.Package) string {
			if pkg == p.pkg.Types {
				return ""
			}
			quals[pkg.Name()] = pkg.Path()
			return pkg.Name()
		})
		typ := decl.Type{Name: name, Quals: quals}
		if ptr, ok := field.Type().(*types.Pointer); ok {
			typ.Inner = types.TypeString(ptr.Elem(), func(pkg *types.Package) string {
				if pkg == p.pkg.Types {
					return ""
				}
				return pkg.Name()
			})
		}
		if len(quals) == 0 {
			typ.Quals = nil
		}

		slots = append(slots, decl.Slot{
			Label:    field.Name(),
			Type:     typ,
			Position: len(slots),
			Pos:      field.Pos(),
			End:      field.Pos() + 1,
		})
	}
	return slots
}

// embeddedName returns the field name of an embedded field type.
//
//	T, *T, pkg.T, T[int] => T
func embeddedName(expr ast.Expr) (string, bool) {
	switch e := ast.Unparen(expr).(type) {
	case *ast.Ident:
		return e.Name, true
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name, true
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	}
	return "", false
}
