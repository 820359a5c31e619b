// Package decl describes the inputs of accessor expansion: a sealed interface
// with its variants and their slots, and the directives attached to it.
//
// Everything here is plain data read from a type-checked package. Types are
// compared by their gofmt source text, so two spellings of the same type
// through different aliases do not match.
package decl

import (
	"go/ast"
	"go/token"
	"go/types"
	"maps"

	"github.com/sublee/caseval/internal/codefmt"
)

// Type is a type expression in gofmt form. A pointer type is the nullable
// form of its element type.
type Type struct {
	// Name is the full type expression, e.g. "*float64".
	Name string

	// Inner is the element type of a pointer type, e.g. "float64". It is
	// empty when the type is not nullable.
	Inner string

	// Quals maps the package qualifiers used by Name to their import paths.
	Quals map[string]string
}

// Nullable reports whether the type is a pointer type.
func (t Type) Nullable() bool { return t.Inner != "" }

func (t Type) String() string { return t.Name }

// TypeOf describes the type expression expr. imports maps the package names
// visible in the file of expr to their import paths.
func TypeOf(fset *token.FileSet, expr ast.Expr, imports map[string]string) Type {
	expr = ast.Unparen(expr)
	t := Type{
		Name:  codefmt.FormatNode(fset, expr),
		Quals: QualsOf(expr, imports),
	}
	if star, ok := expr.(*ast.StarExpr); ok {
		t.Inner = codefmt.FormatNode(fset, ast.Unparen(star.X))
	}
	return t
}

// Expr is an expression written by the user, such as a default value.
type Expr struct {
	Text  string
	Quals map[string]string
}

func (e Expr) String() string { return e.Text }

// QualsOf collects the package qualifiers used in node which are found in
// imports.
func QualsOf(node ast.Node, imports map[string]string) map[string]string {
	var quals map[string]string
	ast.Inspect(node, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		id, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}
		if path, ok := imports[id.Name]; ok {
			if quals == nil {
				quals = make(map[string]string)
			}
			quals[id.Name] = path
		}
		return true
	})
	return quals
}

// MergeQuals merges the qualifiers of ms into one map.
func MergeQuals(ms ...map[string]string) map[string]string {
	quals := make(map[string]string)
	for _, m := range ms {
		maps.Copy(quals, m)
	}
	return quals
}

// Slot is a readable value of a variant.
type Slot struct {
	// Label is the field name. It is empty for the single slot of a
	// non-struct variant.
	Label string

	Type     Type
	Position int

	Pos, End token.Pos
}

// Variant is a type implementing a sealed interface.
type Variant struct {
	// Name is the type name without any pointer.
	Name string

	// Type is the type stored in the interface: the named type, or a pointer
	// to it when the methods have pointer receivers.
	Type types.Type

	// Struct reports whether slots are read as fields. Otherwise the variant
	// has exactly one slot which is read by a conversion.
	Struct bool

	Slots []Slot

	Pos, End token.Pos
}

// Labels returns the labels of the slots in order. Unlabelled slots are
// skipped.
func (v Variant) Labels() []string {
	var labels []string
	for _, s := range v.Slots {
		if s.Label != "" {
			labels = append(labels, s.Label)
		}
	}
	return labels
}

// Decl is a type declaration carrying directives.
type Decl struct {
	Name string

	// Obj is the declared type name.
	Obj *types.TypeName

	// Sealed reports whether the type is a sealed interface. Variants is
	// only populated for sealed interfaces.
	Sealed   bool
	Variants []Variant

	Directives []Directive

	Pos, End token.Pos
}

// Exported reports whether accessors of the type should be exported.
func (d Decl) Exported() bool { return token.IsExported(d.Name) }
