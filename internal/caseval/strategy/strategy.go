// Package strategy defines how a slot is located within a variant.
package strategy

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
)

// Strategy locates the slot an accessor reads from each variant. It is one
// of [Position], [NamedSlot] or [FirstMatchingType].
type Strategy interface {
	fmt.Stringer
	strategy()
}

// Position selects the slot at a 0-based index.
type Position struct{ Index int }

// NamedSlot selects the first slot with the label.
type NamedSlot struct{ Label string }

// FirstMatchingType selects the first slot whose type matches.
type FirstMatchingType struct{}

func (Position) strategy()          {}
func (NamedSlot) strategy()         {}
func (FirstMatchingType) strategy() {}

func (s Position) String() string        { return fmt.Sprintf("Position(%d)", s.Index) }
func (s NamedSlot) String() string       { return fmt.Sprintf("AssociatedValueName(%q)", s.Label) }
func (FirstMatchingType) String() string { return "FirstMatchingType" }

// Default is used when a directive has no Kind or an unparseable one.
var Default Strategy = FirstMatchingType{}

// Parse recognizes a strategy expression:
//
//	Position(0)
//	AssociatedValueName("title")
//	FirstMatchingType
//	FirstMatchingType()
//
// Each name may be qualified, as in caseval.Position(0). It reports false for
// anything else, including non-literal or negative indexes.
func Parse(expr ast.Expr) (Strategy, bool) {
	expr = ast.Unparen(expr)

	if name, ok := funcName(expr); ok && name == "FirstMatchingType" {
		return FirstMatchingType{}, true
	}

	call, ok := expr.(*ast.CallExpr)
	if !ok || call.Ellipsis.IsValid() {
		return nil, false
	}
	name, ok := funcName(call.Fun)
	if !ok {
		return nil, false
	}

	switch {
	case name == "FirstMatchingType" && len(call.Args) == 0:
		return FirstMatchingType{}, true

	case name == "Position" && len(call.Args) == 1:
		lit, ok := ast.Unparen(call.Args[0]).(*ast.BasicLit)
		if !ok || lit.Kind != token.INT {
			return nil, false
		}
		i, err := strconv.ParseInt(lit.Value, 0, 0)
		if err != nil || i < 0 {
			return nil, false
		}
		return Position{int(i)}, true

	case name == "AssociatedValueName" && len(call.Args) == 1:
		lit, ok := ast.Unparen(call.Args[0]).(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return nil, false
		}
		label, err := strconv.Unquote(lit.Value)
		if err != nil {
			return nil, false
		}
		return NamedSlot{label}, true
	}

	return nil, false
}

// funcName returns the name of an identifier optionally qualified by a
// package name.
func funcName(expr ast.Expr) (string, bool) {
	switch expr := ast.Unparen(expr).(type) {
	case *ast.Ident:
		return expr.Name, true
	case *ast.SelectorExpr:
		if _, ok := expr.X.(*ast.Ident); ok {
			return expr.Sel.Name, true
		}
	}
	return "", false
}
