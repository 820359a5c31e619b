package expand

import (
	"go/ast"
	"go/token"
	"strconv"

	"github.com/sublee/caseval/internal/caseval/decl"
	"github.com/sublee/caseval/internal/caseval/diag"
	"github.com/sublee/caseval/internal/caseval/strategy"
	"github.com/sublee/caseval/internal/codefmt"
)

// Verb is the name a directive payload starts with.
const Verb = "extract"

// Request is a validated directive.
type Request struct {
	// Property is the value of Name.
	Property string

	// Target is the return type of the accessor.
	Target decl.Type

	Strategy strategy.Strategy

	// Default is the explicit default value. It is nil when omitted.
	Default *decl.Expr

	// After is the package position where a new element can be appended to
	// the directive body.
	After token.Pos
}

// ParseRequest validates the shape of a directive attached to d.
func ParseRequest(d decl.Decl, dir decl.Directive) (*Request, *diag.Diagnostic) {
	if dir.Err != nil {
		pos := dir.ErrPos()
		return nil, diag.NewMalformedDirective(pos, dir.End(), dir.ErrReason())
	}

	pos, end := dir.Span(dir.X)

	head := dir.X
	body, ok := dir.X.(*ast.CompositeLit)
	if ok {
		head = body.Type
	}

	var verb *ast.Ident
	var typeArgs []ast.Expr
	switch h := head.(type) {
	case *ast.Ident:
		verb = h
	case *ast.IndexExpr:
		verb, _ = h.X.(*ast.Ident)
		typeArgs = []ast.Expr{h.Index}
	case *ast.IndexListExpr:
		verb, _ = h.X.(*ast.Ident)
		typeArgs = h.Indices
	}
	if verb == nil || verb.Name != Verb {
		return nil, diag.NewMalformedDirective(pos, end, "expected "+Verb+"[T]{...}")
	}

	if !d.Sealed {
		return nil, diag.NewRequiresSumType(d.Pos, d.End)
	}

	if body == nil {
		return nil, diag.NewRequiresArguments(pos, end)
	}

	elts := keyedElements(body)

	nameExpr, ok := elts["Name"]
	if !ok {
		return nil, diag.NewRequiresPropertyName(pos, end)
	}
	namePos, nameEnd := dir.Span(nameExpr)
	lit, ok := ast.Unparen(nameExpr).(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return nil, diag.NewRequiresPropertyNameLiteral(namePos, nameEnd)
	}
	property, err := strconv.Unquote(lit.Value)
	if err != nil {
		return nil, diag.NewRequiresPropertyNameLiteral(namePos, nameEnd)
	}
	if !codefmt.IsIdentFragment(property) {
		return nil, diag.NewInvalidPropertyName(namePos, nameEnd, property)
	}

	s := strategy.Default
	if kindExpr, ok := elts["Kind"]; ok {
		if parsed, ok := strategy.Parse(kindExpr); ok {
			s = parsed
		}
	}

	if len(typeArgs) != 1 {
		return nil, diag.NewRequiresGenericType(pos, end)
	}

	req := &Request{
		Property: property,
		Target:   dir.TypeOf(typeArgs[0]),
		Strategy: s,
		After:    dir.Map(body.Elts[len(body.Elts)-1].End()),
	}
	if defExpr, ok := elts["Default"]; ok {
		def := dir.ExprOf(defExpr)
		req.Default = &def
	}
	return req, nil
}

// keyedElements indexes the keyed elements of a composite literal by key.
// Unkeyed elements are ignored and the first element wins for a repeated
// key.
func keyedElements(lit *ast.CompositeLit) map[string]ast.Expr {
	elts := make(map[string]ast.Expr)
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			continue
		}
		key, ok := kv.Key.(*ast.Ident)
		if !ok {
			continue
		}
		if _, dup := elts[key.Name]; !dup {
			elts[key.Name] = kv.Value
		}
	}
	return elts
}
