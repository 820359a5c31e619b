package decl

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"strings"
)

// Prefix starts every directive comment.
const Prefix = "//caseval:"

// Directive is one "//caseval:" comment line. Its payload is parsed as a Go
// expression in a file set of its own; [Directive.Map] translates positions
// in X back to the package.
type Directive struct {
	// Text is the payload following [Prefix].
	Text string

	// X is the parsed payload. It is nil when Err is set.
	X ast.Expr

	// Err is the syntax error of the payload.
	Err error

	// Imports maps the package names visible in the file of the directive to
	// their import paths.
	Imports map[string]string

	// Pos is the package position of the first byte of Text.
	Pos token.Pos

	fset *token.FileSet
}

// ParseDirective parses the payload of a directive whose first byte is at
// pos.
func ParseDirective(text string, pos token.Pos, imports map[string]string) Directive {
	d := Directive{Text: text, Imports: imports, Pos: pos, fset: token.NewFileSet()}

	x, err := parser.ParseExprFrom(d.fset, "", text, 0)
	if err != nil {
		d.Err = err
		return d
	}
	d.X = x
	return d
}

// IsDirective reports whether a comment is a directive.
func IsDirective(comment *ast.Comment) bool {
	return strings.HasPrefix(comment.Text, Prefix)
}

// FromComment parses a directive comment.
func FromComment(comment *ast.Comment, imports map[string]string) Directive {
	text := strings.TrimPrefix(comment.Text, Prefix)
	pos := comment.Slash + token.Pos(len(Prefix))
	return ParseDirective(text, pos, imports)
}

// Map translates a position in X to the package position. An invalid
// position maps to the start of the directive.
func (d Directive) Map(p token.Pos) token.Pos {
	if !p.IsValid() || !d.Pos.IsValid() {
		return d.Pos
	}
	return d.Pos + token.Pos(d.offset(p))
}

// Source returns the text of node as written in the directive.
func (d Directive) Source(node ast.Node) string {
	return d.Text[d.offset(node.Pos()):d.offset(node.End())]
}

// Span returns the package positions of node.
func (d Directive) Span(node ast.Node) (pos, end token.Pos) {
	return d.Map(node.Pos()), d.Map(node.End())
}

// ErrPos returns the package position of the syntax error.
func (d Directive) ErrPos() token.Pos {
	var list scanner.ErrorList
	if errors.As(d.Err, &list) && len(list) != 0 && d.Pos.IsValid() {
		return d.Pos + token.Pos(min(list[0].Pos.Offset, len(d.Text)))
	}
	return d.Pos
}

// ErrReason returns the message of the syntax error without its position.
func (d Directive) ErrReason() string {
	var list scanner.ErrorList
	if errors.As(d.Err, &list) && len(list) != 0 {
		return list[0].Msg
	}
	if d.Err != nil {
		return d.Err.Error()
	}
	return ""
}

// TypeOf describes a type expression of X.
func (d Directive) TypeOf(expr ast.Expr) Type {
	return TypeOf(d.fset, expr, d.Imports)
}

// ExprOf describes an expression of X as written.
func (d Directive) ExprOf(expr ast.Expr) Expr {
	return Expr{Text: d.Source(expr), Quals: QualsOf(expr, d.Imports)}
}

// End returns the package position just after the payload.
func (d Directive) End() token.Pos {
	if !d.Pos.IsValid() {
		return token.NoPos
	}
	return d.Pos + token.Pos(len(d.Text))
}

func (d Directive) offset(p token.Pos) int {
	file := d.fset.File(p)
	if file == nil {
		return 0
	}
	return file.Offset(p)
}
