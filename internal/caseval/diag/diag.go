// Package diag is the catalog of errors reported for caseval directives.
//
// Each [Diagnostic] points at source code and may carry one suggested [Fix].
// The package only renders diagnostics. Whether a fix applies is decided by
// the caller.
package diag

import (
	"fmt"
	"go/token"

	"github.com/sublee/caseval/internal/caseval/decl"
)

// Kind identifies a diagnostic in the catalog.
type Kind int

const (
	RequiresSumType Kind = iota + 1
	RequiresArguments
	RequiresPropertyName
	RequiresPropertyNameLiteral
	RequiresGenericType
	NoValueAtIndex
	NoMatchingType
	NoAssociatedValues
	NoAssociatedValueForName
	TypeMismatch
	TypeMismatchNamed
	MalformedDirective
	InvalidPropertyName
	AccessorRedeclared
)

var kindNames = map[Kind]string{
	RequiresSumType:             "RequiresSumType",
	RequiresArguments:           "RequiresArguments",
	RequiresPropertyName:        "RequiresPropertyName",
	RequiresPropertyNameLiteral: "RequiresPropertyNameLiteral",
	RequiresGenericType:         "RequiresGenericType",
	NoValueAtIndex:              "NoValueAtIndex",
	NoMatchingType:              "NoMatchingType",
	NoAssociatedValues:          "NoAssociatedValues",
	NoAssociatedValueForName:    "NoAssociatedValueForName",
	TypeMismatch:                "TypeMismatch",
	TypeMismatchNamed:           "TypeMismatchNamed",
	MalformedDirective:          "MalformedDirective",
	InvalidPropertyName:         "InvalidPropertyName",
	AccessorRedeclared:          "AccessorRedeclared",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// subject starts every message.
const subject = "'caseval:extract' directive"

// Diagnostic is a located error with an optional fix.
type Diagnostic struct {
	Kind    Kind
	Message string
	Fix     *Fix
	Related []Related

	pos, end token.Pos
}

// Error implements the error interface.
func (d *Diagnostic) Error() string { return d.Message }

// Pos returns the start of the code the diagnostic points at.
func (d *Diagnostic) Pos() token.Pos { return d.pos }

// End returns the end of the code the diagnostic points at. It may be
// invalid.
func (d *Diagnostic) End() token.Pos { return d.end }

// Related is an additional note attached to a diagnostic.
type Related struct {
	Pos, End token.Pos
	Message  string
}

// Fix is a suggested change to the source code.
type Fix struct {
	Message string
	Edits   []Edit
}

// Edit replaces the source between Pos and End with NewText. Pos equals End
// for an insertion.
type Edit struct {
	Pos, End token.Pos
	NewText  string
}

// InsertDefault suggests inserting a Default element of type typ right after
// the position after, which is the end of the last element of the directive
// body. The placeholder *new(T) is a valid expression of any type T.
func InsertDefault(after token.Pos, typ decl.Type) *Fix {
	return &Fix{
		Message: "Insert default value",
		Edits: []Edit{{
			Pos:     after,
			End:     after,
			NewText: fmt.Sprintf(", Default: *new(%s)", typ.Name),
		}},
	}
}

func newf(kind Kind, pos, end token.Pos, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		Message: subject + " " + fmt.Sprintf(format, args...),
		pos:     pos,
		end:     end,
	}
}

// WithFix attaches a fix to the diagnostic.
func (d *Diagnostic) WithFix(fix *Fix) *Diagnostic {
	d.Fix = fix
	return d
}

// WithRelated attaches a note to the diagnostic.
func (d *Diagnostic) WithRelated(pos, end token.Pos, format string, args ...any) *Diagnostic {
	d.Related = append(d.Related, Related{pos, end, fmt.Sprintf(format, args...)})
	return d
}

// NewRequiresSumType reports a directive attached to a type that is not a sealed interface.
func NewRequiresSumType(pos, end token.Pos) *Diagnostic {
	return newf(RequiresSumType, pos, end, "can only be applied to a sealed interface")
}

// NewRequiresArguments reports a directive with no arguments.
func NewRequiresArguments(pos, end token.Pos) *Diagnostic {
	return newf(RequiresArguments, pos, end, "requires arguments")
}

// NewRequiresPropertyName reports a directive missing its `Name` argument.
func NewRequiresPropertyName(pos, end token.Pos) *Diagnostic {
	return newf(RequiresPropertyName, pos, end, "requires `Name` argument")
}

// NewRequiresPropertyNameLiteral reports a `Name` argument that is not a string literal.
func NewRequiresPropertyNameLiteral(pos, end token.Pos) *Diagnostic {
	return newf(RequiresPropertyNameLiteral, pos, end, "argument `Name` must be a string literal")
}

// NewRequiresGenericType reports a computed property without a type argument.
func NewRequiresGenericType(pos, end token.Pos) *Diagnostic {
	return newf(RequiresGenericType, pos, end, "requires a generic type for the computed property")
}

// NewNoValueAtIndex reports a variant with no slot at the extracted index.
func NewNoValueAtIndex(pos, end token.Pos, variant string, index int) *Diagnostic {
	return newf(NoValueAtIndex, pos, end, "could not find an associated value for `%s` at index %d. Consider using a default value.", variant, index)
}

// NewNoMatchingType reports a variant with no slot of the extracted type.
func NewNoMatchingType(pos, end token.Pos, typ decl.Type, variant string) *Diagnostic {
	return newf(NoMatchingType, pos, end, "found no associated value of type %s in `%s`. Consider using a default value.", typ.Name, variant)
}

// NewNoAssociatedValues reports a variant with no slots at all.
func NewNoAssociatedValues(pos, end token.Pos, variant string) *Diagnostic {
	return newf(NoAssociatedValues, pos, end, "could not find associated values for `%s`. Consider using a default value.", variant)
}

// NewNoAssociatedValueForName reports a variant with no slot of the extracted label.
func NewNoAssociatedValueForName(pos, end token.Pos, label, variant string) *Diagnostic {
	return newf(NoAssociatedValueForName, pos, end, "found no associated value named %s in `%s`. Consider using a default value.", label, variant)
}

// NewTypeMismatch reports a slot at the extracted index with a different type.
func NewTypeMismatch(pos, end token.Pos, variant string, index int) *Diagnostic {
	return newf(TypeMismatch, pos, end, "found a mismatching type for `%s` at index %d", variant, index)
}

// NewTypeMismatchNamed reports a labeled slot with a different type.
func NewTypeMismatchNamed(pos, end token.Pos, label, variant string) *Diagnostic {
	return newf(TypeMismatchNamed, pos, end, "found a mismatching type for %s in the `%s` case", label, variant)
}

// NewMalformedDirective reports a directive that cannot be parsed.
func NewMalformedDirective(pos, end token.Pos, reason string) *Diagnostic {
	return newf(MalformedDirective, pos, end, "is malformed: %s", reason)
}

// NewInvalidPropertyName reports a `Name` argument that is not a valid identifier.
func NewInvalidPropertyName(pos, end token.Pos, name string) *Diagnostic {
	return newf(InvalidPropertyName, pos, end, "argument `Name` must be an identifier, got %q", name)
}

// NewAccessorRedeclared reports an accessor name already declared in the package.
func NewAccessorRedeclared(pos, end token.Pos, name string) *Diagnostic {
	return newf(AccessorRedeclared, pos, end, "cannot generate %s: name already declared in this package", name)
}
