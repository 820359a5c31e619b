package expand_test

import (
	"go/token"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublee/caseval/internal/caseval/decl"
	"github.com/sublee/caseval/internal/caseval/diag"
	"github.com/sublee/caseval/internal/caseval/expand"
	"github.com/sublee/caseval/internal/caseval/strategy"
	"github.com/sublee/caseval/internal/codefmt"
)

const dirPos = token.Pos(1000)

func directive(text string) decl.Directive {
	return decl.ParseDirective(text, dirPos, nil)
}

// at returns the position of sub in the directive text.
func at(text, sub string) token.Pos {
	i := strings.Index(text, sub)
	if i < 0 {
		panic(sub + " not in " + text)
	}
	return dirPos + token.Pos(i)
}

func typ(name string) decl.Type {
	if strings.HasPrefix(name, "*") {
		return decl.Type{Name: name, Inner: name[1:]}
	}
	return decl.Type{Name: name}
}

// variant builds a variant at pos. fields alternate labels and types. An
// empty label makes a non-struct variant.
func variant(name string, pos token.Pos, fields ...string) decl.Variant {
	v := decl.Variant{Name: name, Struct: true, Pos: pos, End: pos + token.Pos(len(name))}
	for i := 0; i+1 < len(fields); i += 2 {
		if fields[i] == "" {
			v.Struct = false
		}
		slotPos := pos + token.Pos(100+10*i)
		v.Slots = append(v.Slots, decl.Slot{
			Label:    fields[i],
			Type:     typ(fields[i+1]),
			Position: i / 2,
			Pos:      slotPos,
			End:      slotPos + 5,
		})
	}
	return v
}

func sealed(name string, variants ...decl.Variant) decl.Decl {
	return decl.Decl{Name: name, Sealed: true, Variants: variants, Pos: 10, End: token.Pos(10 + len(name))}
}

func names() expand.Names {
	return expand.NewNames(codefmt.NewNS(nil)).ForType()
}

func pathDecl() decl.Decl {
	return sealed("Path",
		variant("Relative", 100, "", "string"),
		variant("Absolute", 200, "", "string"),
		variant("Root", 300),
	)
}

func coordinateDecl() decl.Decl {
	return sealed("Coordinate",
		variant("TwoDee", 100, "X", "float64", "Y", "float64"),
		variant("ThreeDee", 200, "X", "float64", "Y", "float64", "Z", "float64"),
	)
}

func TestExpandPath(t *testing.T) {
	d := pathDecl()
	acc, dg := expand.Expand(d, directive(`extract[string]{Name: "path", Kind: Position(0), Default: ""}`), names())
	require.Nil(t, dg)

	assert.Equal(t, "PathPath", acc.Name)
	assert.Equal(t, "path", acc.Property)
	assert.Equal(t, "Path", acc.SumType)
	assert.True(t, acc.Exported())
	assert.True(t, acc.Binds())
	assert.Equal(t, strategy.Position{Index: 0}, acc.Strategy)
	assert.Equal(t, dirPos, acc.Pos)

	want := []expand.Arm{
		{Kind: expand.Bind, Variant: d.Variants[0], Slot: d.Variants[0].Slots[0], Binding: "path"},
		{Kind: expand.Bind, Variant: d.Variants[1], Slot: d.Variants[1].Slots[0], Binding: "path2"},
		{Kind: expand.NoPayload, Variant: d.Variants[2], Value: decl.Expr{Text: `""`}},
	}
	if diff := cmp.Diff(want, acc.Arms); diff != "" {
		t.Errorf("arms mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandCoordinateZ(t *testing.T) {
	d := coordinateDecl()
	acc, dg := expand.Expand(d, directive(`extract[*float64]{Name: "z", Kind: AssociatedValueName("Z"), Default: nil}`), names())
	require.Nil(t, dg)

	assert.Equal(t, "CoordinateZ", acc.Name)
	require.Len(t, acc.Arms, 2)

	assert.Equal(t, expand.Default, acc.Arms[0].Kind)
	assert.Equal(t, "nil", acc.Arms[0].Value.Text)

	assert.Equal(t, expand.Bind, acc.Arms[1].Kind)
	assert.Equal(t, "z", acc.Arms[1].Binding)
	assert.Equal(t, 2, acc.Arms[1].Slot.Position)
	assert.True(t, acc.Arms[1].Promote)
}

func TestExpandImplicitNilEqualsExplicitNil(t *testing.T) {
	implicit, dg := expand.Expand(coordinateDecl(), directive(`extract[*float64]{Name: "z", Kind: AssociatedValueName("Z")}`), names())
	require.Nil(t, dg)

	explicit, dg := expand.Expand(coordinateDecl(), directive(`extract[*float64]{Name: "z", Kind: AssociatedValueName("Z"), Default: nil}`), names())
	require.Nil(t, dg)

	assert.Equal(t, explicit.Arms, implicit.Arms)
	assert.Equal(t, explicit.Default, implicit.Default)
}

func TestExpandFirstMatchingType(t *testing.T) {
	d := sealed("json",
		variant("str", 100, "", "string"),
		variant("num", 200, "", "float64"),
		variant("null", 300),
	)
	acc, dg := expand.Expand(d, directive(`extract[*string]{Name: "string"}`), names())
	require.Nil(t, dg)

	assert.Equal(t, "jsonString", acc.Name)
	assert.False(t, acc.Exported())
	require.Len(t, acc.Arms, 3)
	assert.Equal(t, expand.Bind, acc.Arms[0].Kind)
	assert.Equal(t, "string2", acc.Arms[0].Binding, "predeclared names are not shadowed")
	assert.Equal(t, expand.Default, acc.Arms[1].Kind)
	assert.Equal(t, expand.NoPayload, acc.Arms[2].Kind)
}

func TestExpandStackedBindingsAreUnique(t *testing.T) {
	d := sealed("Link",
		variant("Web", 100, "URL", "string"),
		variant("Mail", 200, "URL", "string"),
	)
	ns := names()

	first, dg := expand.Expand(d, directive(`extract[string]{Name: "url"}`), ns)
	require.Nil(t, dg)
	second, dg := expand.Expand(d, directive(`extract[string]{Name: "URL"}`), ns)
	require.Nil(t, dg)

	assert.Equal(t, "LinkUrl", first.Name)
	assert.Equal(t, "LinkURL", second.Name)

	var bindings []string
	for _, acc := range []*expand.Accessor{first, second} {
		for _, arm := range acc.Arms {
			bindings = append(bindings, arm.Binding)
		}
	}
	assert.Equal(t, []string{"url", "url2", "url3", "url4"}, bindings)
}

func TestExpandFailureReservesNothing(t *testing.T) {
	d := sealed("Pair",
		variant("One", 100, "", "string"),
		variant("Two", 200, "", "int"),
	)
	ns := names()

	_, dg := expand.Expand(d, directive(`extract[string]{Name: "value", Kind: Position(0)}`), ns)
	require.NotNil(t, dg)
	assert.False(t, ns.Locals.Has("value"))
	assert.False(t, ns.Package.Has("PairValue"))
}

func TestExpandDeterministic(t *testing.T) {
	text := `extract[string]{Name: "path", Kind: Position(0), Default: ""}`
	a, dg := expand.Expand(pathDecl(), directive(text), names())
	require.Nil(t, dg)
	b, dg := expand.Expand(pathDecl(), directive(text), names())
	require.Nil(t, dg)
	assert.Equal(t, a, b)
}

func TestExpandAccessorRedeclared(t *testing.T) {
	pkg := codefmt.NewNS(nil)
	pkg.Reserve("PathPath")
	ns := expand.NewNames(pkg).ForType()

	text := `extract[string]{Name: "path", Kind: Position(0), Default: ""}`
	_, dg := expand.Expand(pathDecl(), directive(text), ns)
	require.NotNil(t, dg)
	assert.Equal(t, diag.AccessorRedeclared, dg.Kind)
	assert.Equal(t, dirPos, dg.Pos())
	assert.Nil(t, dg.Fix)
}

func TestExpandSameNameTwice(t *testing.T) {
	ns := names()
	text := `extract[string]{Name: "path", Kind: Position(0), Default: ""}`

	_, dg := expand.Expand(pathDecl(), directive(text), ns)
	require.Nil(t, dg)
	_, dg = expand.Expand(pathDecl(), directive(text), ns)
	require.NotNil(t, dg)
	assert.Equal(t, diag.AccessorRedeclared, dg.Kind)
}

func TestExpandNoValueAtIndex(t *testing.T) {
	d := sealed("Pair",
		variant("One", 100, "", "string"),
		variant("Two", 200, "", "int"),
	)
	text := `extract[string]{Name: "value", Kind: Position(1)}`
	_, dg := expand.Expand(d, directive(text), names())
	require.NotNil(t, dg)

	assert.Equal(t, diag.NoValueAtIndex, dg.Kind)
	assert.Equal(t, "'caseval:extract' directive could not find an associated value for `One` at index 1. Consider using a default value.", dg.Message)
	assert.Equal(t, token.Pos(100), dg.Pos())

	require.NotNil(t, dg.Fix)
	after := at(text, "}")
	assert.Equal(t, []diag.Edit{{Pos: after, End: after, NewText: ", Default: *new(string)"}}, dg.Fix.Edits)
}

func TestExpandNoValueAtIndexUsesDefault(t *testing.T) {
	d := sealed("Pair",
		variant("One", 100, "", "string"),
		variant("Two", 200, "A", "int", "B", "string"),
	)
	acc, dg := expand.Expand(d, directive(`extract[string]{Name: "value", Kind: Position(1), Default: "none"}`), names())
	require.Nil(t, dg)
	assert.Equal(t, expand.Default, acc.Arms[0].Kind)
	assert.Equal(t, `"none"`, acc.Arms[0].Value.Text)
	assert.Equal(t, expand.Bind, acc.Arms[1].Kind)
}

func TestExpandTypeMismatchIgnoresDefault(t *testing.T) {
	d := sealed("Pair",
		variant("One", 100, "", "string"),
		variant("Two", 200, "", "int"),
	)
	_, dg := expand.Expand(d, directive(`extract[string]{Name: "value", Kind: Position(0), Default: ""}`), names())
	require.NotNil(t, dg)

	assert.Equal(t, diag.TypeMismatch, dg.Kind)
	assert.Equal(t, "'caseval:extract' directive found a mismatching type for `Two` at index 0", dg.Message)
	assert.Equal(t, token.Pos(300), dg.Pos(), "points at the slot")
	assert.Nil(t, dg.Fix)
}

func TestExpandTypeMismatchNamed(t *testing.T) {
	d := sealed("Block",
		variant("Text", 100, "Title", "string"),
		variant("Image", 200, "Title", "[]byte"),
	)
	_, dg := expand.Expand(d, directive(`extract[string]{Name: "title", Kind: AssociatedValueName("Title"), Default: ""}`), names())
	require.NotNil(t, dg)

	assert.Equal(t, diag.TypeMismatchNamed, dg.Kind)
	assert.Equal(t, "'caseval:extract' directive found a mismatching type for Title in the `Image` case", dg.Message)
	assert.Nil(t, dg.Fix)
}

func TestExpandNoAssociatedValueForName(t *testing.T) {
	d := sealed("Block",
		variant("Text", 100, "Title", "string", "Body", "string"),
	)
	text := `extract[string]{Name: "title", Kind: AssociatedValueName("Titel")}`
	_, dg := expand.Expand(d, directive(text), names())
	require.NotNil(t, dg)

	assert.Equal(t, diag.NoAssociatedValueForName, dg.Kind)
	assert.Equal(t, "'caseval:extract' directive found no associated value named Titel in `Text`. Consider using a default value.", dg.Message)
	require.NotNil(t, dg.Fix)
	require.Len(t, dg.Related, 1)
	assert.Equal(t, "did you mean `Title`?", dg.Related[0].Message)
	assert.Equal(t, d.Variants[0].Slots[0].Pos, dg.Related[0].Pos)
}

func TestExpandNoMatchingType(t *testing.T) {
	d := sealed("Value",
		variant("Str", 100, "", "string"),
		variant("Num", 200, "", "int"),
	)
	_, dg := expand.Expand(d, directive(`extract[string]{Name: "str"}`), names())
	require.NotNil(t, dg)

	assert.Equal(t, diag.NoMatchingType, dg.Kind)
	assert.Equal(t, "'caseval:extract' directive found no associated value of type string in `Num`. Consider using a default value.", dg.Message)
	assert.Equal(t, token.Pos(200), dg.Pos())
	assert.NotNil(t, dg.Fix)
}

func TestExpandNoAssociatedValues(t *testing.T) {
	d := sealed("Count",
		variant("One", 100),
		variant("Two", 200),
	)
	_, dg := expand.Expand(d, directive(`extract[int]{Name: "n", Kind: Position(1)}`), names())
	require.NotNil(t, dg)

	assert.Equal(t, diag.NoAssociatedValues, dg.Kind)
	assert.Equal(t, "'caseval:extract' directive could not find associated values for `One`. Consider using a default value.", dg.Message)
	assert.NotNil(t, dg.Fix)
}

func TestExpandBlankProperty(t *testing.T) {
	d := pathDecl()
	acc, dg := expand.Expand(d, directive(`extract[string]{Name: "_", Default: ""}`), names())
	require.Nil(t, dg)

	assert.Equal(t, "Path_", acc.Name)
	assert.Equal(t, "_2", acc.Arms[0].Binding)
	assert.Equal(t, "_3", acc.Arms[1].Binding)
}

func TestExpandUnparseableKindFallsBack(t *testing.T) {
	d := sealed("Value",
		variant("Str", 100, "A", "int", "B", "string"),
	)
	acc, dg := expand.Expand(d, directive(`extract[string]{Name: "s", Kind: Position(i)}`), names())
	require.Nil(t, dg)
	assert.Equal(t, strategy.FirstMatchingType{}, acc.Strategy)
	assert.Equal(t, 1, acc.Arms[0].Slot.Position)
}

func TestExpandRequestErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind diag.Kind
		pos  func(text string) token.Pos
	}{
		{"Malformed", `extract[string]{Name: }`, diag.MalformedDirective, nil},
		{"UnknownVerb", `extrakt[string]{Name: "x"}`, diag.MalformedDirective, nil},
		{"RequiresArguments", `extract[string]`, diag.RequiresArguments, nil},
		{"RequiresArgumentsBare", `extract`, diag.RequiresArguments, nil},
		{"RequiresPropertyName", `extract[string]{Kind: Position(0)}`, diag.RequiresPropertyName, nil},
		{"RequiresPropertyNameUnkeyed", `extract[string]{"x"}`, diag.RequiresPropertyName, nil},
		{"RequiresPropertyNameLiteral", `extract[string]{Name: "a" + b}`, diag.RequiresPropertyNameLiteral,
			func(text string) token.Pos { return at(text, `"a"`) }},
		{"RequiresPropertyNameLiteralCall", `extract[string]{Name: fmt.Sprint(x)}`, diag.RequiresPropertyNameLiteral,
			func(text string) token.Pos { return at(text, "fmt") }},
		{"InvalidPropertyName", `extract[string]{Name: "a b"}`, diag.InvalidPropertyName,
			func(text string) token.Pos { return at(text, `"a b"`) }},
		{"InvalidPropertyNameEmpty", `extract[string]{Name: ""}`, diag.InvalidPropertyName, nil},
		{"RequiresGenericType", `extract{Name: "x"}`, diag.RequiresGenericType, nil},
		{"RequiresGenericTypeTwo", `extract[string, int]{Name: "x"}`, diag.RequiresGenericType, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, dg := expand.Expand(pathDecl(), directive(tt.text), names())
			require.NotNil(t, dg)
			assert.Equal(t, tt.kind, dg.Kind, dg.Message)
			assert.Nil(t, dg.Fix)
			if tt.pos != nil {
				assert.Equal(t, tt.pos(tt.text), dg.Pos())
			}
		})
	}
}

func TestExpandRequiresSumType(t *testing.T) {
	d := decl.Decl{Name: "Plain", Pos: 10, End: 15}
	_, dg := expand.Expand(d, directive(`extract[string]{Name: "x"}`), names())
	require.NotNil(t, dg)

	assert.Equal(t, diag.RequiresSumType, dg.Kind)
	assert.Equal(t, "'caseval:extract' directive can only be applied to a sealed interface", dg.Message)
	assert.Equal(t, token.Pos(10), dg.Pos())
}

func TestExpandEmptySumType(t *testing.T) {
	acc, dg := expand.Expand(sealed("Never"), directive(`extract[int]{Name: "n"}`), names())
	require.Nil(t, dg)
	assert.Empty(t, acc.Arms)
	assert.False(t, acc.Binds())
}
