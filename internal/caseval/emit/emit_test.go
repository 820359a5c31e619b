package emit_test

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"github.com/sublee/caseval/internal/caseval/emit"
	"github.com/sublee/caseval/internal/caseval/expand"
	"github.com/sublee/caseval/internal/caseval/parse"
	"github.com/sublee/caseval/internal/codefmt"
)

func load(t *testing.T, src string) *packages.Package {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "src.go", src, parser.ParseComments)
	require.NoError(t, err)

	info := &types.Info{
		Types:     make(map[ast.Expr]types.TypeAndValue),
		Defs:      make(map[*ast.Ident]types.Object),
		Uses:      make(map[*ast.Ident]types.Object),
		Implicits: make(map[ast.Node]types.Object),
	}
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := conf.Check("example.com/"+file.Name.Name, fset, []*ast.File{file}, info)
	require.NoError(t, err)

	return &packages.Package{
		Name:      pkg.Name(),
		PkgPath:   pkg.Path(),
		Types:     pkg,
		Fset:      fset,
		Syntax:    []*ast.File{file},
		TypesInfo: info,
	}
}

// accessors expands every directive of src.
func accessors(t *testing.T, pkg *packages.Package) []*expand.Accessor {
	t.Helper()

	p, err := parse.New(pkg)
	require.NoError(t, err)

	names := expand.NewNames(p.NS())
	var accs []*expand.Accessor
	for _, d := range p.ParseDecls() {
		local := names.ForType()
		for _, dir := range d.Directives {
			acc, dg := expand.Expand(d, dir, local)
			require.Nil(t, dg)
			accs = append(accs, acc)
		}
	}
	return accs
}

// generate writes accessors and returns the formatted code and imports.
func generate(t *testing.T, src string) (string, map[string]codefmt.Import) {
	t.Helper()

	pkg := load(t, src)
	var buf bytes.Buffer
	w := codefmt.NewWriter(&buf, pkg)
	buf.WriteString("package " + pkg.Name + "\n\n")
	for _, acc := range accessors(t, pkg) {
		emit.WriteAccessor(w, acc)
		buf.WriteString("\n")
	}

	code, err := format.Source(buf.Bytes())
	require.NoError(t, err, buf.String())
	return string(code), w.Imports()
}

func TestWriteAccessor(t *testing.T) {
	code, imports := generate(t, `package geo

//caseval:extract[float64]{Name: "x", Kind: AssociatedValueName("X")}
//caseval:extract[*float64]{Name: "z", Kind: AssociatedValueName("Z")}
type Coordinate interface{ isCoordinate() }

type ThreeDee struct{ X, Y, Z float64 }

type TwoDee struct{ X, Y float64 }

func (TwoDee) isCoordinate()   {}
func (ThreeDee) isCoordinate() {}
`)

	want := `package geo

// CoordinateX returns the x of a Coordinate.
func CoordinateX(in Coordinate) float64 {
	switch in := in.(type) {
	case ThreeDee:
		x := in.X
		return x
	case TwoDee:
		x2 := in.X
		return x2
	default:
		panic("caseval: unexpected Coordinate variant")
	}
}

// CoordinateZ returns the z of a Coordinate.
func CoordinateZ(in Coordinate) *float64 {
	switch in := in.(type) {
	case ThreeDee:
		z := in.Z
		return &z
	case TwoDee:
		return nil
	default:
		panic("caseval: unexpected Coordinate variant")
	}
}
`
	if diff := cmp.Diff(want, code); diff != "" {
		t.Errorf("code mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, imports)
}

func TestWriteAccessorConversion(t *testing.T) {
	code, imports := generate(t, `package sched

import "time"

//caseval:extract[time.Duration]{Name: "timeout", Default: 3 * time.Second}
type Job interface{ job() }

type Fast time.Duration

type Slow struct{ Timeout time.Duration }

type Never struct{}

type Boxed string

func (Fast) job()   {}
func (Slow) job()   {}
func (*Never) job() {}
func (*Boxed) job() {}
`)

	want := `package sched

// JobTimeout returns the timeout of a Job.
func JobTimeout(in Job) time.Duration {
	switch in := in.(type) {
	case Fast:
		timeout := time.Duration(in)
		return timeout
	case Slow:
		timeout2 := in.Timeout
		return timeout2
	case *Never:
		return 3 * time.Second
	case *Boxed:
		return 3 * time.Second
	default:
		panic("caseval: unexpected Job variant")
	}
}
`
	if diff := cmp.Diff(want, code); diff != "" {
		t.Errorf("code mismatch (-want +got):\n%s", diff)
	}
	require.Contains(t, imports, "time")
	assert.False(t, imports["time"].HasAlias)
}

func TestWriteAccessorPointerConversion(t *testing.T) {
	code, _ := generate(t, `package text

//caseval:extract[*string]{Name: "text"}
type Node interface{ node() }

type Raw string

func (*Raw) node() {}
`)

	assert.Contains(t, code, "text := string(*in)\n\t\treturn &text\n")
}

func TestWriteAccessorWithoutBindings(t *testing.T) {
	code, _ := generate(t, `package flag

//caseval:extract[bool]{Name: "on", Default: false}
type Flag interface{ flag() }

type On struct{}

type Off struct{}

func (On) flag()  {}
func (Off) flag() {}
`)

	assert.Contains(t, code, "switch in.(type) {")
	assert.NotContains(t, code, "switch in := in.(type)")
}

func TestWriteAccessorUnexported(t *testing.T) {
	code, _ := generate(t, `package js

//caseval:extract[*string]{Name: "string"}
type json interface{ json() }

type str string

type null struct{}

func (str) json()  {}
func (null) json() {}
`)

	assert.Contains(t, code, "func jsonString(in json) *string {")
	assert.Contains(t, code, "string2 := string(in)")
}

func TestPlan(t *testing.T) {
	pkg := load(t, `package geo

//caseval:extract[*float64]{Name: "z", Kind: AssociatedValueName("Z")}
type Coordinate interface{ isCoordinate() }

type TwoDee struct{ X, Y float64 }

type ThreeDee struct{ X, Y, Z float64 }

func (TwoDee) isCoordinate()   {}
func (ThreeDee) isCoordinate() {}
`)

	plan := emit.NewPlan(pkg.PkgPath, accessors(t, pkg))
	want := emit.Plan{
		Package: "example.com/geo",
		Accessors: []emit.PlanAccessor{{
			Name:     "CoordinateZ",
			SumType:  "Coordinate",
			Property: "z",
			Returns:  "*float64",
			Kind:     `AssociatedValueName("Z")`,
			Default:  "nil",
			Arms: []emit.PlanArm{
				{Variant: "TwoDee", Kind: "default", Value: "nil"},
				{Variant: "ThreeDee", Kind: "bind", Slot: "Z", Binding: "z", Promote: true},
			},
		}},
	}
	if diff := cmp.Diff(want, plan); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	require.NoError(t, emit.WritePlans(&buf, []emit.Plan{plan}))
	assert.Contains(t, buf.String(), "name: CoordinateZ")

	var got []emit.Plan
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []emit.Plan{plan}, got)
}

func TestWritePlansEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, emit.WritePlans(&buf, nil))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}
