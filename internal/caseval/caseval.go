package casevalinternal

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"io"
	"log/slog"
	"maps"
	"slices"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/caseval/internal/caseval/diag"
	"github.com/sublee/caseval/internal/caseval/emit"
	"github.com/sublee/caseval/internal/caseval/expand"
	"github.com/sublee/caseval/internal/caseval/parse"
	"github.com/sublee/caseval/internal/codefmt"
)

// Caseval generates accessors for the target package. Call [Build] and then
// [Generate] to get the generated code. All diagnostics are returned by
// [Build]. Requests which expanded successfully are generated even when
// others failed.
type Caseval struct {
	p   *parse.Parser
	buf *bytes.Buffer
	w   *codefmt.Writer
	log *slog.Logger

	accs  []*expand.Accessor
	diags []*diag.Diagnostic
}

// New creates a new [Caseval] for the given package. The package must have
// its Syntax, Types and TypesInfo. Its only tolerated errors are references to
// accessors that are not generated yet.
func New(pkg *packages.Package) (*Caseval, error) {
	parser, err := parse.New(pkg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	return &Caseval{
		p:   parser,
		buf: &buf,
		w:   codefmt.NewWriter(&buf, pkg),
		log: slog.New(slog.DiscardHandler),
	}, nil
}

// SetLogger sets the logger to report requests.
func (cv *Caseval) SetLogger(log *slog.Logger) { cv.log = log }

func (cv *Caseval) Pkg() *packages.Package { return cv.p.Pkg() }

// Build expands every directive of the package. It returns the diagnostics
// as [codefmt.CodeError]s wrapping [diag.Diagnostic]s.
func (cv *Caseval) Build() error {
	names := expand.NewNames(cv.p.NS())

	var errs error
	for _, d := range cv.p.ParseDecls() {
		local := names.ForType()
		for _, dir := range d.Directives {
			acc, dg := expand.Expand(d, dir, local)
			if dg != nil {
				cv.log.Debug("request failed", "type", d.Name, "directive", dir.Text, "kind", dg.Kind)
				cv.diags = append(cv.diags, dg)
				errs = errors.Join(errs, codefmt.Wrap(cv, dg, dg))
				continue
			}

			cv.log.Debug("request expanded", "type", d.Name, "accessor", acc.Name, "kind", acc.Strategy)
			cv.accs = append(cv.accs, acc)
		}
	}
	return errs
}

// Accessors returns the accessors built in source order.
func (cv *Caseval) Accessors() []*expand.Accessor { return cv.accs }

// Diagnostics returns the diagnostics of failed requests in source order.
func (cv *Caseval) Diagnostics() []*diag.Diagnostic { return cv.diags }

// Plan describes the accessors without generating them.
func (cv *Caseval) Plan() emit.Plan {
	return emit.NewPlan(cv.Pkg().PkgPath, cv.accs)
}

// Generate generates the accessor code for the package. It returns nil if
// there is nothing to generate. It must be called after [Build].
func (cv *Caseval) Generate() []byte {
	if len(cv.accs) == 0 {
		return nil
	}
	for _, acc := range cv.accs {
		emit.WriteAccessor(cv.w, acc)
		cv.w.Printf("\n")
	}
	return cv.frameCode()
}

func (cv *Caseval) frameCode() []byte {
	// Prepend header code
	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "//go:build !%s\n\n", parse.BuildTag)
	fmt.Fprintf(&buf, "// Code generated by github.com/sublee/caseval%s. DO NOT EDIT.\n\n", versionSuffix)
	fmt.Fprintf(&buf, "package %s\n", cv.Pkg().Name)

	imports := cv.w.Imports()
	if len(imports) != 0 {
		fmt.Fprintf(&buf, "import (\n")
		for _, alias := range slices.Sorted(maps.Keys(imports)) {
			imp := imports[alias]
			if imp.HasAlias {
				fmt.Fprintf(&buf, "%s %q\n", alias, imp.Path())
			} else {
				fmt.Fprintf(&buf, "%q\n", imp.Path())
			}
		}
		fmt.Fprintf(&buf, ")\n")
	}

	_, _ = io.Copy(&buf, cv.buf)
	code := buf.Bytes()

	// Apply gofmt if succeeded
	if fmtCode, err := format.Source(code); err == nil {
		code = fmtCode
	}
	return code
}
