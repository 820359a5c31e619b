// Package casevalanalysis reports the caseval directives that cannot be
// expanded, with suggested fixes where one exists.
package casevalanalysis

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	casevalinternal "github.com/sublee/caseval/internal/caseval"
	"github.com/sublee/caseval/internal/caseval/diag"
)

// Analyzer validates the caseval directives in the package.
var Analyzer = &analysis.Analyzer{
	Name: "caseval",
	Doc:  "linter for caseval directives",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	pkg := &packages.Package{
		Name:      pass.Pkg.Name(),
		PkgPath:   pass.Pkg.Path(),
		Types:     pass.Pkg,
		Fset:      pass.Fset,
		Syntax:    pass.Files,
		TypesInfo: pass.TypesInfo,
	}

	cv, err := casevalinternal.New(pkg)
	if err != nil {
		return nil, err
	}

	// Diagnostics are reported one by one below.
	_ = cv.Build()

	for _, dg := range cv.Diagnostics() {
		pass.Report(toAnalysis(dg))
	}
	return nil, nil
}

func toAnalysis(dg *diag.Diagnostic) analysis.Diagnostic {
	d := analysis.Diagnostic{
		Pos:      dg.Pos(),
		End:      dg.End(),
		Category: dg.Kind.String(),
		Message:  dg.Message,
	}

	if dg.Fix != nil {
		fix := analysis.SuggestedFix{Message: dg.Fix.Message}
		for _, e := range dg.Fix.Edits {
			fix.TextEdits = append(fix.TextEdits, analysis.TextEdit{
				Pos:     e.Pos,
				End:     e.End,
				NewText: []byte(e.NewText),
			})
		}
		d.SuggestedFixes = []analysis.SuggestedFix{fix}
	}

	for _, r := range dg.Related {
		d.Related = append(d.Related, analysis.RelatedInformation{
			Pos:     r.Pos,
			End:     r.End,
			Message: r.Message,
		})
	}
	return d
}
