// golangcilintcaseval package provides a plugin for golangci-lint to report
// caseval directive diagnostics. To build a custom golangci-lint binary with
// this plugin, use the following command at this package's directory:
//
//	golangci-lint custom
//
// Now you will have a golangci-lint-caseval binary that reports directives
// which cannot be expanded, together with their suggested fixes.
package golangcilintcaseval

import (
	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	"github.com/sublee/caseval/pkg/casevalanalysis"
)

func init() {
	register.Plugin("caseval", New)
}

func New(settings any) (register.LinterPlugin, error) {
	return CasevalLinter{}, nil
}

type CasevalLinter struct{}

func (CasevalLinter) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{casevalanalysis.Analyzer}, nil
}

// GetLoadMode asks for type information, which the variant discovery needs.
func (CasevalLinter) GetLoadMode() string {
	return register.LoadModeTypesInfo
}
