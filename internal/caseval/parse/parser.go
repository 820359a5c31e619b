package parse

import (
	"fmt"
	"go/ast"
	"go/build/constraint"
	"go/types"
	"path"
	"strconv"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/caseval/internal/codefmt"
)

// BuildTag is set while loading packages for generation. Generated files are
// constrained by its negation so that they never take part in generation.
const BuildTag = "caseval"

// Parser reads the caseval directives of a type-checked package.
type Parser struct {
	pkg       *packages.Package
	generated map[*ast.File]bool
}

func (p *Parser) Pkg() *packages.Package { return p.pkg }

// New creates a new [Parser].
func New(pkg *packages.Package) (*Parser, error) {
	if pkg.Name == "" {
		return nil, fmt.Errorf("need pkg name")
	}
	if pkg.PkgPath == "" {
		return nil, fmt.Errorf("need pkg path")
	}
	if pkg.Types == nil {
		return nil, fmt.Errorf("need pkg types")
	}
	if pkg.Fset == nil {
		return nil, fmt.Errorf("need pkg fset")
	}
	if pkg.Syntax == nil {
		return nil, fmt.Errorf("need pkg syntax")
	}
	if pkg.TypesInfo == nil {
		return nil, fmt.Errorf("need pkg types info")
	}

	generated := make(map[*ast.File]bool)
	for _, file := range pkg.Syntax {
		if isGenerated(file) {
			generated[file] = true
		}
	}
	return &Parser{pkg: pkg, generated: generated}, nil
}

// SourceFiles returns the files of the package except generated ones.
func (p *Parser) SourceFiles() []*ast.File {
	var files []*ast.File
	for _, file := range p.pkg.Syntax {
		if !p.generated[file] {
			files = append(files, file)
		}
	}
	return files
}

// NS returns the package-level names declared in source files. Names declared
// only by generated files are free to be generated again.
func (p *Parser) NS() codefmt.NS {
	ns := codefmt.NewNS(nil)
	scope := p.pkg.Types.Scope()
	for _, name := range scope.Names() {
		if p.declaredInGenerated(scope.Lookup(name)) {
			continue
		}
		ns.Reserve(name)
	}

	// File-scoped names such as imports would be shadowed by a package-level
	// function of the same name.
	for _, file := range p.SourceFiles() {
		for name := range p.Imports(file) {
			ns.Reserve(name)
		}
	}
	return ns
}

func (p *Parser) declaredInGenerated(obj types.Object) bool {
	if len(p.generated) == 0 || !obj.Pos().IsValid() {
		return false
	}
	for file := range p.generated {
		if file.FileStart <= obj.Pos() && obj.Pos() <= file.FileEnd {
			return true
		}
	}
	return false
}

// Imports maps the package names visible in file to their import paths.
// Blank and dot imports are skipped.
func (p *Parser) Imports(file *ast.File) map[string]string {
	imports := make(map[string]string, len(file.Imports))
	for _, spec := range file.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		var name string
		switch {
		case spec.Name != nil:
			name = spec.Name.Name
		case p.pkg.Imports[importPath] != nil:
			name = p.pkg.Imports[importPath].Name
		default:
			if pkgName, ok := p.pkg.TypesInfo.Implicits[spec].(*types.PkgName); ok {
				name = pkgName.Imported().Name()
			} else {
				name = path.Base(importPath)
			}
		}

		if name == "_" || name == "." {
			continue
		}
		imports[name] = importPath
	}
	return imports
}

// isGenerated checks if the file is excluded by the build tag, as in
// "//go:build !caseval".
func isGenerated(file *ast.File) bool {
	for _, group := range file.Comments {
		if group.Pos() >= file.Package {
			break
		}
		for _, comment := range group.List {
			if !constraint.IsGoBuild(comment.Text) {
				continue
			}
			expr, err := constraint.Parse(comment.Text)
			if err != nil {
				continue
			}

			with := expr.Eval(func(string) bool { return true })
			without := expr.Eval(func(tag string) bool { return tag != BuildTag })
			if !with && without {
				return true
			}
		}
	}
	return false
}
