package parse

import (
	"cmp"
	"go/ast"
	"go/token"
	"go/types"
	"slices"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/sublee/caseval/internal/caseval/decl"
	"github.com/sublee/caseval/internal/typeinfo"
)

// typeSpec is a type declaration with its file.
type typeSpec struct {
	spec    *ast.TypeSpec
	obj     *types.TypeName
	imports map[string]string
}

// ParseDecls collects the type declarations carrying directives in source
// order. Directives on other declarations are ignored.
func (p *Parser) ParseDecls() []decl.Decl {
	specs := p.typeSpecs()

	// Directives of a type may come from both the declaration and the spec
	// doc comments.
	groups := linkedhashmap.New() // *types.TypeName -> []decl.Directive
	for _, file := range p.sortedFiles() {
		imports := p.Imports(file)
		for _, d := range file.Decls {
			gen, ok := d.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)
				obj, ok := p.pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
				if !ok {
					continue
				}

				var dirs []decl.Directive
				if len(gen.Specs) == 1 {
					dirs = append(dirs, directives(gen.Doc, imports)...)
				}
				dirs = append(dirs, directives(ts.Doc, imports)...)
				if len(dirs) == 0 {
					continue
				}

				prev, _ := groups.Get(obj)
				prevDirs, _ := prev.([]decl.Directive)
				groups.Put(obj, append(prevDirs, dirs...))
			}
		}
	}

	decls := make([]decl.Decl, 0, groups.Size())
	it := groups.Iterator()
	for it.Next() {
		obj := it.Key().(*types.TypeName)
		d := p.declOf(specs[obj], specs)
		d.Directives = it.Value().([]decl.Directive)
		decls = append(decls, d)
	}
	return decls
}

// directives reads the directive lines of a doc comment.
func directives(doc *ast.CommentGroup, imports map[string]string) []decl.Directive {
	if doc == nil {
		return nil
	}
	var dirs []decl.Directive
	for _, c := range doc.List {
		if decl.IsDirective(c) {
			dirs = append(dirs, decl.FromComment(c, imports))
		}
	}
	return dirs
}

// typeSpecs indexes the type declarations of source files.
func (p *Parser) typeSpecs() map[*types.TypeName]typeSpec {
	specs := make(map[*types.TypeName]typeSpec)
	for _, file := range p.SourceFiles() {
		imports := p.Imports(file)
		ast.Inspect(file, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.FuncDecl:
				// Local types cannot be variants.
				return false
			case *ast.TypeSpec:
				if obj, ok := p.pkg.TypesInfo.Defs[n.Name].(*types.TypeName); ok {
					specs[obj] = typeSpec{spec: n, obj: obj, imports: imports}
				}
				return false
			}
			return true
		})
	}
	return specs
}

// declOf describes a type declaration. Variants are discovered only when the
// type is a sealed interface.
func (p *Parser) declOf(ts typeSpec, specs map[*types.TypeName]typeSpec) decl.Decl {
	d := decl.Decl{
		Name: ts.obj.Name(),
		Obj:  ts.obj,
		Pos:  ts.spec.Name.Pos(),
		End:  ts.spec.Name.End(),
	}

	t := typeinfo.TypeOf(ts.obj.Type())
	if ts.obj.IsAlias() || !t.IsSealed() {
		return d
	}
	d.Sealed = true

	var impls []typeSpec
	for _, vs := range specs {
		if vs.obj.IsAlias() || vs.obj.Parent() != p.pkg.Types.Scope() {
			continue
		}
		if _, ok := typeinfo.TypeOf(vs.obj.Type()).Implementer(t); ok {
			impls = append(impls, vs)
		}
	}
	slices.SortFunc(impls, func(a, b typeSpec) int {
		return p.comparePos(a.obj.Pos(), b.obj.Pos())
	})

	for _, vs := range impls {
		d.Variants = append(d.Variants, p.variantOf(vs, t))
	}
	return d
}

// comparePos orders positions by file name and then by offset.
func (p *Parser) comparePos(a, b token.Pos) int {
	pa, pb := p.pkg.Fset.Position(a), p.pkg.Fset.Position(b)
	return cmp.Or(cmp.Compare(pa.Filename, pb.Filename), cmp.Compare(pa.Offset, pb.Offset))
}

func (p *Parser) sortedFiles() []*ast.File {
	files := p.SourceFiles()
	slices.SortFunc(files, func(a, b *ast.File) int {
		return p.comparePos(a.Pos(), b.Pos())
	})
	return files
}
