package casevalinternal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/gobwas/glob"
	"golang.org/x/tools/go/packages"

	"github.com/sublee/caseval/internal/caseval/emit"
	"github.com/sublee/caseval/internal/caseval/parse"
)

var Version string

// Options configures [Main], [Plans] and [Check].
type Options struct {
	// WD is the path of the working directory.
	WD string

	// Env is the environment variables to use when loading packages.
	Env []string

	// Tags is the comma-separated build tags in addition to "caseval".
	Tags string

	// Tests indicates whether to include test files.
	Tests bool

	// Output is the name of the file to generate in each package.
	Output string

	// Skip lists glob patterns of package paths to leave alone.
	Skip []string

	// Logger reports progress. It may be nil.
	Logger *slog.Logger
}

func (opts Options) logger() *slog.Logger {
	if opts.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return opts.Logger
}

// Main is the main entry point for caseval. It is used by the command-line
// tool directly.
//
// ctx is the context for loading packages. If the loading is too slow, ctx
// can cancel the operation. patterns are the package patterns to process.
//
// It returns a map of output file paths to their contents. If any error
// occurs, it returns a non-nil error.
func Main(ctx context.Context, opts Options, patterns []string) (map[string][]byte, error) {
	cvs, err := build(ctx, opts, patterns)
	if err != nil {
		return nil, err
	}

	outs := make(map[string][]byte)
	for _, cv := range cvs {
		code := cv.Generate()
		if len(code) == 0 {
			continue
		}
		outs[OutputPath(opts, cv)] = code
	}
	return outs, nil
}

// Plans describes the accessors of each package without generating them.
func Plans(ctx context.Context, opts Options, patterns []string) ([]emit.Plan, error) {
	cvs, err := build(ctx, opts, patterns)
	if err != nil {
		return nil, err
	}

	var plans []emit.Plan
	for _, cv := range cvs {
		if len(cv.Accessors()) != 0 {
			plans = append(plans, cv.Plan())
		}
	}
	return plans, nil
}

// Check builds every package and returns them even if some requests failed,
// so that their diagnostics can be fixed. The error joins the diagnostics of
// all packages.
func Check(ctx context.Context, opts Options, patterns []string) ([]*Caseval, error) {
	return build(ctx, opts, patterns)
}

func build(ctx context.Context, opts Options, patterns []string) ([]*Caseval, error) {
	log := opts.logger()

	skips, err := compileSkips(opts.Skip)
	if err != nil {
		return nil, err
	}

	pkgs, undefined, err := load(ctx, opts, patterns)
	if err != nil {
		return nil, err
	}

	var cvs []*Caseval
	var errs error
	failed := make(map[*packages.Package]bool)
	for _, pkg := range pkgs {
		if skipped(skips, pkg.PkgPath) {
			log.Info("skipped package", "pkg", pkg.PkgPath)
			delete(undefined, pkg)
			continue
		}
		log.Debug("loaded package", "pkg", pkg.PkgPath, "files", len(pkg.Syntax))

		cv, err := New(pkg)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		cv.SetLogger(log.With("pkg", pkg.PkgPath))

		if err := cv.Build(); err != nil {
			errs = errors.Join(errs, err)
			failed[pkg] = true
		}
		cvs = append(cvs, cv)
	}

	generated := make(map[*packages.Package][]string)
	for _, cv := range cvs {
		for _, acc := range cv.Accessors() {
			generated[cv.Pkg()] = append(generated[cv.Pkg()], acc.Name)
		}
	}
	errs = errors.Join(errs, unresolved(undefined, generated, failed))
	// errs already contains comprehensive error messages. So we don't need to
	// attach another error message.
	return cvs, reorderErrors(errs)
}

// OutputPath returns the path of the file to generate for the package of cv,
// relative to the working directory if possible.
func OutputPath(opts Options, cv *Caseval) string {
	outDir := filepath.Dir(cv.Pkg().GoFiles[0])
	if rel, err := filepath.Rel(opts.WD, outDir); err == nil {
		outDir = rel
	}
	return filepath.Join(outDir, opts.Output)
}

func compileSkips(patterns []string) ([]glob.Glob, error) {
	skips := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid skip pattern %q: %w", pattern, err)
		}
		skips = append(skips, g)
	}
	return skips, nil
}

func skipped(skips []glob.Glob, pkgPath string) bool {
	return slices.ContainsFunc(skips, func(g glob.Glob) bool {
		return g.Match(pkgPath)
	})
}

// load loads packages. The output files are hidden by the build tag, so
// the packages calling their own accessors do not type-check. Such
// "undefined" errors are returned apart by package, to be resolved once the
// accessors are known.
func load(ctx context.Context, opts Options, patterns []string) ([]*packages.Package, map[*packages.Package][]packages.Error, error) {
	cfg := &packages.Config{
		Mode:       packages.NeedDeps | packages.NeedFiles | packages.NeedImports | packages.NeedName | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Context:    ctx,
		Dir:        opts.WD,
		Env:        opts.Env,
		BuildFlags: buildFlags(opts),
		Tests:      opts.Tests,
	}

	// Load the packages based on the provided patterns.
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, nil, fmt.Errorf("no packages found: %v", patterns)
	}

	// Check for errors in the loaded packages.
	var errs error
	undefined := make(map[*packages.Package][]packages.Error)
	for _, pkg := range pkgs {
		for _, err := range pkg.Errors {
			if err.Pos == "" {
				errs = errors.Join(errs, errors.New(err.Msg))
				continue
			}

			path, rowcol, _ := strings.Cut(err.Pos, ":")
			if rel, relErr := filepath.Rel(opts.WD, path); relErr == nil {
				err.Pos = rel + ":" + rowcol
			}
			if _, name := undefinedName(err); name != "" {
				undefined[pkg] = append(undefined[pkg], err)
				continue
			}
			errs = errors.Join(errs, err)
		}
	}
	if errs != nil {
		return nil, nil, errs
	}

	// With tests, a package is loaded several times. Keep the most complete
	// variant of each.
	if opts.Tests {
		pkgs = dedupTests(pkgs)
	}
	return pkgs, undefined, nil
}

func buildFlags(opts Options) []string {
	tags := parse.BuildTag
	if opts.Tags != "" {
		tags += "," + opts.Tags
	}
	return []string{"-tags=" + tags}
}

// Dirs returns the directories of the packages matching patterns, in load
// order. Unlike [Main], it does not type-check the packages, so it works
// while the code does not compile.
func Dirs(ctx context.Context, opts Options, patterns []string) ([]string, error) {
	cfg := &packages.Config{
		Mode:       packages.NeedName | packages.NeedFiles,
		Context:    ctx,
		Dir:        opts.WD,
		Env:        opts.Env,
		BuildFlags: buildFlags(opts),
		Tests:      opts.Tests,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	dirs := linkedhashset.New()
	for _, pkg := range pkgs {
		if len(pkg.GoFiles) != 0 {
			dirs.Add(filepath.Dir(pkg.GoFiles[0]))
		}
	}
	if dirs.Empty() {
		return nil, fmt.Errorf("no packages found: %v", patterns)
	}

	out := make([]string, 0, dirs.Size())
	for _, dir := range dirs.Values() {
		out = append(out, dir.(string))
	}
	return out, nil
}

// undefinedName returns the identifier of an "undefined" type error and its
// package qualifier, if any. It returns "" for the other errors.
func undefinedName(err packages.Error) (qual, name string) {
	if err.Kind != packages.TypeError {
		return "", ""
	}
	name, ok := strings.CutPrefix(err.Msg, "undefined: ")
	if !ok {
		return "", ""
	}
	name, _, _ = strings.Cut(name, " ")
	if q, sel, ok := strings.Cut(name, "."); ok {
		return q, sel
	}
	return "", name
}

// unresolved returns the "undefined" errors which the generated accessors do
// not resolve. A qualified name is resolved by an accessor of any package.
// The errors of a package whose directives failed are dropped because the
// diagnostics already explain them.
func unresolved(undefined map[*packages.Package][]packages.Error, generated map[*packages.Package][]string, failed map[*packages.Package]bool) error {
	global := make(map[string]bool)
	for _, names := range generated {
		for _, name := range names {
			global[name] = true
		}
	}

	var list []error
	for pkg, pkgErrs := range undefined {
		if failed[pkg] {
			continue
		}
		for _, err := range pkgErrs {
			qual, name := undefinedName(err)
			if qual == "" && slices.Contains(generated[pkg], name) || qual != "" && global[name] {
				continue
			}
			list = append(list, err)
		}
	}
	return errors.Join(list...)
}

// dedupTests drops the packages that are covered by their test variants.
func dedupTests(pkgs []*packages.Package) []*packages.Package {
	byPath := make(map[string]*packages.Package)
	var order []string
	for _, pkg := range pkgs {
		if strings.HasSuffix(pkg.PkgPath, ".test") {
			// Test main packages
			continue
		}
		prev, ok := byPath[pkg.PkgPath]
		if !ok {
			order = append(order, pkg.PkgPath)
		}
		if !ok || len(pkg.Syntax) > len(prev.Syntax) {
			byPath[pkg.PkgPath] = pkg
		}
	}

	deduped := make([]*packages.Package, 0, len(order))
	for _, path := range order {
		deduped = append(deduped, byPath[path])
	}
	return deduped
}

func reorderErrors(errs error) error {
	if errs == nil {
		return nil
	}

	// Flatten nested errors
	list := []error{errs}
	for i := 0; i < len(list); i++ {
		if u, ok := list[i].(interface{ Unwrap() []error }); ok {
			// errors.Join collapses errors with a single error having Unwrap()
			// []error method. The underlying errors could be retrieved using
			// the Unwrap() method.
			list = append(list, u.Unwrap()...)

			// The underlying errors are appended to the list. So the original
			// error can be removed.
			list[i] = nil
			continue
		}
	}
	list = slices.DeleteFunc(list, func(err error) bool {
		return err == nil
	})

	// Sort errors by message
	sort.Slice(list, func(i, j int) bool {
		return list[i].Error() < list[j].Error()
	})
	return errors.Join(list...)
}
