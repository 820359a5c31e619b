package codefmt

import (
	"fmt"
	"go/token"
	"go/types"
	"io"

	"golang.org/x/tools/go/packages"
)

type (
	Pkger interface{ Pkg() *packages.Package }
	Poser interface{ Pos() token.Pos }
	Ender interface{ End() token.Pos }
	Typer interface{ Type() types.Type }
)

func (f Formatter) wrapPrintfArgs(args []any) []any {
	for i, arg := range args {
		switch arg.(type) {
		case types.Type, Typer:
			args[i] = formatArg{arg, f}
		}
	}
	return args
}

type formatArg struct {
	x   any
	fmt Formatter
}

func (f formatArg) Type() types.Type {
	switch x := f.x.(type) {
	case types.Type:
		return x
	case Typer:
		return x.Type()
	}
	return nil
}

// Format implements fmt.Formatter interface.
//
// The %t verb formats a types.Type in short form, qualified relative to the
// package being written. For other verbs, it falls back to the default
// formatting of fmt package.
func (f formatArg) Format(s fmt.State, verb rune) {
	if verb != 't' {
		fmt.Fprintf(s, fmt.FormatString(s, verb), f.x)
		return
	}
	typ := f.Type()
	if typ == nil {
		fmt.Fprintf(s, "[%%t cannot format %T]", f.x)
		return
	}
	_, _ = s.Write([]byte(f.fmt.Type(typ)))
}

func (f Formatter) Sprintf(format string, args ...any) string {
	args = f.wrapPrintfArgs(args)
	return fmt.Sprintf(format, args...)
}

func (f Formatter) Fprintf(w io.Writer, format string, args ...any) (int, error) {
	args = f.wrapPrintfArgs(args)
	return fmt.Fprintf(w, format, args...)
}
