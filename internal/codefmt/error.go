package codefmt

import (
	"fmt"
	"go/token"
)

// CodeError indicates where the error occurred in user's source code.
type CodeError struct {
	err  error
	pos  token.Pos
	end  token.Pos
	fset *token.FileSet
}

// Unwrap returns the underlying error.
func (e CodeError) Unwrap() error { return e.err }

// Pos returns the position where the error occurred. It may be invalid.
func (e CodeError) Pos() token.Pos { return e.pos }

// End returns the end position of the error. It may be invalid.
func (e CodeError) End() token.Pos { return e.end }

// Error implements the error interface. If pos is valid, the position is
// prepended to the error message.
func (e CodeError) Error() string {
	if e.err == nil {
		return ""
	}

	if !e.pos.IsValid() || e.fset == nil {
		return e.err.Error()
	}

	return fmt.Sprintf("%s: %s", FormatPosition(e.fset.Position(e.pos)), e.err.Error())
}

// Wrap attaches a source position in pkger's file set to err. The position is
// taken from err itself when it implements [Poser], otherwise from poser. The
// original error is kept so that callers can recover it with errors.As.
func Wrap(pkger Pkger, poser Poser, err error) error {
	if err == nil {
		return nil
	}
	if p, ok := err.(Poser); ok {
		poser = p
	}
	pos, end := span(poser)
	return &CodeError{err, pos, end, newByPkger(pkger).Fset}
}

func span(poser Poser) (pos, end token.Pos) {
	if poser != nil {
		pos = poser.Pos()
		if ender, ok := poser.(Ender); ok {
			end = ender.End()
		}
	}
	return pos, end
}
