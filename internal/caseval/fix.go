package casevalinternal

import (
	"cmp"
	"fmt"
	"os"
	"slices"

	"github.com/sublee/caseval/internal/caseval/diag"
)

// fileEdit is a [diag.Edit] resolved to byte offsets of a file.
type fileEdit struct {
	start, end int
	text       string
}

// Fixes applies the suggested fixes of all diagnostics to the files they
// point into. It returns the new contents by file name. Edits overlapping an
// earlier edit of the same file are dropped.
func Fixes(cvs []*Caseval) (map[string][]byte, error) {
	edits := make(map[string][]fileEdit)
	for _, cv := range cvs {
		fset := cv.Pkg().Fset
		for _, dg := range cv.Diagnostics() {
			if dg.Fix == nil {
				continue
			}
			for _, e := range dg.Fix.Edits {
				file := fset.File(e.Pos)
				if file == nil {
					return nil, fmt.Errorf("no file for fix %q", dg.Fix.Message)
				}
				edits[file.Name()] = append(edits[file.Name()], fileEdit{
					start: file.Offset(e.Pos),
					end:   file.Offset(e.End),
					text:  e.NewText,
				})
			}
		}
	}

	outs := make(map[string][]byte, len(edits))
	for name, fileEdits := range edits {
		src, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		out, err := applyEdits(src, fileEdits)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		outs[name] = out
	}
	return outs, nil
}

// applyEdits applies non-overlapping edits to src.
func applyEdits(src []byte, edits []fileEdit) ([]byte, error) {
	slices.SortStableFunc(edits, func(a, b fileEdit) int {
		return cmp.Or(cmp.Compare(a.start, b.start), cmp.Compare(a.end, b.end))
	})

	var out []byte
	last := 0
	for i, e := range edits {
		if e.start < 0 || e.end > len(src) || e.start > e.end {
			return nil, fmt.Errorf("edit out of range: %d-%d", e.start, e.end)
		}
		if i > 0 && e.start < last {
			continue
		}
		if i > 0 && e == edits[i-1] {
			continue
		}
		out = append(out, src[last:e.start]...)
		out = append(out, e.text...)
		last = e.end
	}
	out = append(out, src[last:]...)
	return out, nil
}

// FixCount returns the number of diagnostics having a fix.
func FixCount(dgs []*diag.Diagnostic) int {
	n := 0
	for _, dg := range dgs {
		if dg.Fix != nil {
			n++
		}
	}
	return n
}
