// Package emit writes expanded accessors as Go source and as plans.
package emit

import (
	"go/types"
	"strconv"

	"github.com/sublee/caseval/internal/caseval/decl"
	"github.com/sublee/caseval/internal/caseval/expand"
	"github.com/sublee/caseval/internal/codefmt"
)

// WriteAccessor writes the function declaration of acc.
//
//	// CoordinateZ returns the z of a Coordinate.
//	func CoordinateZ(in Coordinate) *float64 {
//		switch in := in.(type) {
//		case TwoDee:
//			return nil
//		case ThreeDee:
//			z := in.Z
//			return &z
//		default:
//			panic("caseval: unexpected Coordinate variant")
//		}
//	}
func WriteAccessor(w *codefmt.Writer, acc *expand.Accessor) {
	param := expand.Param
	ret := w.Requalify(acc.ReturnType.Name, acc.ReturnType.Quals)

	w.Printf("// %s returns the %s of a %s.\n", acc.Name, acc.Property, acc.SumType)
	w.Printf("func %s(%s %s) %s {\n", acc.Name, param, acc.SumType, ret)

	if acc.Binds() {
		w.Printf("switch %s := %s.(type) {\n", param, param)
	} else {
		w.Printf("switch %s.(type) {\n", param)
	}

	for _, arm := range acc.Arms {
		w.Printf("case %s:\n", variantType(w, arm.Variant))

		switch arm.Kind {
		case expand.Bind:
			w.Printf("%s := %s\n", arm.Binding, readSlot(w, arm.Variant, arm.Slot, param))
			if arm.Promote {
				w.Printf("return &%s\n", arm.Binding)
			} else {
				w.Printf("return %s\n", arm.Binding)
			}

		case expand.Default, expand.NoPayload:
			w.Printf("return %s\n", w.Requalify(arm.Value.Text, arm.Value.Quals))
		}
	}

	msg := "caseval: unexpected " + acc.SumType + " variant"
	w.Printf("default:\n")
	w.Printf("panic(%s)\n", strconv.Quote(msg))
	w.Printf("}\n")
	w.Printf("}\n")
}

// variantType returns the case type of a variant.
func variantType(w *codefmt.Writer, v decl.Variant) string {
	if v.Type == nil {
		return v.Name
	}
	return w.Sprintf("%t", v.Type)
}

// readSlot returns an expression reading slot from the switched value.
func readSlot(w *codefmt.Writer, v decl.Variant, slot decl.Slot, param string) string {
	if v.Struct {
		return param + "." + slot.Label
	}

	// A non-struct variant converts to its declared type.
	x := param
	if _, ok := v.Type.(*types.Pointer); ok {
		x = "*" + param
	}
	typ := w.Requalify(slot.Type.Name, slot.Type.Quals)
	return codefmt.ParenType(typ) + "(" + x + ")"
}
