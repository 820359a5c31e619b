// Package caseval generates accessor functions for sealed interfaces.
//
// A sealed interface is a named interface with at least one method, usually
// unexported, that only the types of its own package implement. Each of those
// types is a variant. Reading a value shared by some or all variants normally
// takes a type switch at every call site. Caseval writes that switch once,
// from a directive attached to the interface:
//
//	// Coordinate is either TwoDee or ThreeDee.
//	//
//	//caseval:extract[*float64]{Name: "z", Kind: AssociatedValueName("Z"), Default: nil}
//	type Coordinate interface{ isCoordinate() }
//
//	type TwoDee struct{ X, Y float64 }
//	type ThreeDee struct{ X, Y, Z float64 }
//
//	func (TwoDee) isCoordinate()   {}
//	func (ThreeDee) isCoordinate() {}
//
// Run the caseval command, and it generates caseval_gen.go for your package:
//
//	go run github.com/sublee/caseval/cmd/caseval generate ./...
//
//	// generated:
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
//
// The generated code does not depend on this module.
//
// # Directives
//
// A directive is a "//caseval:" comment line in the doc comment of the
// interface. Several directives may be stacked, one accessor each. The payload
// is a Go expression:
//
//	extract[T]{Name: "name", Kind: kind, Default: value}
//
// T is the return type of the accessor. Name is a string literal, and the
// accessor is named after the interface followed by Name in upper camel case.
// Kind tells which value of each variant to return:
//
//   - Position(n) returns the n-th field, counting from zero. A variant
//     which is not a struct has a single value at position 0: itself,
//     converted to its declared type.
//   - AssociatedValueName("F") returns the field named F.
//   - FirstMatchingType returns the first field of type T. It is the default.
//
// A field matches when its type is spelled exactly as T. When T is a pointer
// type *U, a field of type U matches as well and the accessor returns its
// address.
//
// Default is returned for variants without a matching field. When T is a
// pointer type, Default is nil unless given. A field selected by Position or
// AssociatedValueName but of another type is always an error, Default or not.
//
// # Diagnostics
//
// A directive which cannot be expanded generates nothing and reports why:
//
//	geo.go:10:6: 'caseval:extract' directive could not find an associated value for `TwoDee` at index 2. Consider using a default value.
//
// The casevalanalysis package reports the same diagnostics through
// go/analysis, with suggested fixes inserting a default value. "caseval check
// --fix" applies those fixes in place.
package caseval
