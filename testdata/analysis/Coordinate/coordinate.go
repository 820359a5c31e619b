package testdata

// Coordinate is either TwoDee or ThreeDee.
//
//caseval:extract[float64]{Name: "x", Kind: AssociatedValueName("X")}
//caseval:extract[float64]{Name: "y", Kind: Position(1)}
//caseval:extract[*float64]{Name: "z", Kind: AssociatedValueName("Z"), Default: nil}
type Coordinate interface{ isCoordinate() }

type TwoDee struct{ X, Y float64 }

type ThreeDee struct{ X, Y, Z float64 }

func (TwoDee) isCoordinate()   {}
func (ThreeDee) isCoordinate() {}

// Point is not a sealed interface but has no directives either.
type Point struct{ X, Y float64 }
