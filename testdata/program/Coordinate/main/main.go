package main

import "fmt"

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

func show(c Coordinate) {
	z := "nil"
	if p := CoordinateZ(c); p != nil {
		z = fmt.Sprint(*p)
	}
	fmt.Println(CoordinateX(c), CoordinateY(c), z)
}

func main() {
	show(TwoDee{X: 1, Y: 2})
	show(ThreeDee{X: 3, Y: 4, Z: 5})
}
