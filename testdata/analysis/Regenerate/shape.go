package testdata

//caseval:extract[float64]{Name: "area", Kind: Position(0), Default: 0}
type Shape interface{ shape() }

type Square float64

type Empty struct{}

func (Square) shape() {}
func (Empty) shape()  {}
