package testdata

//caseval:extract[int]{Name: "n", Default: 0} // want "cannot generate ShapeN: name already declared in this package"
type Shape interface{ shape() }

func ShapeN(Shape) int { return 0 }

//caseval:extract[int]{Name: "n", Default: 0}
//caseval:extract[int]{Name: "N", Default: 1} // want "cannot generate DupN: name already declared in this package"
type Dup interface{ dup() }
