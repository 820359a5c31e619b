package main

import "fmt"

//caseval:extract[string]{Name: "value", Kind: Position(1)}
type Pair interface{ pair() }

type One string

type Two struct{ A, B string }

func (One) pair() {}
func (Two) pair() {}

func main() {
	fmt.Println(PairValue(Two{B: "b"}))
}
