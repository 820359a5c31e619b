package main

type Face struct {
	Name string
	Rank int
}

type Joker struct{}

func (Face) card()  {}
func (Joker) card() {}
