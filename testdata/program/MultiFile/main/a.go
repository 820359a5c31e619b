package main

import "fmt"

//caseval:extract[int]{Name: "rank", Kind: AssociatedValueName("Rank"), Default: -1}
type Card interface{ card() }

type Number struct{ Rank int }

func (Number) card() {}

func main() {
	for _, c := range []Card{Number{Rank: 7}, Face{Rank: 12}, Joker{}} {
		fmt.Println(CardRank(c))
	}
}
