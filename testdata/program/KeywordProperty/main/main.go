package main

import "fmt"

//caseval:extract[string]{Name: "type", Kind: AssociatedValueName("Type")}
//caseval:extract[*string]{Name: "in", Kind: AssociatedValueName("In")}
type Token interface{ token() }

type Word struct{ Type, In string }

type Space struct {
	Type string
	In   string
}

func (Word) token()  {}
func (Space) token() {}

func main() {
	fmt.Println(TokenType(Word{Type: "word"}), *TokenIn(Space{In: "x"}))
}
