package main

import "fmt"

//caseval:extract[*string]{Name: "string"}
//caseval:extract[*float64]{Name: "number"}
type json interface{ isJSON() }

type str string

type num float64

type null struct{}

type array struct {
	Items []json
	Len   float64
}

func (str) isJSON()    {}
func (num) isJSON()    {}
func (null) isJSON()   {}
func (*array) isJSON() {}

func describe(v json) string {
	s, n := "-", "-"
	if p := jsonString(v); p != nil {
		s = *p
	}
	if p := jsonNumber(v); p != nil {
		n = fmt.Sprint(*p)
	}
	return s + " " + n
}

func main() {
	fmt.Println(describe(str("hi")))
	fmt.Println(describe(num(4.5)))
	fmt.Println(describe(null{}))
	fmt.Println(describe(&array{Len: 2}))
}
