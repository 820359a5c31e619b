package main

import "fmt"

//caseval:extract[string]{Name: "path", Kind: Position(0), Default: ""}
type Path interface{ isPath() }

type Relative string

type Absolute struct {
	Path  string
	Drive byte
}

type Root struct{}

func (Relative) isPath() {}
func (Absolute) isPath() {}
func (Root) isPath()     {}

func main() {
	for _, p := range []Path{Relative("a/b"), Absolute{Path: "/c/d"}, Root{}} {
		fmt.Printf("%q\n", PathPath(p))
	}
}
