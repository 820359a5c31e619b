package testdata

//caseval:extract[int]{Name: "n"}
type Plain struct{ N int } // want "'caseval:extract' directive can only be applied to a sealed interface"

//caseval:extract[int]{Name: "n"}
type Any interface{} // want "can only be applied to a sealed interface"

//caseval:extract[int] // want "'caseval:extract' directive requires arguments"
type A interface{ a() }

//caseval:extract[int]{Kind: Position(0)} // want "requires .Name. argument"
type B interface{ b() }

//caseval:extract[int]{Name: "a" + "b"} // want "argument .Name. must be a string literal"
type C interface{ c() }

//caseval:extract{Name: "n"} // want "requires a generic type for the computed property"
type D interface{ d() }

//caseval:extract[int]{Name: } // want "is malformed: expected operand"
type E interface{ e() }

//caseval:extract[int]{Name: "a-b"} // want "argument .Name. must be an identifier, got .a-b."
type F interface{ f() }

//caseval:extrakt[int]{Name: "n"} // want "is malformed: expected extract"
type G interface{ g() }

//caseval:extract[int]{Name: "n"}
func notAType() {}
