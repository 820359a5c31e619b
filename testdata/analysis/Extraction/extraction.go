package testdata

//caseval:extract[string]{Name: "value", Kind: Position(1)}
type Pair interface{ pair() }

type One string // want "could not find an associated value for .One. at index 1. Consider using a default value."

func (One) pair() {}

//caseval:extract[int]{Name: "count"}
type Counter interface{ counter() }

type Tally struct{ N int }

type Label struct{ Text string } // want "found no associated value of type int in .Label.. Consider using a default value."

func (Tally) counter() {}
func (Label) counter() {}

//caseval:extract[string]{Name: "title", Kind: AssociatedValueName("Titel")}
type Block interface{ block() }

type Heading struct{ Title, Body string } // want "found no associated value named Titel in .Heading.. Consider using a default value."

func (Heading) block() {}

//caseval:extract[bool]{Name: "on"}
type Toggle interface{ toggle() }

type Off struct{} // want "could not find associated values for .Off.. Consider using a default value."

func (Off) toggle() {}

//caseval:extract[string]{Name: "id", Kind: Position(0), Default: ""}
type Ref interface{ ref() }

type ByName string

type ByID int // want "found a mismatching type for .ByID. at index 0"

func (ByName) ref() {}
func (ByID) ref()   {}

//caseval:extract[string]{Name: "size", Kind: AssociatedValueName("Size"), Default: ""}
type Sized interface{ sized() }

type File struct{ Size int64 } // want "found a mismatching type for Size in the .File. case"

func (*File) sized() {}
