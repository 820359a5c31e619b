// Command casevalexample prints an audit log of events. Run "caseval
// generate" in this directory to regenerate caseval_gen.go.
package main

import (
	"fmt"
	"time"
)

// Event is something that happened to a document.
//
//caseval:extract[string]{Name: "ID", Kind: AssociatedValueName("ID")}
//caseval:extract[time.Time]{Name: "time", Kind: AssociatedValueName("At")}
//caseval:extract[*string]{Name: "name", Kind: AssociatedValueName("Name")}
type Event interface{ isEvent() }

type Created struct {
	ID   string
	Name string
	At   time.Time
}

type Renamed struct {
	ID      string
	OldName string
	Name    string
	At      time.Time
}

type Deleted struct {
	ID string
	At time.Time
}

func (Created) isEvent()  {}
func (Renamed) isEvent()  {}
func (*Deleted) isEvent() {}

func main() {
	t0 := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	events := []Event{
		Created{ID: "doc-1", Name: "draft.txt", At: t0},
		Renamed{ID: "doc-1", OldName: "draft.txt", Name: "final.txt", At: t0.Add(time.Hour)},
		&Deleted{ID: "doc-1", At: t0.Add(2 * time.Hour)},
	}

	for _, ev := range events {
		name := "-"
		if p := EventName(ev); p != nil {
			name = *p
		}
		fmt.Printf("%s %s %s\n", EventTime(ev).Format(time.RFC3339), EventID(ev), name)
	}
}
