package main

import (
	"fmt"
	tm "time"
)

//caseval:extract[tm.Duration]{Name: "timeout", Default: 3 * tm.Second}
type Job interface{ job() }

type Quick tm.Duration

type Slow struct {
	Name    string
	Timeout tm.Duration
}

type Forever struct{}

func (Quick) job()    {}
func (Slow) job()     {}
func (*Forever) job() {}

func main() {
	fmt.Println(JobTimeout(Quick(tm.Millisecond)))
	fmt.Println(JobTimeout(Slow{Timeout: tm.Minute}))
	fmt.Println(JobTimeout(&Forever{}))
}
