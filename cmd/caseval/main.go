package main

import (
	"errors"
	"fmt"
	"os"

	casevalinternal "github.com/sublee/caseval/internal/caseval"
)

var Version = "dev"

func init() {
	casevalinternal.Version = Version
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, colorize(err.Error()))
		}
		os.Exit(1)
	}
}
