package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	casevalinternal "github.com/sublee/caseval/internal/caseval"
)

func newCheckCmd(a *app) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "check [packages]",
		Short: "Report directive diagnostics",
		Long: `Check expands every directive without writing anything and reports the
diagnostics. With --fix, suggested fixes are applied to the sources.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(cmd, patterns(args), fix)
		},
	}
	cmd.Flags().BoolVar(&fix, "fix", false, "apply suggested fixes")
	return cmd
}

func (a *app) check(cmd *cobra.Command, patterns []string, fix bool) error {
	cvs, err := casevalinternal.Check(cmd.Context(), a.options(), patterns)
	if err == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No problems found.")
		return nil
	}
	if !fix || len(cvs) == 0 {
		return a.fail(cmd, err)
	}

	fixed, fixErr := casevalinternal.Fixes(cvs)
	if fixErr != nil {
		return a.fail(cmd, fixErr)
	}
	if len(fixed) == 0 {
		return a.fail(cmd, err)
	}

	n := 0
	for _, cv := range cvs {
		n += casevalinternal.FixCount(cv.Diagnostics())
	}
	for _, file := range slices.Sorted(maps.Keys(fixed)) {
		if err := os.WriteFile(file, fixed[file], 0o644); err != nil {
			return a.fail(cmd, fmt.Errorf("failed to write %s: %w", file, err))
		}
		if rel, err := filepath.Rel(a.wd, file); err == nil {
			file = rel
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Fixed:", file)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Applied %d fix(es). Run check again for the remaining problems.\n", n)
	return nil
}
