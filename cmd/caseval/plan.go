package main

import (
	"fmt"

	"github.com/spf13/cobra"

	casevalinternal "github.com/sublee/caseval/internal/caseval"
	"github.com/sublee/caseval/internal/caseval/emit"
)

func newPlanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plan [packages]",
		Short: "Print the accessors to generate as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := casevalinternal.Plans(cmd.Context(), a.options(), patterns(args))
			if err != nil {
				return a.fail(cmd, err)
			}
			return emit.WritePlans(cmd.OutOrStdout(), plans)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// No config is needed.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "caseval", Version)
		},
	}
}
