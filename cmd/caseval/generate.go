package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	casevalinternal "github.com/sublee/caseval/internal/caseval"
	"github.com/sublee/caseval/internal/watch"
)

func newGenerateCmd(a *app) *cobra.Command {
	var check, watchMode bool

	cmd := &cobra.Command{
		Use:   "generate [packages]",
		Short: "Generate accessors",
		Long: `Generate writes the accessors of each package into the output file next
to its sources. With --check, nothing is written, and stale files are
reported as a diff.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if check && watchMode {
				return errors.New("--check and --watch are exclusive")
			}
			if watchMode {
				return a.watch(cmd, patterns(args))
			}
			return a.generate(cmd, patterns(args), check)
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "fail if generated files are stale")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "regenerate on change")
	cmd.Flags().Duration("debounce", 0, "quiet period before regenerating in watch mode")
	return cmd
}

func (a *app) generate(cmd *cobra.Command, patterns []string, check bool) error {
	outs, err := casevalinternal.Main(cmd.Context(), a.options(), patterns)
	if err != nil {
		return a.fail(cmd, err)
	}

	if check {
		stale := checkOutputs(cmd.OutOrStdout(), a.wd, outs)
		if stale != 0 {
			return a.fail(cmd, fmt.Errorf("%d generated file(s) are stale", stale))
		}
		return nil
	}

	for _, out := range slices.Sorted(maps.Keys(outs)) {
		if err := writeOutput(a.wd, out, outs[out]); err != nil {
			return a.fail(cmd, err)
		}
		a.log.Info("generated", "file", out)
		fmt.Fprintln(cmd.OutOrStdout(), "Generated:", out)
	}
	return nil
}

// checkOutputs prints the diff of each stale output and returns how many
// were stale.
func checkOutputs(w io.Writer, wd string, outs map[string][]byte) int {
	stale := 0
	for _, out := range slices.Sorted(maps.Keys(outs)) {
		onDisk, err := os.ReadFile(absPath(wd, out))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(w, "%s: %v\n", out, err)
			stale++
			continue
		}
		if diff := lineDiff(out, string(onDisk), string(outs[out])); diff != "" {
			fmt.Fprint(w, colorizeDiff(diff))
			stale++
		}
	}
	return stale
}

func writeOutput(wd, out string, code []byte) error {
	if err := os.WriteFile(absPath(wd, out), code, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return nil
}

func absPath(wd, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(wd, path)
}

// watch generates once and then again whenever a Go file of the matching
// packages changes, until interrupted. Failures are printed but do not stop
// watching.
func (a *app) watch(cmd *cobra.Command, patterns []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	opts := a.options()
	dirs, err := casevalinternal.Dirs(ctx, opts, patterns)
	if err != nil {
		return a.fail(cmd, err)
	}

	w, err := watch.New(dirs, a.cfg.Watch.Debounce, opts.Output)
	if err != nil {
		return a.fail(cmd, err)
	}
	defer w.Close()
	w.SetLogger(a.log)

	_ = a.generate(cmd, patterns, false)
	a.log.Info("watching", "dirs", len(dirs), "debounce", a.cfg.Watch.Debounce)

	err = w.Run(ctx, func(changed []string) {
		a.log.Debug("regenerating", "changed", changed)
		_ = a.generate(cmd, patterns, false)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
