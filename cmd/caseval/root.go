package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	casevalinternal "github.com/sublee/caseval/internal/caseval"
	"github.com/sublee/caseval/internal/config"
)

// errReported is returned by commands which already printed their failure.
var errReported = errors.New("reported")

// app is the state shared by the commands.
type app struct {
	cfgFile string
	verbose bool

	wd  string
	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "caseval",
		Short: "Generate accessors for sealed interfaces",
		Long: `caseval reads //caseval:extract directives on sealed interfaces and
generates an accessor function for each of them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	flags.StringP("output", "o", "caseval_gen.go", "output file name")
	flags.StringP("tags", "b", "", "comma-separated build tags")
	flags.BoolP("tests", "t", false, "include tests")
	flags.StringP("color", "c", "auto", "colorize (auto|always|never)")
	flags.StringSlice("skip", nil, "glob patterns of package paths to skip")

	root.AddCommand(
		newGenerateCmd(a),
		newCheckCmd(a),
		newPlanCmd(a),
		newVersionCmd(),
	)

	// Print errors which are not reported yet.
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return errReported
	})
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	wd, err := os.Getwd()
	if err != nil {
		return a.fail(cmd, err)
	}
	a.wd = wd

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	loader := config.NewLoader(wd).WithFlags(cmd.Flags())
	if a.cfgFile != "" {
		loader = loader.WithFile(a.cfgFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return a.fail(cmd, err)
	}
	a.cfg = cfg
	if file := loader.UsedFile(); file != "" {
		a.log.Debug("using config file", "file", file)
	}

	switch cfg.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		color.NoColor = !isatty(os.Stderr)
	}
	return nil
}

// options converts the config into the options of the generator.
func (a *app) options() casevalinternal.Options {
	return casevalinternal.Options{
		WD:     a.wd,
		Env:    os.Environ(),
		Tags:   a.cfg.Tags,
		Tests:  a.cfg.Tests,
		Output: a.cfg.Output,
		Skip:   a.cfg.Skip,
		Logger: a.log,
	}
}

// fail prints err and returns errReported.
func (a *app) fail(cmd *cobra.Command, err error) error {
	printError(cmd.ErrOrStderr(), err)
	return errReported
}

// patterns returns the package patterns to process. It defaults to the
// package in the working directory.
func patterns(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

// isatty reports whether f is a terminal. If it is true, we can use ANSI
// color codes.
func isatty(f *os.File) bool {
	_, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	return err == nil
}

// printError prints each line of err, highlighting source positions.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, colorize(err.Error()))
}
