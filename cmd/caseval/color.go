package main

import (
	"regexp"
	"strings"

	"github.com/fatih/color"
)

var (
	rePos = regexp.MustCompile(`^(\S+:\d+:\d+): (.*)$`)
	reTab = regexp.MustCompile(`^\t.+`)

	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

// colorize highlights the positions and messages of diagnostics. It returns
// message as is when color is disabled.
func colorize(message string) string {
	if color.NoColor {
		return message
	}

	lines := strings.Split(message, "\n")
	for i, line := range lines {
		switch {
		case rePos.MatchString(line):
			m := rePos.FindStringSubmatch(line)
			lines[i] = bold(m[1]) + ": " + red(m[2])
		case reTab.MatchString(line):
			lines[i] = faint(line)
		}
	}
	return strings.Join(lines, "\n")
}

// colorizeDiff colors the lines of a unified diff.
func colorizeDiff(diff string) string {
	if color.NoColor {
		return diff
	}

	lines := strings.SplitAfter(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			lines[i] = bold(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = cyan(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = red(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = green(line)
		}
	}
	return strings.Join(lines, "")
}
