// Package ansi provides the ANSI escape codes used for terminal output and a
// helper to remove them when output is not a terminal.
package ansi

import "regexp"

// ANSI SGR (Select Graphic Rendition) codes.
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Yellow  = "\033[33m"
	Green   = "\033[32m"
	Red     = "\033[31m"
	Cyan    = "\033[36m"
	Magenta = "\033[35m"
)

var sgr = regexp.MustCompile("\033\\[[0-9;]*m")

// Strip removes SGR sequences from s.
func Strip(s string) string {
	return sgr.ReplaceAllString(s, "")
}
