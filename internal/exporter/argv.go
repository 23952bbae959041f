// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package exporter implements the GLB export trigger: output-path
// resolution from the command line, the fixed export option profile,
// and the load-complete hook that hands both to the host application.
package exporter

// OutputPath scans an argument list for the literal "--" separator and
// returns the argument immediately following it, unmodified. It reports
// ok=false when the list has no separator or when the separator is the
// last argument. Only the first separator counts; anything else in the
// list is ignored.
func OutputPath(args []string) (path string, ok bool) {
	for i, arg := range args {
		if arg != "--" {
			continue
		}
		if i+1 >= len(args) {
			return "", false
		}
		return args[i+1], true
	}
	return "", false
}
