// Command mockdata writes mock interferometer data to JSON.
//
// Usage:
//
//	mockdata [model] [flags] [-k keyword ...]
//	mockdata asd result.json
//
// Examples:
//
//	mockdata scatter -t 16 -f 2048 -s 1 -k -r 4 -i 2
//	mockdata bilinear -o pairs.json -k --pairs 3
//	mockdata resonance -d --shift 0.25 -k -f 20 -q 50
//	mockdata scatter -k -h
package main

import (
	"fmt"
	"os"
)

func main() {
	args, keywords := splitKeywords(os.Args[1:])

	root := newRootCmd(keywords)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
