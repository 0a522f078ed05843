// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program tomljson reads TOML documents and prints their type-tagged JSON
// projections, one per line.
//
// Usage:
//
//	tomljson [flags] [path ...]
//
// With no paths, tomljson reads a single document from standard input. If
// any input cannot be read or parsed, tomljson prints a line "ERROR: <message>"
// to standard error and exits with status 1.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

func main() {
	root := newRootCmd(os.Stdin)
	if err := root.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes err to w as an ERROR line. The prefix is colored when w
// is a terminal.
func printError(w io.Writer, err error) {
	prefix := "ERROR:"
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		c := color.New(color.FgRed, color.Bold)
		c.EnableColor()
		prefix = c.Sprint(prefix)
	}
	fmt.Fprintln(w, prefix, err)
}
