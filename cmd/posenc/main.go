// Package main is the entry point of posenc.
//
// posenc inspects and converts LSP position encodings: it lists the known
// encoding kinds, validates wire tags, negotiates the encoding for an
// initialize request and converts positions between code-unit measures.
package main

import (
	"os"
)

// version is set by build flags during release
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
