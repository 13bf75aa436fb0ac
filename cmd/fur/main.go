// Fur is a small dependently typed language with cumulative universes,
// integers and a unit type. The fur command evaluates Fur interactively or
// from scripts, and can also act as a language server.
package main

import (
	"os"

	"src.fur.dev/pkg/buildinfo"
	"src.fur.dev/pkg/lsp"
	"src.fur.dev/pkg/prog"
	"src.fur.dev/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program, lsp.Program, shell.Program{})))
}
