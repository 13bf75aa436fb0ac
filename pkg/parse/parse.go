// Package parse implements the parser of Fur.
//
// The grammar is:
//
//	Expr  = Chain [ ':' Chain ]
//	Chain = Atom { '+' Atom }
//	Atom  = '(' Expr ')' | 'Int' | 'Trivial' | 'sole'
//	      | Integer | 'U' '(' Level ')' | Name
//
// Whitespace may appear between any two tokens. Chains associate to the left.
package parse

import (
	"strconv"
	"strings"

	"src.fur.dev/pkg/core"
	"src.fur.dev/pkg/diag"
)

// Source describes a piece of source code.
type Source struct {
	Name string
	Code string
	// IsFile is true if the source comes from a file.
	IsFile bool
}

// ErrorType is the Type of all the *diag.Error values returned by this
// package.
const ErrorType = "parse error"

// Parse parses the given source as a single term. If the error is not nil, it
// always has type *diag.Error.
func Parse(src Source) (core.Term, error) {
	ps := &parser{srcName: src.Name, src: src.Code}
	ps.skipSpaces()
	t := ps.parseExpr()
	ps.skipSpaces()
	ps.done()
	if ps.err != nil {
		return nil, ps.err
	}
	return t, nil
}

// UnpackError returns the parse error in the chain of err, or nil if there is
// none.
func UnpackError(err error) *diag.Error {
	return diag.UnpackError(err, ErrorType)
}

// Errors.
var (
	errShouldBeAtom    = newError("", "'('", "integer", "'U('", "name")
	errShouldBeRParen  = newError("", "')'")
	errShouldBeLParen  = newError("", "'('")
	errShouldBeLevel   = newError("", "universe level")
	errIntOutOfRange   = newError("integer out of range")
	errLevelOutOfRange = newError("universe level out of range",
		"at most "+strconv.Itoa(int(core.MaxLevel)))
)

// Input is one independent input within a source.
type Input struct {
	Source
	// Offset is the position of the input within the original source.
	Offset int
}

// Inputs splits a source into its inputs, one per line. Blank lines and lines
// whose first non-space character is '#' are skipped.
func Inputs(src Source) []Input {
	var inputs []Input
	offset := 0
	for _, line := range strings.SplitAfter(src.Code, "\n") {
		code := strings.TrimRight(line, "\r\n")
		if trimmed := strings.TrimSpace(code); trimmed != "" && trimmed[0] != '#' {
			inputs = append(inputs, Input{
				Source{Name: src.Name, Code: code, IsFile: src.IsFile}, offset})
		}
		offset += len(line)
	}
	return inputs
}
