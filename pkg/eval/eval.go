// Package eval ties the parser and the core together: it turns a piece of
// source code into a result, reporting failures as diagnostic errors.
package eval

import (
	"src.fur.dev/pkg/core"
	"src.fur.dev/pkg/diag"
	"src.fur.dev/pkg/logutil"
	"src.fur.dev/pkg/parse"
)

var logger = logutil.GetLogger("[eval] ")

// TypeErrorType is the Type of *diag.Error values wrapping errors from the
// type checker.
const TypeErrorType = "type error"

// Outcome is the outcome of evaluating a piece of source code.
type Outcome struct {
	Term core.Term
	core.Result
}

// Eval parses the source as a single term and interprets it. If the error is
// not nil, it is a *diag.Error of either parse.ErrorType or TypeErrorType.
func Eval(src parse.Source) (Outcome, error) {
	t, err := parse.Parse(src)
	if err != nil {
		return Outcome{}, err
	}
	logger.Println("interpreting", t)
	r, err := core.Interpret(t)
	if err != nil {
		return Outcome{Term: t}, typeError(src, err)
	}
	return Outcome{t, r}, nil
}

// Check is like Eval, but only infers the type of the term without evaluating
// it.
func Check(src parse.Source) (core.Term, core.Type, error) {
	t, err := parse.Parse(src)
	if err != nil {
		return nil, nil, err
	}
	ty, err := core.Infer(t, core.NewContext())
	if err != nil {
		return t, nil, typeError(src, err)
	}
	return t, ty, nil
}

// UnpackTypeError returns the type error in the chain of err, or nil if there
// is none.
func UnpackTypeError(err error) *diag.Error {
	return diag.UnpackError(err, TypeErrorType)
}

// Terms carry no source positions, so a type error covers the whole source.
func typeError(src parse.Source, err error) *diag.Error {
	return &diag.Error{
		Type:    TypeErrorType,
		Message: err.Error(),
		Context: *diag.NewContext(src.Name, src.Code, diag.Ranging{From: 0, To: len(src.Code)}),
	}
}
