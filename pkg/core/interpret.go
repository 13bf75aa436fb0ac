package core

// Result is the outcome of interpreting a term.
type Result struct {
	Value Value
	Type  Type
}

// Interpret infers the type of a term under an empty context, and then
// evaluates it under an empty environment. Nothing is carried over between
// calls.
func Interpret(t Term) (Result, error) {
	ty, err := Infer(t, NewContext())
	if err != nil {
		return Result{}, err
	}
	return Result{Eval(t, NewEnv()), ty}, nil
}

// String shows the result as "value : type", both in normal form.
func (r Result) String() string {
	return Annotated{Quote(r.Value), Quote(r.Type)}.String()
}
