package core

import "fmt"

// NameNotFound is returned when inferring the type of a variable that is not
// in the context.
type NameNotFound struct {
	Name Name
}

func (e NameNotFound) Error() string {
	return "not found: " + e.Name
}

// TypeMismatch is returned when a term is checked against a type that is not
// equal to its inferred type.
type TypeMismatch struct {
	Expected Term
	Actual   Term
}

func (e TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// UniverseOverflow is returned when inferring the type of the highest
// universe.
type UniverseOverflow struct {
	Level Level
}

func (e UniverseOverflow) Error() string {
	return fmt.Sprintf("universe overflow: U(%d) has no type, levels must be below %d",
		e.Level, MaxLevel)
}

// SynthesisFailure is returned when inferring the type of a term that can
// only be checked against a given type.
type SynthesisFailure struct {
	Term Term
}

func (e SynthesisFailure) Error() string {
	return fmt.Sprintf("cannot synthesize a type for %s, add an annotation", e.Term)
}
