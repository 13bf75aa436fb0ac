package core

// Value is the semantic domain that terms evaluate to. Like Term, the set of
// values is closed.
type Value interface {
	isValue()
}

// UniverseVal is the value of UniverseLit.
type UniverseVal struct{ Level Level }

// IntTypeVal is the value of IntType.
type IntTypeVal struct{}

// IntLitVal is the value of an integer literal, or of a sum of them.
type IntLitVal struct{ Value Int }

// UnitTypeVal is the value of UnitType.
type UnitTypeVal struct{}

// UnitLitVal is the value of UnitLit.
type UnitLitVal struct{}

// NeutralVal is a computation that is stuck on a free variable.
type NeutralVal struct{ Neutral Neutral }

func (UniverseVal) isValue() {}
func (IntTypeVal) isValue()  {}
func (IntLitVal) isValue()   {}
func (UnitTypeVal) isValue() {}
func (UnitLitVal) isValue()  {}
func (NeutralVal) isValue()  {}

// Type is a Value used as a type.
type Type = Value

// Neutral is a stuck computation. Each primitive operation that can get stuck
// contributes one shape.
type Neutral interface {
	isNeutral()
}

// NeutralAdd is an addition whose left operand is stuck. The right operand may
// be any value, stuck or not.
type NeutralAdd struct {
	Left  Neutral
	Right Value
}

// NeutralVar is a free variable with no known value.
type NeutralVar struct{ Name Name }

func (NeutralAdd) isNeutral() {}
func (NeutralVar) isNeutral() {}

// FreeVar returns the value of a variable with no known value.
func FreeVar(name Name) Value {
	return NeutralVal{NeutralVar{name}}
}
