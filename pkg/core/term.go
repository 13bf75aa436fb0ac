// Package core implements the type checker and the evaluator of Fur.
//
// Terms are checked bidirectionally with Infer and Check, and evaluated by Eval
// into a semantic domain of values. Quote reads values back as terms; two
// values are equal exactly when their quotations are structurally equal. This
// is normalization by evaluation: comparing types never rewrites terms
// directly.
package core

import (
	"math"
	"strconv"
)

// Level is the level of a universe.
type Level = uint8

// MaxLevel is the highest universe level. U(MaxLevel) exists but has no type.
const MaxLevel Level = math.MaxUint8

// Int is the type of integer literals.
type Int = int64

// Name is the name of a variable.
type Name = string

// Term is the syntax of Fur. The set of terms is closed; every function
// consuming terms switches over all the concrete types below.
type Term interface {
	String() string
	isTerm()
}

// Annotated is a term with an explicit type ascription, written "e : t".
type Annotated struct {
	Expr Term
	Type Term
}

// UniverseLit is the type of types at a level, written "U(i)".
type UniverseLit struct{ Level Level }

// IntType is the type of integers, written "Int".
type IntType struct{}

// IntLit is an integer literal.
type IntLit struct{ Value Int }

// Add is the sum of two integers, written "a + b".
type Add struct {
	Left  Term
	Right Term
}

// Var is a reference to a name.
type Var struct{ Name Name }

// UnitType is the type with a single inhabitant, written "Trivial".
type UnitType struct{}

// UnitLit is the only inhabitant of UnitType, written "sole".
type UnitLit struct{}

func (Annotated) isTerm()   {}
func (UniverseLit) isTerm() {}
func (IntType) isTerm()     {}
func (IntLit) isTerm()      {}
func (Add) isTerm()         {}
func (Var) isTerm()         {}
func (UnitType) isTerm()    {}
func (UnitLit) isTerm()     {}

// Precedence of terms when rendered. Higher binds tighter.
type prec int

const (
	precAnnotated prec = iota
	precAdd
	precAtom
)

func precOf(t Term) prec {
	switch t.(type) {
	case Annotated:
		return precAnnotated
	case Add:
		return precAdd
	default:
		return precAtom
	}
}

// Renders t, wrapped in parentheses if it binds more loosely than min.
func withParens(t Term, min prec) string {
	if precOf(t) < min {
		return "(" + t.String() + ")"
	}
	return t.String()
}

// Both operands of ':' are addition chains.
func (t Annotated) String() string {
	return withParens(t.Expr, precAdd) + " : " + withParens(t.Type, precAdd)
}

func (t UniverseLit) String() string { return "U(" + strconv.Itoa(int(t.Level)) + ")" }
func (IntType) String() string       { return "Int" }
func (t IntLit) String() string      { return strconv.FormatInt(t.Value, 10) }

// Addition associates to the left, so only a right operand that is itself an
// addition needs parentheses.
func (t Add) String() string {
	return withParens(t.Left, precAdd) + " + " + withParens(t.Right, precAtom)
}

func (t Var) String() string   { return t.Name }
func (UnitType) String() string { return "Trivial" }
func (UnitLit) String() string  { return "sole" }

// AlphaEquivalent reports whether two terms are equal up to the renaming of
// bound variables. There are no binders yet, so this is structural equality.
//
// Introducing a binder requires this function to compare modulo renaming,
// e.g. by converting to de Bruijn indices first.
func AlphaEquivalent(a, b Term) bool {
	switch a := a.(type) {
	case Annotated:
		b, ok := b.(Annotated)
		return ok && AlphaEquivalent(a.Expr, b.Expr) && AlphaEquivalent(a.Type, b.Type)
	case UniverseLit:
		b, ok := b.(UniverseLit)
		return ok && a.Level == b.Level
	case IntType:
		_, ok := b.(IntType)
		return ok
	case IntLit:
		b, ok := b.(IntLit)
		return ok && a.Value == b.Value
	case Add:
		b, ok := b.(Add)
		return ok && AlphaEquivalent(a.Left, b.Left) && AlphaEquivalent(a.Right, b.Right)
	case Var:
		b, ok := b.(Var)
		return ok && a.Name == b.Name
	case UnitType:
		_, ok := b.(UnitType)
		return ok
	case UnitLit:
		_, ok := b.(UnitLit)
		return ok
	default:
		return false
	}
}
