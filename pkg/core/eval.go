package core

import "fmt"

// Eval evaluates a term under an environment. It never fails: checking is the
// job of Infer and Check, and Eval only assumes what they establish.
//
// A variable not bound in the environment evaluates to a neutral reference to
// itself.
func Eval(t Term, env Env) Value {
	switch t := t.(type) {
	case Annotated:
		return Eval(t.Expr, env)
	case UniverseLit:
		return UniverseVal{t.Level}
	case IntType:
		return IntTypeVal{}
	case IntLit:
		return IntLitVal{t.Value}
	case Add:
		return AddValues(Eval(t.Left, env), Eval(t.Right, env))
	case Var:
		if v, ok := env.Lookup(t.Name); ok {
			return v
		}
		return FreeVar(t.Name)
	case UnitType:
		return UnitTypeVal{}
	case UnitLit:
		return UnitLitVal{}
	default:
		panic(fmt.Sprintf("core: cannot evaluate term of type %T", t))
	}
}

// AddValues adds two values of type Int.
//
// Literals are summed, wrapping around on overflow. If either operand is
// neutral, the result is a neutral addition with the stuck operand on the left;
// when both are, the left one is taken. Addition commutes, so this reordering
// is harmless, but quoting the result may not reproduce the original operand
// order.
//
// Any other operands mean the caller did not check the term first. This is a
// bug, and AddValues panics.
func AddValues(a, b Value) Value {
	if a, ok := a.(IntLitVal); ok {
		if b, ok := b.(IntLitVal); ok {
			return IntLitVal{a.Value + b.Value}
		}
	}
	if a, ok := a.(NeutralVal); ok {
		return NeutralVal{NeutralAdd{a.Neutral, b}}
	}
	if b, ok := b.(NeutralVal); ok {
		return NeutralVal{NeutralAdd{b.Neutral, a}}
	}
	panic(fmt.Sprintf("core: adding non-integer values %s and %s", Quote(a), Quote(b)))
}
