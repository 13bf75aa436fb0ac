package core

import "fmt"

// Quote reads back a value as a term. It inverts Eval on values that are not
// stuck.
func Quote(v Value) Term {
	switch v := v.(type) {
	case UniverseVal:
		return UniverseLit{v.Level}
	case IntTypeVal:
		return IntType{}
	case IntLitVal:
		return IntLit{v.Value}
	case UnitTypeVal:
		return UnitType{}
	case UnitLitVal:
		return UnitLit{}
	case NeutralVal:
		return quoteNeutral(v.Neutral)
	default:
		panic(fmt.Sprintf("core: cannot quote value of type %T", v))
	}
}

func quoteNeutral(n Neutral) Term {
	switch n := n.(type) {
	case NeutralAdd:
		return Add{quoteNeutral(n.Left), Quote(n.Right)}
	case NeutralVar:
		return Var{n.Name}
	default:
		panic(fmt.Sprintf("core: cannot quote neutral of type %T", n))
	}
}

// Equal reports whether two values are equal, by comparing their quotations.
func Equal(a, b Value) bool {
	return AlphaEquivalent(Quote(a), Quote(b))
}
