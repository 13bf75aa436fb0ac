package core

// Infer synthesizes the type of a term.
func Infer(t Term, ctx Context) (Type, error) {
	switch t := t.(type) {
	case Annotated:
		if err := Check(t.Type, UniverseVal{MaxLevel}, ctx); err != nil {
			return nil, err
		}
		ty := Eval(t.Type, ctx.Env())
		if err := Check(t.Expr, ty, ctx); err != nil {
			return nil, err
		}
		return ty, nil
	case UniverseLit:
		if t.Level >= MaxLevel {
			return nil, UniverseOverflow{t.Level}
		}
		return UniverseVal{t.Level + 1}, nil
	case IntType:
		return UniverseVal{0}, nil
	case IntLit:
		return IntTypeVal{}, nil
	case Add:
		if err := Check(t.Left, IntTypeVal{}, ctx); err != nil {
			return nil, err
		}
		if err := Check(t.Right, IntTypeVal{}, ctx); err != nil {
			return nil, err
		}
		return IntTypeVal{}, nil
	case Var:
		b, ok := ctx.Lookup(t.Name)
		if !ok {
			return nil, NameNotFound{t.Name}
		}
		return b.Type, nil
	case UnitType:
		return UniverseVal{0}, nil
	case UnitLit:
		return UnitTypeVal{}, nil
	default:
		// Every term has a rule above. Terms added later that can only be
		// checked, like the introduction forms of binders, end up here.
		return nil, SynthesisFailure{t}
	}
}

// Check checks a term against a type. When no rule applies directly, it infers
// the type of the term and compares it with the expected one.
//
// Universes are cumulative, but strictly: U(i) checks against U(j) only when
// i < j.
func Check(t Term, ty Type, ctx Context) error {
	switch t := t.(type) {
	case UniverseLit:
		if u, ok := ty.(UniverseVal); ok && t.Level < u.Level {
			return nil
		}
	case IntType, UnitType:
		if _, ok := ty.(UniverseVal); ok {
			return nil
		}
	case IntLit:
		if _, ok := ty.(IntTypeVal); ok {
			return nil
		}
	case UnitLit:
		if _, ok := ty.(UnitTypeVal); ok {
			return nil
		}
	}
	actual, err := Infer(t, ctx)
	if err != nil {
		return err
	}
	if !Equal(ty, actual) {
		return TypeMismatch{Expected: Quote(ty), Actual: Quote(actual)}
	}
	return nil
}
