package lambda

// Substitute computes t[target := value] without capturing free variables
// of value.
//
// Substitution stops at a binder equal to target, and subterms where target
// is not free come back unchanged. When a binder would
// capture a free variable of value, it is renamed to a fresh name that
// collides with nothing in value, the abstraction body or target.
func Substitute(t, value Term, target Variable) Term {
	return substitute(t, value, target, nil)
}

// substitute carries the free variables of value, computed on first use.
func substitute(t, value Term, target Variable, fv *VarSet) Term {
	switch t := t.(type) {
	case Var:
		if t.V.Equal(target) {
			return value
		}
		return t
	case App:
		if fv == nil {
			fv = FreeVariables(value)
		}
		return App{
			Fun: substitute(t.Fun, value, target, fv),
			Arg: substitute(t.Arg, value, target, fv),
		}
	case Abs:
		if t.Bound.Equal(target) || !IsFree(target, t.Body) {
			return t
		}
		if fv == nil {
			fv = FreeVariables(value)
		}
		if !fv.Contains(t.Bound) {
			return Abs{Bound: t.Bound, Body: substitute(t.Body, value, target, fv)}
		}
		avoid := Names(t.Body)
		for _, v := range fv.Slice() {
			avoid.Insert(v)
		}
		avoid.Insert(target)
		fresh := Fresh(t.Bound, avoid)
		body := Replace(t.Body, t.Bound, fresh)
		return Abs{Bound: fresh, Body: substitute(body, value, target, fv)}
	default:
		unknown(t)
		return nil
	}
}
