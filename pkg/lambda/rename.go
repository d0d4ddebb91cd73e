package lambda

// Replace rewrites every occurrence of from in t, references and binders
// alike, to to. It is a blind rename: callers must pick a name that does
// not occur in t.
func Replace(t Term, from, to Variable) Term {
	switch t := t.(type) {
	case Var:
		return Var{V: rename(t.V, from, to)}
	case Abs:
		return Abs{Bound: rename(t.Bound, from, to), Body: Replace(t.Body, from, to)}
	case App:
		return App{Fun: Replace(t.Fun, from, to), Arg: Replace(t.Arg, from, to)}
	default:
		unknown(t)
		return nil
	}
}

func rename(v, from, to Variable) Variable {
	if v.Equal(from) {
		return to
	}
	return v
}

// Fresh derives a name from v that is not in avoid by appending primes:
// x', x'', ... The annotation is kept.
func Fresh(v Variable, avoid *VarSet) Variable {
	fresh := Variable{Name: v.Name + "'", Type: v.Type}
	for avoid.Contains(fresh) {
		fresh.Name += "'"
	}
	return fresh
}
