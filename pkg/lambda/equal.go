package lambda

import "fmt"

// Equal reports structural equality. Variables compare by name, so
// alpha-variants such as (λx.x) and (λy.y) are not equal.
func Equal(a, b Term) bool {
	switch a := a.(type) {
	case Var:
		v, ok := b.(Var)
		return ok && a.V.Equal(v.V)
	case Abs:
		v, ok := b.(Abs)
		return ok && a.Bound.Equal(v.Bound) && Equal(a.Body, v.Body)
	case App:
		v, ok := b.(App)
		return ok && Equal(a.Fun, v.Fun) && Equal(a.Arg, v.Arg)
	default:
		unknown(a)
		return false
	}
}

// Canonical renames bound variables to x0, x1, ... in binding order.
// Free variables keep their names and are never reused. Two terms are
// alpha-equivalent exactly when their canonical forms are Equal.
func Canonical(t Term) Term {
	// bound name -> canonical name
	bindings := make(map[string]string)
	free := FreeVariables(t)
	var idx int
	var walk func(Term) Term
	walk = func(tt Term) Term {
		switch v := tt.(type) {
		case Var:
			if name, ok := bindings[v.V.Name]; ok {
				return Var{V: Variable{Name: name}}
			}
			return v
		case Abs:
			canon := fmt.Sprintf("x%d", idx)
			idx++
			for free.Contains(Variable{Name: canon}) {
				canon = fmt.Sprintf("x%d", idx)
				idx++
			}
			// shadowing: save old if any
			old, had := bindings[v.Bound.Name]
			bindings[v.Bound.Name] = canon
			body := walk(v.Body)
			if had {
				bindings[v.Bound.Name] = old
			} else {
				delete(bindings, v.Bound.Name)
			}
			return Abs{Bound: Variable{Name: canon, Type: v.Bound.Type}, Body: body}
		case App:
			return App{Fun: walk(v.Fun), Arg: walk(v.Arg)}
		default:
			unknown(tt)
			return nil
		}
	}
	return walk(t)
}

// AlphaEqual reports whether a and b differ only in bound-variable names.
func AlphaEqual(a, b Term) bool {
	return Equal(Canonical(a), Canonical(b))
}
