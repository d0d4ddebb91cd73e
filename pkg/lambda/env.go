package lambda

import (
	"slices"

	"github.com/samber/lo"
)

// Env maps global names to their terms.
type Env map[string]Term

// Bind returns a copy of e with v bound to t.
func (e Env) Bind(v Variable, t Term) Env {
	out := make(Env, len(e)+1)
	for k, val := range e {
		out[k] = val
	}
	out[v.Name] = t
	return out
}

// Lookup returns the term bound to v.
func (e Env) Lookup(v Variable) (Term, bool) {
	t, ok := e[v.Name]
	return t, ok
}

// Without returns e minus v. e itself is returned when v is not bound.
func (e Env) Without(v Variable) Env {
	if _, ok := e[v.Name]; !ok {
		return e
	}
	out := make(Env, len(e))
	for k, val := range e {
		if k != v.Name {
			out[k] = val
		}
	}
	return out
}

// Names returns the bound names in lexical order.
func (e Env) Names() []string {
	names := lo.Keys(e)
	slices.Sort(names)
	return names
}

// Resolve replaces every free reference to a name bound in env with its
// term. Binders shadow environment entries of the same name, and a binder
// that would capture a free variable of an inserted term is renamed first.
// Inserted terms are not resolved again.
func Resolve(t Term, env Env) Term {
	if len(env) == 0 {
		return t
	}
	switch t := t.(type) {
	case Var:
		if val, ok := env.Lookup(t.V); ok {
			return val
		}
		return t
	case App:
		return App{Fun: Resolve(t.Fun, env), Arg: Resolve(t.Arg, env)}
	case Abs:
		inner := env.Without(t.Bound)
		if len(inner) == 0 {
			return t
		}
		bound, body := t.Bound, t.Body
		if captures(bound, body, inner) {
			avoid := Names(body)
			for _, val := range inner {
				for _, v := range FreeVariables(val).Slice() {
					avoid.Insert(v)
				}
			}
			for name := range inner {
				avoid.Insert(Variable{Name: name})
			}
			fresh := Fresh(bound, avoid)
			body = Replace(body, bound, fresh)
			bound = fresh
		}
		return Abs{Bound: bound, Body: Resolve(body, inner)}
	default:
		unknown(t)
		return nil
	}
}

// captures reports whether resolving body under env would place a term
// with bound free inside the scope of bound.
func captures(bound Variable, body Term, env Env) bool {
	for _, v := range FreeVariables(body).Slice() {
		if val, ok := env.Lookup(v); ok && IsFree(bound, val) {
			return true
		}
	}
	return false
}
