package lambda

import "strings"

// V builds a variable reference.
func V(name string) Term {
	return Var{V: Variable{Name: name}}
}

// Typed builds an annotated variable, for use as a binder.
func Typed(name, typ string) Variable {
	return Variable{Name: name, Type: typ}
}

// Lam builds curried abstractions over the space separated binder names:
// Lam("f x", body) is (λf.(λx.body)).
func Lam(names string, body Term) Term {
	fields := strings.Fields(names)
	for i := len(fields) - 1; i >= 0; i-- {
		body = Abs{Bound: Variable{Name: fields[i]}, Body: body}
	}
	return body
}

// Apply builds a left-associative application: Apply(f, a, b) is ((f a) b).
func Apply(f Term, args ...Term) Term {
	for _, a := range args {
		f = App{Fun: f, Arg: a}
	}
	return f
}
