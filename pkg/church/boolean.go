// Package church encodes native booleans and naturals as lambda terms and
// decodes normal forms back.
package church

import (
	"github.com/vic/golambda/pkg/lambda"
	"github.com/vic/golambda/pkg/reduce"
)

var (
	trueTerm  = lambda.Lam("a b", lambda.V("a"))
	falseTerm = lambda.Lam("a b", lambda.V("b"))

	notTerm = lambda.Lam("p a b", lambda.Apply(lambda.V("p"), lambda.V("b"), lambda.V("a")))
	andTerm = lambda.Lam("p q", lambda.Apply(lambda.V("p"), lambda.V("q"), lambda.V("p")))
	orTerm  = lambda.Lam("p q", lambda.Apply(lambda.V("p"), lambda.V("p"), lambda.V("q")))
	xorTerm = lambda.Lam("p q", lambda.Apply(lambda.V("p"), lambda.App{Fun: notTerm, Arg: lambda.V("q")}, lambda.V("q")))
)

// evaluation is the strategy every combinator here normalizes with.
var evaluation = reduce.ApplicativeStrategy(false)

// Bool returns λa.λb.a for true and λa.λb.b for false.
func Bool(b bool) lambda.Term {
	if b {
		return trueTerm
	}
	return falseTerm
}

// ToBool normalizes t and decodes it. ok is false when the normal form is
// not a Church boolean.
func ToBool(t lambda.Term) (value, ok bool) {
	abs, isAbs := reduce.Normalize(t, evaluation).(lambda.Abs)
	if !isAbs {
		return false, false
	}
	inner, isAbs := abs.Body.(lambda.Abs)
	if !isAbs || inner.Bound.Equal(abs.Bound) {
		return false, false
	}
	v, isVar := inner.Body.(lambda.Var)
	switch {
	case !isVar:
		return false, false
	case v.V.Equal(abs.Bound):
		return true, true
	case v.V.Equal(inner.Bound):
		return false, true
	}
	return false, false
}

func Not(p lambda.Term) lambda.Term {
	return reduce.Normalize(lambda.Apply(notTerm, p), evaluation)
}

func And(p, q lambda.Term) lambda.Term {
	return reduce.Normalize(lambda.Apply(andTerm, p, q), evaluation)
}

func Or(p, q lambda.Term) lambda.Term {
	return reduce.Normalize(lambda.Apply(orTerm, p, q), evaluation)
}

func Xor(p, q lambda.Term) lambda.Term {
	return reduce.Normalize(lambda.Apply(xorTerm, p, q), evaluation)
}

// Call applies f to arg without reducing.
func Call(f, arg lambda.Term) lambda.Term {
	return lambda.App{Fun: f, Arg: arg}
}
