package church

import (
	"github.com/vic/golambda/pkg/lambda"
	"github.com/vic/golambda/pkg/reduce"
)

var (
	succTerm = lambda.Lam("n f x", lambda.App{
		Fun: lambda.V("f"),
		Arg: lambda.Apply(lambda.V("n"), lambda.V("f"), lambda.V("x")),
	})
	addTerm = lambda.Lam("m n f x", lambda.Apply(
		lambda.V("m"), lambda.V("f"),
		lambda.Apply(lambda.V("n"), lambda.V("f"), lambda.V("x")),
	))
	mulTerm = lambda.Lam("m n f x", lambda.Apply(
		lambda.V("m"), lambda.Apply(lambda.V("n"), lambda.V("f")), lambda.V("x"),
	))
)

// Numeral returns λf.λx.f (f (... x)) with n applications of f.
func Numeral(n uint64) lambda.Term {
	body := lambda.V("x")
	for i := uint64(0); i < n; i++ {
		body = lambda.App{Fun: lambda.V("f"), Arg: body}
	}
	return lambda.Lam("f x", body)
}

// ToNumeral normalizes t and counts the applications in λf.λx.f (... x).
// ok is false when the normal form has any other shape.
func ToNumeral(t lambda.Term) (n uint64, ok bool) {
	f, isAbs := reduce.Normalize(t, evaluation).(lambda.Abs)
	if !isAbs {
		return 0, false
	}
	x, isAbs := f.Body.(lambda.Abs)
	if !isAbs || x.Bound.Equal(f.Bound) {
		return 0, false
	}
	body := x.Body
	for {
		switch b := body.(type) {
		case lambda.Var:
			if !b.V.Equal(x.Bound) {
				return 0, false
			}
			return n, true
		case lambda.App:
			head, isVar := b.Fun.(lambda.Var)
			if !isVar || !head.V.Equal(f.Bound) {
				return 0, false
			}
			n++
			body = b.Arg
		default:
			return 0, false
		}
	}
}

func Succ(n lambda.Term) lambda.Term {
	return reduce.Normalize(lambda.Apply(succTerm, n), evaluation)
}

func Add(m, n lambda.Term) lambda.Term {
	return reduce.Normalize(lambda.Apply(addTerm, m, n), evaluation)
}

func Mul(m, n lambda.Term) lambda.Term {
	return reduce.Normalize(lambda.Apply(mulTerm, m, n), evaluation)
}
