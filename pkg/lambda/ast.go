package lambda

import (
	"fmt"
	"strings"
)

// Variable is an identifier with an optional type annotation.
// Identity is the name alone; the annotation is decoration.
type Variable struct {
	Name string
	Type string
}

// Equal reports whether v and o name the same variable.
func (v Variable) Equal(o Variable) bool {
	return v.Name == o.Name
}

// Hash keys variables by name in a VarSet.
func (v Variable) Hash() string {
	return v.Name
}

func (v Variable) String() string {
	if v.Type == "" {
		return v.Name
	}
	return v.Name + ":" + v.Type
}

// Term represents a lambda calculus term.
// The only implementations are Var, Abs and App.
type Term interface {
	isTerm()
	String() string
}

// Var represents a variable usage.
type Var struct {
	V Variable
}

func (Var) isTerm() {}

func (v Var) String() string {
	return v.V.Name
}

// Abs represents an abstraction (lambda). Bound scopes over Body only.
type Abs struct {
	Bound Variable
	Body  Term
}

func (Abs) isTerm() {}

func (a Abs) String() string {
	var b strings.Builder
	write(&b, a)
	return b.String()
}

// App represents an application.
type App struct {
	Fun Term
	Arg Term
}

func (App) isTerm() {}

func (a App) String() string {
	var b strings.Builder
	write(&b, a)
	return b.String()
}

// write renders t fully parenthesized: (λx.(f x)).
func write(b *strings.Builder, t Term) {
	switch t := t.(type) {
	case Var:
		b.WriteString(t.V.Name)
	case Abs:
		b.WriteString("(λ")
		b.WriteString(t.Bound.String())
		b.WriteByte('.')
		write(b, t.Body)
		b.WriteByte(')')
	case App:
		b.WriteByte('(')
		write(b, t.Fun)
		b.WriteByte(' ')
		write(b, t.Arg)
		b.WriteByte(')')
	default:
		unknown(t)
	}
}

func unknown(t Term) {
	panic(fmt.Sprintf("lambda: unexpected term %T", t))
}
