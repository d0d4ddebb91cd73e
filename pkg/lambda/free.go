package lambda

import (
	"slices"

	"github.com/hashicorp/go-set/v3"
)

// VarSet is a set of variables keyed by name.
type VarSet = set.HashSet[Variable, string]

// NewVarSet returns a set holding vs.
func NewVarSet(vs ...Variable) *VarSet {
	s := set.NewHashSet[Variable, string](len(vs))
	for _, v := range vs {
		s.Insert(v)
	}
	return s
}

// SortedNames returns the names in s in lexical order.
func SortedNames(s *VarSet) []string {
	names := make([]string, 0, s.Size())
	for _, v := range s.Slice() {
		names = append(names, v.Name)
	}
	slices.Sort(names)
	return names
}

// FreeVariables returns the variables occurring free in t.
func FreeVariables(t Term) *VarSet {
	fv := NewVarSet()
	collectFree(t, NewVarSet(), fv)
	return fv
}

func collectFree(t Term, bound, fv *VarSet) {
	switch t := t.(type) {
	case Var:
		if !bound.Contains(t.V) {
			fv.Insert(t.V)
		}
	case Abs:
		if bound.Contains(t.Bound) {
			collectFree(t.Body, bound, fv)
			return
		}
		bound.Insert(t.Bound)
		collectFree(t.Body, bound, fv)
		bound.Remove(t.Bound)
	case App:
		collectFree(t.Fun, bound, fv)
		collectFree(t.Arg, bound, fv)
	default:
		unknown(t)
	}
}

// IsFree reports whether v occurs free in t.
func IsFree(v Variable, t Term) bool {
	switch t := t.(type) {
	case Var:
		return t.V.Equal(v)
	case Abs:
		if t.Bound.Equal(v) {
			return false
		}
		return IsFree(v, t.Body)
	case App:
		return IsFree(v, t.Fun) || IsFree(v, t.Arg)
	default:
		unknown(t)
		return false
	}
}

// Names returns every variable occurring in t, bound or free.
func Names(t Term) *VarSet {
	s := NewVarSet()
	collectNames(t, s)
	return s
}

func collectNames(t Term, s *VarSet) {
	switch t := t.(type) {
	case Var:
		s.Insert(t.V)
	case Abs:
		s.Insert(t.Bound)
		collectNames(t.Body, s)
	case App:
		collectNames(t.Fun, s)
		collectNames(t.Arg, s)
	default:
		unknown(t)
	}
}
