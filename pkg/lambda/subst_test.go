package lambda

import (
	"slices"
	"testing"
)

func mustParse(t *testing.T, input string) Term {
	t.Helper()
	term, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return term
}

func TestFreeVariables(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"x", []string{"x"}},
		{`\x.x`, []string{}},
		{`\x.x y`, []string{"y"}},
		{`(\x.x) x`, []string{"x"}},
		{`\x.\y.z`, []string{"z"}},
		{`\x.(\x.x) x`, []string{}},
		{`f (\f.f) g`, []string{"f", "g"}},
	}

	for _, tt := range tests {
		got := SortedNames(FreeVariables(mustParse(t, tt.input)))
		if !slices.Equal(got, tt.want) {
			t.Errorf("FreeVariables(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsFreeAndNames(t *testing.T) {
	term := mustParse(t, `\x.x y (\y.y)`)
	if IsFree(Variable{Name: "x"}, term) {
		t.Errorf("x should be bound in %s", term)
	}
	if !IsFree(Variable{Name: "y"}, term) {
		t.Errorf("y should be free in %s", term)
	}
	if got := SortedNames(Names(term)); !slices.Equal(got, []string{"x", "y"}) {
		t.Errorf("Names = %v", got)
	}
}

func TestReplace(t *testing.T) {
	term := mustParse(t, `\x.x y`)
	got := Replace(term, Variable{Name: "x"}, Variable{Name: "z"})
	if got.String() != "(λz.(z y))" {
		t.Errorf("Replace = %s", got)
	}
}

func TestFresh(t *testing.T) {
	x := Variable{Name: "x", Type: "Int"}
	got := Fresh(x, NewVarSet(Variable{Name: "x"}, Variable{Name: "x'"}))
	if got.Name != "x''" || got.Type != "Int" {
		t.Errorf("Fresh = %v, want x'':Int", got)
	}
	if got := Fresh(x, NewVarSet()); got.Name != "x'" {
		t.Errorf("Fresh with nothing to avoid = %v, want x'", got)
	}
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name   string
		term   string
		value  string
		target string
		want   string
	}{
		{"variable", "x", "y", "x", "y"},
		{"other variable", "z", "y", "x", "z"},
		{"application", "x (x z)", `\a.a`, "x", "((λa.a) ((λa.a) z))"},
		{"shadowed", `\x.x`, "y", "x", "(λx.x)"},
		{"under binder", `\y.x`, "z", "x", "(λy.z)"},
		{"capture", `\y.x`, "y", "x", "(λy'.y)"},
		{"capture avoids body names", `\y.x y'`, "y", "x", "(λy''.(y y'))"},
		{"capture of free target", `\x.f a`, `\a.x`, "f", "(λx'.((λa.x) a))"},
		{"not free leaves binder", `\y.z`, "y", "x", "(λy.z)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Substitute(mustParse(t, tt.term), mustParse(t, tt.value), Variable{Name: tt.target})
			if got.String() != tt.want {
				t.Errorf("%s[%s := %s] = %s, want %s", tt.term, tt.target, tt.value, got, tt.want)
			}
		})
	}
}

// TestSubstituteNotFree checks that substituting for an absent variable
// returns a term equal to the input.
func TestSubstituteNotFree(t *testing.T) {
	inputs := []string{
		`\y.y`,
		`\x y.x y`,
		`(\z.z) (\y.y w)`,
		`\y.\x.x y`,
	}
	for _, input := range inputs {
		term := mustParse(t, input)
		got := Substitute(term, V("y"), Variable{Name: "q"})
		if !Equal(got, term) {
			t.Errorf("%s[q := y] = %s, want it unchanged", term, got)
		}
	}
}

// TestSubstituteKeepsValueFree checks that free variables of the value stay
// free after substitution.
func TestSubstituteKeepsValueFree(t *testing.T) {
	body := mustParse(t, `\a b.x a b`)
	value := mustParse(t, "a b")
	got := Substitute(body, value, Variable{Name: "x"})
	fv := FreeVariables(got)
	for _, name := range []string{"a", "b"} {
		if !fv.Contains(Variable{Name: name}) {
			t.Errorf("%s was captured in %s", name, got)
		}
	}
	if !AlphaEqual(got, mustParse(t, `\p q.a b p q`)) {
		t.Errorf("Substitute = %s", got)
	}
}
