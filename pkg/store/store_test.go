package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/vic/golambda/pkg/lambda"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDefineAndLookup(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	def, err := s.Define(ctx, "id", `\x.x`)
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	if def.Term.String() != "(λx.x)" || def.Source != `\x.x` {
		t.Errorf("Define returned %+v", def)
	}

	got, err := s.Lookup(ctx, "id")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !lambda.Equal(got.Term, def.Term) || got.Source != def.Source {
		t.Errorf("Lookup = %+v, want %+v", got, def)
	}

	// Redefinition replaces.
	if _, err := s.Define(ctx, "id", `\y.y`); err != nil {
		t.Fatalf("Define: %v", err)
	}
	got, err = s.Lookup(ctx, "id")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.Term.String() != "(λy.y)" {
		t.Errorf("after redefinition Lookup = %s", got.Term)
	}
}

func TestDefineResolvesEarlierDefinitions(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	if _, err := s.Define(ctx, "true", `\a b.a`); err != nil {
		t.Fatalf("Define: %v", err)
	}
	def, err := s.Define(ctx, "k", `\q.true`)
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	if got := def.Term.String(); got != "(λq.(λa.(λb.a)))" {
		t.Errorf("k = %s", got)
	}

	// A binder with the same name shadows the definition.
	def, err = s.Define(ctx, "shadow", `\true.true`)
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	if got := def.Term.String(); got != "(λtrue.true)" {
		t.Errorf("shadow = %s", got)
	}
}

func TestListAndEnv(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	for name, src := range map[string]string{"b": "y", "a": "x", "c": `\z.z`} {
		if _, err := s.Define(ctx, name, src); err != nil {
			t.Fatalf("Define(%s): %v", name, err)
		}
	}

	defs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(defs) != 3 || defs[0].Name != "a" || defs[1].Name != "b" || defs[2].Name != "c" {
		t.Errorf("List = %+v", defs)
	}

	env, err := s.Env(ctx)
	if err != nil {
		t.Fatalf("Env: %v", err)
	}
	term, err := lambda.Parse("a b c")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := lambda.Resolve(term, env).String(); got != "((x y) (λz.z))" {
		t.Errorf("Resolve = %s", got)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	if _, err := s.Define(ctx, "id", `\x.x`); err != nil {
		t.Fatalf("Define: %v", err)
	}
	if err := s.Delete(ctx, "id"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Lookup(ctx, "id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup after Delete: %v", err)
	}
	if err := s.Delete(ctx, "id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: %v", err)
	}
}

func TestInvalidDefinitions(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	for _, name := range []string{"", "a b", `\x`, "let", "(x)", "1x"} {
		if _, err := s.Define(ctx, name, "x"); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Define(%q): expected ErrInvalidName, got %v", name, err)
		}
	}

	_, err := s.Define(ctx, "bad", `\x`)
	var perr *lambda.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("Define with bad source: expected *ParseError, got %v", err)
	}
	if _, err := s.Lookup(ctx, "bad"); !errors.Is(err, ErrNotFound) {
		t.Errorf("failed Define should store nothing, Lookup: %v", err)
	}
}

func TestPersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "defs.db")

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.Define(ctx, "two", `\f x.f (f x)`); err != nil {
		t.Fatalf("Define: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	def, err := s.Lookup(ctx, "two")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got := def.Term.String(); got != "(λf.(λx.(f (f x))))" {
		t.Errorf("two = %s", got)
	}
}
