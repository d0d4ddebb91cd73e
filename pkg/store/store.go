// Package store keeps a library of named terms in SQLite. The library is
// the global environment that free variables are resolved against.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vic/golambda/pkg/lambda"
)

var (
	ErrNotFound    = errors.New("definition not found")
	ErrInvalidName = errors.New("invalid definition name")
)

const schema = `
CREATE TABLE IF NOT EXISTS definitions (
	name   TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	term   TEXT NOT NULL
)`

// Definition is a stored term. Source is what the user wrote; Term is the
// source with earlier definitions resolved into it.
type Definition struct {
	Name   string
	Source string
	Term   lambda.Term
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the library at path. ":memory:" gives a
// private in-memory library.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// An in-memory database lives and dies with its connection.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Define parses source, resolves it against the current library and
// stores it under name, replacing any previous definition.
func (s *Store) Define(ctx context.Context, name, source string) (Definition, error) {
	if err := checkName(name); err != nil {
		return Definition{}, err
	}
	term, err := lambda.Parse(source)
	if err != nil {
		return Definition{}, fmt.Errorf("define %s: %w", name, err)
	}
	env, err := s.Env(ctx)
	if err != nil {
		return Definition{}, err
	}
	term = lambda.Resolve(term, env)

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO definitions (name, source, term) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET source = excluded.source, term = excluded.term`,
		name, source, term.String())
	if err != nil {
		return Definition{}, fmt.Errorf("define %s: %w", name, err)
	}
	return Definition{Name: name, Source: source, Term: term}, nil
}

func (s *Store) Lookup(ctx context.Context, name string) (Definition, error) {
	row := s.db.QueryRowContext(ctx, `SELECT source, term FROM definitions WHERE name = ?`, name)
	var source, text string
	if err := row.Scan(&source, &text); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Definition{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return Definition{}, fmt.Errorf("lookup %s: %w", name, err)
	}
	term, err := lambda.Parse(text)
	if err != nil {
		return Definition{}, fmt.Errorf("lookup %s: stored term: %w", name, err)
	}
	return Definition{Name: name, Source: source, Term: term}, nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM definitions WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// List returns every definition ordered by name.
func (s *Store) List(ctx context.Context) ([]Definition, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, source, term FROM definitions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer rows.Close()

	var defs []Definition
	for rows.Next() {
		var name, source, text string
		if err := rows.Scan(&name, &source, &text); err != nil {
			return nil, fmt.Errorf("list: %w", err)
		}
		term, err := lambda.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("list: stored term %s: %w", name, err)
		}
		defs = append(defs, Definition{Name: name, Source: source, Term: term})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return defs, nil
}

// Env returns the library as a resolution environment.
func (s *Store) Env(ctx context.Context) (lambda.Env, error) {
	defs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	env := make(lambda.Env, len(defs))
	for _, d := range defs {
		env[d.Name] = d.Term
	}
	return env, nil
}

// checkName accepts exactly the names the parser reads as a variable.
func checkName(name string) error {
	t, err := lambda.Parse(name)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if v, ok := t.(lambda.Var); !ok || v.V.Name != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
