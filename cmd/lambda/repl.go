package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/samber/lo"

	"github.com/vic/golambda/pkg/lambda"
	"github.com/vic/golambda/pkg/reduce"
	"github.com/vic/golambda/pkg/store"
)

const (
	historyFile = ".lambda_history"
	prompt      = "λ> "
)

const helpText = `Enter a term to reduce it, or a command:
  :def name = term   add a definition to the library
  :undef name        remove a definition
  :defs              list definitions
  :strategy name     switch strategy (name, value, normal, applicative, head)
  :eta on|off        toggle η-reduction
  :fv term           show the free variables of a term
  :compare term      reduce with every strategy
  :quit              exit`

type session struct {
	ctx      context.Context
	lib      *store.Store
	strategy reduce.Strategy
	maxSteps uint64
}

func runREPL(ctx context.Context, lib *store.Store, strategy reduce.Strategy, maxSteps uint64) int {
	fmt.Println("λ-calculus REPL. Ctrl+D exits, :help lists commands.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	s := &session{ctx: ctx, lib: lib, strategy: strategy, maxSteps: maxSteps}
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if line == ":quit" || line == ":q" {
			return 0
		}
		out, err := s.eval(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if out != "" {
			fmt.Println(out)
		}
	}
}

// eval runs one line of input and returns what to print.
func (s *session) eval(line string) (string, error) {
	if !strings.HasPrefix(line, ":") {
		term, err := s.parse(line)
		if err != nil {
			return "", err
		}
		res, err := reduce.New(s.strategy, reduce.WithMaxSteps(s.maxSteps)).Reduce(s.ctx, term)
		if err != nil {
			return "", err
		}
		return res.String(), nil
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case ":help", ":h":
		return helpText, nil
	case ":def":
		name, src, ok := strings.Cut(arg, "=")
		if !ok {
			return "", errors.New("usage: :def name = term")
		}
		def, err := s.lib.Define(s.ctx, strings.TrimSpace(name), strings.TrimSpace(src))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s := %s", def.Name, def.Term), nil
	case ":undef":
		return "", s.lib.Delete(s.ctx, arg)
	case ":defs":
		defs, err := s.lib.List(s.ctx)
		if err != nil {
			return "", err
		}
		return strings.Join(lo.Map(defs, func(d store.Definition, _ int) string {
			return fmt.Sprintf("%s := %s", d.Name, d.Term)
		}), "\n"), nil
	case ":strategy":
		st, err := reduce.ParseStrategy(arg, s.strategy.Eta && !kindWeak(arg))
		if err != nil {
			return "", err
		}
		s.strategy = st
		return "strategy: " + st.String(), nil
	case ":eta":
		st := s.strategy
		st.Eta = arg == "on"
		if err := st.Validate(); err != nil {
			return "", err
		}
		s.strategy = st
		return "strategy: " + st.String(), nil
	case ":fv":
		term, err := lambda.Parse(arg)
		if err != nil {
			return "", err
		}
		return "{" + strings.Join(lambda.SortedNames(lambda.FreeVariables(term)), ", ") + "}", nil
	case ":compare":
		term, err := s.parse(arg)
		if err != nil {
			return "", err
		}
		results := reduce.Compare(s.ctx, term, s.strategy.Eta, reduce.WithReducerOptions(reduce.WithMaxSteps(s.maxSteps)))
		return formatComparison(results), nil
	default:
		return "", fmt.Errorf("unknown command %s, try :help", cmd)
	}
}

// parse parses src and resolves it against the library.
func (s *session) parse(src string) (lambda.Term, error) {
	term, err := lambda.Parse(src)
	if err != nil {
		return nil, err
	}
	env, err := s.lib.Env(s.ctx)
	if err != nil {
		return nil, err
	}
	return lambda.Resolve(term, env), nil
}

func kindWeak(name string) bool {
	st, err := reduce.ParseStrategy(name, false)
	return err == nil && st.Kind.Weak()
}
