package reduce

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/vic/golambda/pkg/lambda"
)

// ErrBudgetExceeded is matched by BudgetExceededError.
var ErrBudgetExceeded = errors.New("reduction budget exceeded")

// BudgetExceededError is returned when a reduction needs more than the
// configured number of steps. Divergent terms such as (λx.x x)(λx.x x)
// always end here once a budget is set.
type BudgetExceededError struct {
	Strategy Strategy
	Limit    uint64
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("%s: %s reduction stopped after %d steps", ErrBudgetExceeded, e.Strategy, e.Limit)
}

func (e *BudgetExceededError) Is(target error) bool {
	return target == ErrBudgetExceeded
}

// Stats holds reduction statistics.
type Stats struct {
	TotalReductions uint64
	Beta            uint64
	Eta             uint64
}

// Reducer drives a term to normal form under one strategy. A Reducer may
// be shared by goroutines reducing distinct terms; statistics and the
// trace accumulate across calls.
type Reducer struct {
	strategy Strategy
	maxSteps uint64

	// Stats
	ops      uint64
	statBeta uint64
	statEta  uint64

	traceBuf []TraceEvent
	traceCap uint64
	traceIdx uint64
	traceOn  uint32
}

type Option func(*Reducer)

// WithMaxSteps bounds each Reduce call to n contractions. Zero means
// unbounded.
func WithMaxSteps(n uint64) Option {
	return func(r *Reducer) { r.maxSteps = n }
}

// WithTrace enables the contraction trace with the given capacity.
func WithTrace(capacity int) Option {
	return func(r *Reducer) { r.EnableTrace(capacity) }
}

func New(s Strategy, opts ...Option) *Reducer {
	r := &Reducer{strategy: s}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reducer) Strategy() Strategy { return r.strategy }
func (r *Reducer) MaxSteps() uint64   { return r.maxSteps }

func (r *Reducer) GetStats() Stats {
	return Stats{
		TotalReductions: atomic.LoadUint64(&r.ops),
		Beta:            atomic.LoadUint64(&r.statBeta),
		Eta:             atomic.LoadUint64(&r.statEta),
	}
}

// Reduce reduces t under the reducer's strategy. It fails when the
// strategy is invalid, ctx is done, or the step budget runs out.
func (r *Reducer) Reduce(ctx context.Context, t lambda.Term) (lambda.Term, error) {
	if err := r.strategy.Validate(); err != nil {
		return nil, err
	}
	m := &machine{r: r, ctx: ctx, eta: r.strategy.Eta}
	return dispatch[r.strategy.Kind](m, t)
}

// Normalize reduces t under s without a step budget. It does not return
// for terms without a normal form under s, and panics if s is invalid.
func Normalize(t lambda.Term, s Strategy) lambda.Term {
	out, err := New(s).Reduce(context.Background(), t)
	if err != nil {
		panic(err)
	}
	return out
}

var dispatch = [...]func(*machine, lambda.Term) (lambda.Term, error){
	CallByName:  (*machine).bn,
	CallByValue: (*machine).bv,
	Normal:      (*machine).no,
	Applicative: (*machine).ao,
	HeadSpine:   (*machine).hs,
}

// machine holds the state of a single Reduce call.
type machine struct {
	r     *Reducer
	ctx   context.Context
	eta   bool
	steps uint64
}

func (m *machine) step(rule RuleKind, binder lambda.Variable, result lambda.Term) error {
	if m.r.maxSteps > 0 && m.steps >= m.r.maxSteps {
		return &BudgetExceededError{Strategy: m.r.strategy, Limit: m.r.maxSteps}
	}
	if err := m.ctx.Err(); err != nil {
		return err
	}
	m.steps++
	atomic.AddUint64(&m.r.ops, 1)
	switch rule {
	case RuleBeta:
		atomic.AddUint64(&m.r.statBeta, 1)
	case RuleEta:
		atomic.AddUint64(&m.r.statEta, 1)
	}
	m.r.recordTrace(rule, binder, result)
	return nil
}

// beta contracts the redex (abs arg).
func (m *machine) beta(abs lambda.Abs, arg lambda.Term) (lambda.Term, error) {
	contractum := lambda.Substitute(abs.Body, arg, abs.Bound)
	if err := m.step(RuleBeta, abs.Bound, contractum); err != nil {
		return nil, err
	}
	return contractum, nil
}

// etaRedex matches λx.(e x) with x not free in e and returns e.
func (m *machine) etaRedex(abs lambda.Abs) (lambda.Term, bool, error) {
	if !m.eta {
		return nil, false, nil
	}
	app, ok := abs.Body.(lambda.App)
	if !ok {
		return nil, false, nil
	}
	x, ok := app.Arg.(lambda.Var)
	if !ok || !x.V.Equal(abs.Bound) || lambda.IsFree(abs.Bound, app.Fun) {
		return nil, false, nil
	}
	if err := m.step(RuleEta, abs.Bound, app.Fun); err != nil {
		return nil, false, err
	}
	return app.Fun, true, nil
}

// bn is call-by-name: weak head normal form, arguments untouched.
func (m *machine) bn(t lambda.Term) (lambda.Term, error) {
	app, ok := t.(lambda.App)
	if !ok {
		return t, nil
	}
	fun, err := m.bn(app.Fun)
	if err != nil {
		return nil, err
	}
	abs, ok := fun.(lambda.Abs)
	if !ok {
		return lambda.App{Fun: fun, Arg: app.Arg}, nil
	}
	next, err := m.beta(abs, app.Arg)
	if err != nil {
		return nil, err
	}
	return m.bn(next)
}

// no is normal order: call-by-name on the head, then everything else.
func (m *machine) no(t lambda.Term) (lambda.Term, error) {
	switch t := t.(type) {
	case lambda.Var:
		return t, nil
	case lambda.Abs:
		e, ok, err := m.etaRedex(t)
		if err != nil {
			return nil, err
		}
		if ok {
			return m.no(e)
		}
		body, err := m.no(t.Body)
		if err != nil {
			return nil, err
		}
		return lambda.Abs{Bound: t.Bound, Body: body}, nil
	case lambda.App:
		fun, err := m.bn(t.Fun)
		if err != nil {
			return nil, err
		}
		if abs, ok := fun.(lambda.Abs); ok {
			next, err := m.beta(abs, t.Arg)
			if err != nil {
				return nil, err
			}
			return m.no(next)
		}
		fun, err = m.no(fun)
		if err != nil {
			return nil, err
		}
		arg, err := m.no(t.Arg)
		if err != nil {
			return nil, err
		}
		return lambda.App{Fun: fun, Arg: arg}, nil
	default:
		panic(fmt.Sprintf("reduce: unexpected term %T", t))
	}
}

// bv is call-by-value: arguments reduced before substitution, never
// under a λ.
func (m *machine) bv(t lambda.Term) (lambda.Term, error) {
	app, ok := t.(lambda.App)
	if !ok {
		return t, nil
	}
	fun, err := m.bv(app.Fun)
	if err != nil {
		return nil, err
	}
	arg, err := m.bv(app.Arg)
	if err != nil {
		return nil, err
	}
	abs, ok := fun.(lambda.Abs)
	if !ok {
		return lambda.App{Fun: fun, Arg: arg}, nil
	}
	next, err := m.beta(abs, arg)
	if err != nil {
		return nil, err
	}
	return m.bv(next)
}

// ao is applicative order: call-by-value that also reduces under λ.
func (m *machine) ao(t lambda.Term) (lambda.Term, error) {
	switch t := t.(type) {
	case lambda.Var:
		return t, nil
	case lambda.Abs:
		e, ok, err := m.etaRedex(t)
		if err != nil {
			return nil, err
		}
		if ok {
			return m.ao(e)
		}
		body, err := m.ao(t.Body)
		if err != nil {
			return nil, err
		}
		return lambda.Abs{Bound: t.Bound, Body: body}, nil
	case lambda.App:
		fun, err := m.ao(t.Fun)
		if err != nil {
			return nil, err
		}
		arg, err := m.ao(t.Arg)
		if err != nil {
			return nil, err
		}
		abs, ok := fun.(lambda.Abs)
		if !ok {
			return lambda.App{Fun: fun, Arg: arg}, nil
		}
		next, err := m.beta(abs, arg)
		if err != nil {
			return nil, err
		}
		return m.ao(next)
	default:
		panic(fmt.Sprintf("reduce: unexpected term %T", t))
	}
}

// hs is head spine: the function position is taken to weak head normal
// form and the head redex contracted once; the contractum is returned as
// is. Abstraction bodies are reduced the same way.
func (m *machine) hs(t lambda.Term) (lambda.Term, error) {
	switch t := t.(type) {
	case lambda.Var:
		return t, nil
	case lambda.Abs:
		e, ok, err := m.etaRedex(t)
		if err != nil {
			return nil, err
		}
		if ok {
			return m.hs(e)
		}
		body, err := m.hs(t.Body)
		if err != nil {
			return nil, err
		}
		return lambda.Abs{Bound: t.Bound, Body: body}, nil
	case lambda.App:
		fun, err := m.bn(t.Fun)
		if err != nil {
			return nil, err
		}
		if abs, ok := fun.(lambda.Abs); ok {
			return m.beta(abs, t.Arg)
		}
		return lambda.App{Fun: fun, Arg: t.Arg}, nil
	default:
		panic(fmt.Sprintf("reduce: unexpected term %T", t))
	}
}
