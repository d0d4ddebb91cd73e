package reduce

import (
	"context"
	"runtime"
	"sync"

	"github.com/vic/golambda/pkg/lambda"
)

// Result is the outcome of one reduction in a batch.
type Result struct {
	Index    int
	Strategy Strategy
	Term     lambda.Term
	Err      error
	Stats    Stats
}

type batchConfig struct {
	workers int
	opts    []Option
}

type BatchOption func(*batchConfig)

// WithWorkers sets the number of concurrent reductions. The default is
// runtime.NumCPU().
func WithWorkers(n int) BatchOption {
	return func(c *batchConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithReducerOptions applies opts to the Reducer created for every job.
func WithReducerOptions(opts ...Option) BatchOption {
	return func(c *batchConfig) { c.opts = append(c.opts, opts...) }
}

type job struct {
	index    int
	term     lambda.Term
	strategy Strategy
}

// NormalizeAll reduces independent terms concurrently under s. Results
// are returned in input order.
func NormalizeAll(ctx context.Context, terms []lambda.Term, s Strategy, opts ...BatchOption) []Result {
	jobs := make([]job, len(terms))
	for i, t := range terms {
		jobs[i] = job{index: i, term: t, strategy: s}
	}
	return runBatch(ctx, jobs, opts)
}

// Compare reduces t under every strategy at once, in Kind order. Terms
// are immutable, so all workers share t.
func Compare(ctx context.Context, t lambda.Term, eta bool, opts ...BatchOption) []Result {
	strategies := Strategies(eta)
	jobs := make([]job, len(strategies))
	for i, s := range strategies {
		jobs[i] = job{index: i, term: t, strategy: s}
	}
	return runBatch(ctx, jobs, opts)
}

func runBatch(ctx context.Context, jobs []job, opts []BatchOption) []Result {
	cfg := batchConfig{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(&cfg)
	}
	workers := min(cfg.workers, len(jobs))

	results := make([]Result, len(jobs))
	queue := make(chan job)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				r := New(j.strategy, cfg.opts...)
				term, err := r.Reduce(ctx, j.term)
				results[j.index] = Result{
					Index:    j.index,
					Strategy: j.strategy,
					Term:     term,
					Err:      err,
					Stats:    r.GetStats(),
				}
			}
		}()
	}
	for _, j := range jobs {
		queue <- j
	}
	close(queue)
	wg.Wait()
	return results
}
