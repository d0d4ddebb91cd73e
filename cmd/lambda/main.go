package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/vic/golambda/pkg/lambda"
	"github.com/vic/golambda/pkg/reduce"
	"github.com/vic/golambda/pkg/store"
)

var debug = os.Getenv("LAMBDA_DEBUG") != ""

func main() {
	strategyName := flag.String("strategy", "normal", "reduction strategy: name, value, normal, applicative, head")
	eta := flag.Bool("eta", false, "enable η-reduction (normal, applicative, head)")
	maxSteps := flag.Uint64("max-steps", envUint("LAMBDA_MAX_STEPS", 0), "stop after this many contractions (0 = unbounded)")
	showStats := flag.Bool("stats", false, "print reduction statistics to stderr")
	compare := flag.Bool("compare", false, "reduce with every strategy")
	dbPath := flag.String("db", os.Getenv("LAMBDA_DB"), "SQLite definitions library to resolve free variables against")
	repl := flag.Bool("repl", false, "start an interactive session")
	workers := flag.Int("workers", 0, "concurrent reductions when several files are given (0 = one per CPU)")
	flag.Parse()

	strategy, err := reduce.ParseStrategy(*strategyName, *eta)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx := context.Background()
	path := *dbPath
	if path == "" {
		path = ":memory:"
	}
	lib, err := store.Open(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening library: %v\n", err)
		os.Exit(1)
	}
	defer lib.Close()

	if *repl {
		os.Exit(runREPL(ctx, lib, strategy, *maxSteps))
	}

	sources, err := readInputs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	env, err := lib.Env(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading definitions: %v\n", err)
		os.Exit(1)
	}

	terms := make([]lambda.Term, len(sources))
	for i, src := range sources {
		term, err := lambda.Parse(src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error: %v\n", err)
			os.Exit(1)
		}
		terms[i] = lambda.Resolve(term, env)
	}

	opts := []reduce.Option{reduce.WithMaxSteps(*maxSteps)}
	if debug {
		opts = append(opts, reduce.WithTrace(1000))
	}

	switch {
	case *compare:
		failed := false
		for _, term := range terms {
			results := reduce.Compare(ctx, term, *eta, reduce.WithReducerOptions(opts...), reduce.WithWorkers(*workers))
			fmt.Println(formatComparison(results))
			failed = failed || lo.SomeBy(results, func(r reduce.Result) bool { return r.Err != nil })
		}
		if failed {
			os.Exit(1)
		}
	case len(terms) == 1:
		r := reduce.New(strategy, opts...)
		start := time.Now()
		res, err := r.Reduce(ctx, terms[0])
		elapsed := time.Since(start)
		if debug {
			printTrace(r.TraceSnapshot())
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Reduction error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(res)
		if *showStats {
			printStats(r.GetStats(), elapsed)
		}
	default:
		start := time.Now()
		results := reduce.NormalizeAll(ctx, terms, strategy, reduce.WithReducerOptions(opts...), reduce.WithWorkers(*workers))
		elapsed := time.Since(start)
		failed := false
		var total reduce.Stats
		for i, res := range results {
			if res.Err != nil {
				fmt.Fprintf(os.Stderr, "%s: reduction error: %v\n", flag.Arg(i), res.Err)
				failed = true
				continue
			}
			fmt.Printf("%s: %s\n", flag.Arg(i), res.Term)
			total.TotalReductions += res.Stats.TotalReductions
			total.Beta += res.Stats.Beta
			total.Eta += res.Stats.Eta
		}
		if *showStats {
			printStats(total, elapsed)
		}
		if failed {
			os.Exit(1)
		}
	}
}

// readInputs reads every named file, or stdin when there are none.
func readInputs(paths []string) ([]string, error) {
	if len(paths) == 0 {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		return []string{string(input)}, nil
	}
	sources := make([]string, len(paths))
	for i, p := range paths {
		input, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		sources[i] = string(input)
	}
	return sources, nil
}

func envUint(name string, def uint64) uint64 {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ignoring %s=%q: %v\n", name, v, err)
		return def
	}
	return n
}

func formatComparison(results []reduce.Result) string {
	width := lo.Max(lo.Map(results, func(r reduce.Result, _ int) int { return len(r.Strategy.String()) }))
	lines := lo.Map(results, func(r reduce.Result, _ int) string {
		out := fmt.Sprint(r.Term)
		if r.Err != nil {
			out = "error: " + r.Err.Error()
		}
		return fmt.Sprintf("%-*s  %s  (%d steps)", width, r.Strategy, out, r.Stats.TotalReductions)
	})
	return strings.Join(lines, "\n")
}

func printTrace(events []reduce.TraceEvent) {
	for _, ev := range events {
		fmt.Fprintf(os.Stderr, "%4d %s %-6s -> %s\n", ev.Step, ev.Rule, ev.Binder, ev.Result)
	}
}

func printStats(stats reduce.Stats, elapsed time.Duration) {
	seconds := elapsed.Seconds()

	fmt.Fprintf(os.Stderr, "\nStats:\n")
	fmt.Fprintf(os.Stderr, "Time: %v\n", elapsed)
	fmt.Fprintf(os.Stderr, "Total Reductions: %d", stats.TotalReductions)
	if seconds > 0 {
		fmt.Fprintf(os.Stderr, " (%.2f ops/sec)", float64(stats.TotalReductions)/seconds)
	}
	fmt.Fprintf(os.Stderr, "\n")

	fmt.Fprintf(os.Stderr, "\nBreakdown:\n")
	fmt.Fprintf(os.Stderr, "  β-reduction: %6d\n", stats.Beta)
	if stats.Eta > 0 {
		fmt.Fprintf(os.Stderr, "  η-reduction: %6d\n", stats.Eta)
	}
}
