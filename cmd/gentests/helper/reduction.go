package gentests

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/vic/golambda/pkg/lambda"
	"github.com/vic/golambda/pkg/reduce"
)

// MaxSteps bounds every fixture so a wrong expectation fails instead of hanging.
const MaxSteps = 100000

// CheckLambdaReduction normalizes input in normal order and compares the
// result with output up to renaming of bound variables.
func CheckLambdaReduction(t *testing.T, testName string, inputStr string, outputStr string) {
	t.Helper()
	CheckStrategyReduction(t, testName, reduce.NormalStrategy(false), inputStr, outputStr)
}

// CheckStrategyReduction is CheckLambdaReduction for an arbitrary strategy.
func CheckStrategyReduction(t *testing.T, testName string, s reduce.Strategy, inputStr string, outputStr string) {
	t.Helper()

	expectedTerm, err := lambda.Parse(strings.TrimSpace(outputStr))
	if err != nil {
		t.Fatalf("Parse error for expected output: %v", err)
	}

	term, err := lambda.Parse(inputStr)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	r := reduce.New(s, reduce.WithMaxSteps(MaxSteps))
	start := time.Now()
	actualTerm, err := r.Reduce(context.Background(), term)
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("%s: %s: %v", testName, s, err)
	}

	// Free variables must match by name; bound ones only by position.
	if !lambda.AlphaEqual(actualTerm, expectedTerm) {
		t.Errorf("Mismatch in %s (%s):\nInput: %s\nExpected: %s\nActual:   %s",
			testName, s, strings.TrimSpace(inputStr), lambda.Canonical(expectedTerm), lambda.Canonical(actualTerm))
	}

	stats := r.GetStats()
	t.Logf("%s: %s: %d reductions (β:%d η:%d) in %v", testName, s, stats.TotalReductions, stats.Beta, stats.Eta, elapsed)
}
