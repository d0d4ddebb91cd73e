package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vic/golambda/pkg/lambda"
)

type TestCase struct {
	Name   string
	Input  string
	Output string
}

const testTemplate = `package gentests

import _ "embed"
import "testing"
import "github.com/vic/golambda/cmd/gentests/helper"

//go:embed input.lam
var input string

//go:embed output.lam
var output string

func Test_%s_Reduction(t *testing.T) {
	gentests.CheckLambdaReduction(t, "%s", input, output)
}
`

func main() {
	tests := []TestCase{
		// Identity
		{"001_id", `\x.x`, `\y.y`},
		{"002_id_id", `(\x.x) (\y.y)`, `\z.z`},

		// K Combinator (Erasure)
		{"003_k_1", `(\x y.x) a b`, `a`},
		{"004_k_2", `(\x y.y) a b`, `b`},
		{"005_erase_complex", `(\x y.x) a ((\z.z) b)`, `a`},

		// Church Numerals
		{"010_zero", `(\f x.x) f x`, `x`},
		{"011_one", `(\f x.f x) f x`, `f x`},
		{"012_two", `(\f x.f (f x)) f x`, `f (f x)`},
		{"013_succ_0", `(\n f x.f (n f x)) (\f x.x) f x`, `f x`},
		{"014_succ_1", `(\n f x.f (n f x)) (\f x.f x) f x`, `f (f x)`},
		{"015_add_1_1", `(\m n f x.m f (n f x)) (\f x.f x) (\f x.f x) f x`, `f (f x)`},
		{"016_mul_2_2", `(\m n f.m (n f)) (\f x.f (f x)) (\f x.f (f x)) f x`, `f (f (f (f x)))`},

		// Logic
		{"020_true", `(\x y.x) a b`, `a`},
		{"021_false", `(\x y.y) a b`, `b`},
		{"022_not_true", `(\b.b (\x y.y) (\x y.x)) (\x y.x) a b`, `b`},
		{"023_not_false", `(\b.b (\x y.y) (\x y.x)) (\x y.y) a b`, `a`},

		// Pairs
		{"031_pair_snd", `(\p.p (\x y.y)) ((\x y f.f x y) a b)`, `b`},

		// Let bindings
		{"040_let_simple", `let x = a; in x`, `a`},
		{"041_let_id", `let i = \x.x; in i a`, `a`},
		{"043_let_shadow", `let x = a; in let x = b; in x`, `b`},

		// Duplication
		{"050_deep_app", `(\x.x x x) (\y.y)`, `\y.y`},
		{"060_pow_2_3", `(\b e.e b) (\f x.f (f x)) (\f x.f (f (f x))) f x`, `f (f (f (f (f (f (f (f x)))))))`},
		{"070_share_complex", `(\x.x (x a)) (\y.y)`, `a`},
		{"071_erase_shared", `(\x y.y) ((\z.z) a) b`, `b`},
		{"072_self_app", `(\x.x x) (\y.y)`, `\y.y`},

		// Nested Lambdas
		{"080_nested_1", `\x y z.x y z`, `\x y z.x y z`},
		{"081_nested_app", `(\x y.x y) a b`, `a b`},

		// Free variables
		{"090_free_1", `x`, `x`},
		{"091_free_app", `x y`, `x y`},
		{"092_free_abs", `\y.x y`, `\y.x y`},

		// Capture
		{"095_capture", `\y.(\x y.x) y`, `\y y'.y`},
		{"096_capture_free", `(\f x.f a) (\a.x)`, `\x'.x`},

		// Mixed
		{"100_mixed_1", `(\x.x) ((\y.y) a)`, `a`},
	}

	baseDir := "cmd/gentests/generated"
	os.MkdirAll(baseDir, 0755)

	for _, tc := range tests {
		// Reject cases that would only fail later as test parse errors.
		if _, err := lambda.Parse(tc.Input); err != nil {
			fmt.Printf("Error parsing input for %s: %v\n", tc.Name, err)
			continue
		}
		if _, err := lambda.Parse(tc.Output); err != nil {
			fmt.Printf("Error parsing output for %s: %v\n", tc.Name, err)
			continue
		}

		dir := filepath.Join(baseDir, tc.Name)
		os.MkdirAll(dir, 0755)

		testGo := fmt.Sprintf(testTemplate, tc.Name, tc.Name)

		os.WriteFile(filepath.Join(dir, "input.lam"), []byte(tc.Input+"\n"), 0644)
		os.WriteFile(filepath.Join(dir, "output.lam"), []byte(tc.Output+"\n"), 0644)
		os.WriteFile(filepath.Join(dir, "reduction_test.go"), []byte(testGo), 0644)
	}

	fmt.Printf("Generated %d tests\n", len(tests))
}
