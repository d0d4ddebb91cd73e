package gentests

import _ "embed"
import "testing"
import "github.com/vic/golambda/cmd/gentests/helper"

//go:embed input.lam
var input string

//go:embed output.lam
var output string

func Test_011_one_Reduction(t *testing.T) {
	gentests.CheckLambdaReduction(t, "011_one", input, output)
}
