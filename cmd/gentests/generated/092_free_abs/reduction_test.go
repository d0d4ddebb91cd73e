package gentests

import _ "embed"
import "testing"
import "github.com/vic/golambda/cmd/gentests/helper"

//go:embed input.lam
var input string

//go:embed output.lam
var output string

func Test_092_free_abs_Reduction(t *testing.T) {
	gentests.CheckLambdaReduction(t, "092_free_abs", input, output)
}
