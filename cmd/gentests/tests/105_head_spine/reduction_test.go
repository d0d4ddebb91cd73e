package gentests

import (
	_ "embed"
	"testing"

	"github.com/vic/golambda/cmd/gentests/helper"
	"github.com/vic/golambda/pkg/reduce"
)

//go:embed input.lam
var input string

//go:embed output.lam
var output string

// Head spine contracts the head redex under the binder once and leaves
// the contractum alone.
func Test_105_head_spine_Reduction(t *testing.T) {
	gentests.CheckStrategyReduction(t, "105_head_spine", reduce.HeadSpineStrategy(false), input, output)
	gentests.CheckLambdaReduction(t, "105_head_spine", input, `\a.a`)
}
