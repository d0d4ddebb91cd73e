package reduce

import (
	"sync/atomic"

	"github.com/vic/golambda/pkg/lambda"
)

type RuleKind int

const (
	RuleUnknown RuleKind = iota
	RuleBeta
	RuleEta
)

func (k RuleKind) String() string {
	switch k {
	case RuleBeta:
		return "β"
	case RuleEta:
		return "η"
	default:
		return "?"
	}
}

// TraceEvent records one contraction: the binder that was eliminated and
// the term the redex became.
type TraceEvent struct {
	Step   uint64
	Rule   RuleKind
	Binder lambda.Variable
	Result lambda.Term
}

// EnableTrace keeps the first capacity contractions of later Reduce calls.
func (r *Reducer) EnableTrace(capacity int) {
	if capacity <= 0 {
		capacity = 1
	}
	r.traceBuf = make([]TraceEvent, capacity)
	r.traceCap = uint64(capacity)
	atomic.StoreUint64(&r.traceIdx, 0)
	atomic.StoreUint32(&r.traceOn, 1)
}

func (r *Reducer) DisableTrace() {
	atomic.StoreUint32(&r.traceOn, 0)
}

func (r *Reducer) TraceSnapshot() []TraceEvent {
	if atomic.LoadUint32(&r.traceOn) == 0 {
		return nil
	}
	count := atomic.LoadUint64(&r.traceIdx)
	if count > r.traceCap {
		count = r.traceCap
	}
	res := make([]TraceEvent, count)
	copy(res, r.traceBuf[:count])
	return res
}

func (r *Reducer) recordTrace(rule RuleKind, binder lambda.Variable, result lambda.Term) {
	if atomic.LoadUint32(&r.traceOn) == 0 || r.traceCap == 0 {
		return
	}
	idx := atomic.AddUint64(&r.traceIdx, 1) - 1
	if idx >= r.traceCap {
		return
	}
	r.traceBuf[idx] = TraceEvent{
		Step:   idx,
		Rule:   rule,
		Binder: binder,
		Result: result,
	}
}
