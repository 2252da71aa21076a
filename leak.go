package rs

import (
	"fmt"
	"sync/atomic"
)

// LeakReport describes an object released by the safety net because its
// owner became unreachable without calling Destroy.
type LeakReport struct {
	Kind ObjectKind
	ID   uint64
}

// String formats the report as a diagnostic message.
func (r LeakReport) String() string {
	return fmt.Sprintf("%s %d leaked: Destroy was never called", r.Kind, r.ID)
}

// leakCount counts objects released by the safety net since process start.
var leakCount atomic.Int64

// LeakCount returns the number of objects released by the safety net instead
// of an explicit Destroy. Tests can compare it before and after a scenario.
func LeakCount() int64 {
	return leakCount.Load()
}

// collect is the safety net. It runs on the runtime's cleanup goroutine once
// the owning wrapper is unreachable, releases the native object if Destroy
// did not, and reports the leak.
func (s *handleState) collect() {
	ctx := s.ctx.Load()
	report := LeakReport{Kind: s.kind, ID: s.id.Load()}
	if !s.release() {
		return
	}
	leakCount.Add(1)

	logger := Logger()
	if ctx != nil {
		logger = ctx.logger()
	}
	logger.Warn("rs: resource leaked, Destroy was never called",
		"kind", string(report.Kind), "id", report.ID)

	if ctx != nil && ctx.opts.leakHandler != nil {
		ctx.opts.leakHandler(report)
	}
}
