package clock

import "time"

// Clock is the single time source for the pipeline. Issuance day keys and
// reconciliation cutoffs all derive from it, so anything that budgets or
// sweeps takes a Clock instead of calling time.Now directly.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}
