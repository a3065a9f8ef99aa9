package scanner

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

// Outcome holds the response characteristics of one successful path probe.
type Outcome struct {
	Path          string
	URL           string
	StatusCode    int
	ContentLength int64
	Elapsed       time.Duration
	FalsePositive bool
}

// ProbeError is a transport-level failure (DNS, connect, timeout, body
// read). A failed probe never produces an Outcome.
type ProbeError struct {
	Path string
	URL  string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probing %s: %v", e.URL, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a request timeout.
func (e *ProbeError) Timeout() bool {
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// ResultSet accumulates outcomes in completion order. Appends are
// serialized so readers may inspect it while a scan is still running.
type ResultSet struct {
	// Baseline is nil when wildcard detection was skipped or failed.
	Baseline *Baseline
	// Total is the number of dispatched candidates.
	Total int

	mu          sync.Mutex
	outcomes    []Outcome
	errors      int
	unreachable []ProbeError
}

func (rs *ResultSet) add(o Outcome) {
	rs.mu.Lock()
	rs.outcomes = append(rs.outcomes, o)
	rs.mu.Unlock()
}

func (rs *ResultSet) drop(pe *ProbeError, keep bool) {
	rs.mu.Lock()
	rs.errors++
	if keep {
		rs.unreachable = append(rs.unreachable, *pe)
	}
	rs.mu.Unlock()
}

// Outcomes returns a copy of the collected outcomes.
func (rs *ResultSet) Outcomes() []Outcome {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make([]Outcome, len(rs.outcomes))
	copy(out, rs.outcomes)
	return out
}

// Len returns the number of collected outcomes.
func (rs *ResultSet) Len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.outcomes)
}

// Errors returns how many probes were dropped because of transport failures.
func (rs *ResultSet) Errors() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.errors
}

// Unreachable returns the dropped probes. It is only populated when the
// scan ran with ScanConfig.ReportUnreachable.
func (rs *ResultSet) Unreachable() []ProbeError {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make([]ProbeError, len(rs.unreachable))
	copy(out, rs.unreachable)
	return out
}

// FalsePositives counts outcomes flagged by the classifier.
func (rs *ResultSet) FalsePositives() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	n := 0
	for _, o := range rs.outcomes {
		if o.FalsePositive {
			n++
		}
	}
	return n
}
