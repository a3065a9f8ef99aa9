package filter

import "github.com/dirprobe/dirprobe/internal/scanner"

// FalsePositiveFilter hides outcomes the wildcard classifier flagged.
type FalsePositiveFilter struct{}

func (FalsePositiveFilter) Name() string { return "false-positive" }

func (FalsePositiveFilter) ShouldFilter(o *scanner.Outcome) bool {
	return o.FalsePositive
}
