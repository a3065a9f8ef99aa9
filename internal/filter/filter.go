package filter

import "github.com/dirprobe/dirprobe/internal/scanner"

// Filter decides whether an outcome should be hidden from the console.
// Filters never remove outcomes from the result set or the output file.
type Filter interface {
	Name() string
	ShouldFilter(o *scanner.Outcome) bool
}

// Chain applies multiple filters in order, short-circuiting on the first match.
type Chain struct {
	filters []Filter
}

// NewChain returns an empty filter chain.
func NewChain() *Chain {
	return &Chain{}
}

// Add appends a filter to the chain.
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Len returns the number of filters in the chain.
func (c *Chain) Len() int { return len(c.filters) }

// Apply runs every filter against the outcome. Returns true and the filter
// name if the outcome should be hidden.
func (c *Chain) Apply(o *scanner.Outcome) (bool, string) {
	for _, f := range c.filters {
		if f.ShouldFilter(o) {
			return true, f.Name()
		}
	}
	return false, ""
}
