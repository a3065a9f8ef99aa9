package scanner

import (
	"context"
	"sync"
	"time"
)

// Gate is a cooperative pause switch for worker goroutines. Workers call
// Wait before each request; while the gate is closed they block until it
// is reopened or their context ends. In-flight requests are not affected.
type Gate struct {
	mu          sync.Mutex
	reopen      chan struct{} // non-nil while paused
	pausedSince time.Time
	totalPaused time.Duration
}

// NewGate creates an open gate.
func NewGate() *Gate {
	return &Gate{}
}

// Wait returns immediately when the gate is open. Otherwise it blocks
// until Toggle reopens it or ctx is done, in which case ctx.Err() is
// returned.
func (g *Gate) Wait(ctx context.Context) error {
	g.mu.Lock()
	ch := g.reopen
	g.mu.Unlock()
	if ch == nil {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Toggle flips between paused and running and returns true when the gate
// is now paused.
func (g *Gate) Toggle() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.reopen != nil {
		g.totalPaused += time.Since(g.pausedSince)
		close(g.reopen)
		g.reopen = nil
		return false
	}
	g.reopen = make(chan struct{})
	g.pausedSince = time.Now()
	return true
}

// IsPaused reports whether workers are currently held.
func (g *Gate) IsPaused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reopen != nil
}

// PausedDuration returns the accumulated pause time, including a pause
// that is still ongoing.
func (g *Gate) PausedDuration() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	d := g.totalPaused
	if g.reopen != nil {
		d += time.Since(g.pausedSince)
	}
	return d
}
