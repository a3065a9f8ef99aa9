package output

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Progress tracks completed/total probes and renders a progress bar.
// All methods are safe to call when the bar is disabled (quiet mode).
type Progress struct {
	total          int
	completed      atomic.Int64
	falsePositives atomic.Int64
	errors         atomic.Int64
	bar            *progressbar.ProgressBar
}

// NewProgress creates a progress tracker that draws on w unless quiet is set.
func NewProgress(w io.Writer, total int, quiet, noColor bool) *Progress {
	p := &Progress{total: total}
	if quiet {
		return p
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(!noColor),
		progressbar.OptionSetDescription(p.description()),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprint(w, "\n") }),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return p
}

// Set records the number of completed probes.
func (p *Progress) Set(done int) {
	p.completed.Store(int64(done))
	if p.bar != nil {
		_ = p.bar.Set(done)
	}
}

// IncrementFalsePositives records a flagged outcome.
func (p *Progress) IncrementFalsePositives() {
	p.falsePositives.Add(1)
	p.refreshDescription()
}

// IncrementErrors records a dropped probe.
func (p *Progress) IncrementErrors() {
	p.errors.Add(1)
	p.refreshDescription()
}

// Completed returns how many probes have finished.
func (p *Progress) Completed() int { return int(p.completed.Load()) }

// Total returns the number of dispatched probes.
func (p *Progress) Total() int { return p.total }

// ClearLine erases the bar so a result line can be printed in its place.
func (p *Progress) ClearLine() {
	if p.bar != nil {
		_ = p.bar.Clear()
	}
}

// Redraw renders the bar again after ClearLine.
func (p *Progress) Redraw() {
	if p.bar != nil {
		_ = p.bar.RenderBlank()
	}
}

// Stop completes the bar and moves to a fresh line.
func (p *Progress) Stop() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}

func (p *Progress) refreshDescription() {
	if p.bar != nil {
		p.bar.Describe(p.description())
	}
}

func (p *Progress) description() string {
	return fmt.Sprintf("Scanning | FP: %d | Errors: %d", p.falsePositives.Load(), p.errors.Load())
}
