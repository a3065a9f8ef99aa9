package scanner

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// ScanConfig controls a single Scan.
type ScanConfig struct {
	Threads int
	Gate    *Gate

	// NoBaseline skips wildcard detection; every outcome is then reported
	// with FalsePositive=false.
	NoBaseline bool
	// ReportUnreachable keeps transport failures in ResultSet.Unreachable
	// instead of only counting them.
	ReportUnreachable bool

	// OnBaseline runs once, before any path is dispatched. b is nil and
	// err describes the failure when no baseline could be acquired.
	OnBaseline func(b *Baseline, err error)
	// OnOutcome runs for every classified outcome, in completion order.
	OnOutcome func(o Outcome)
	// OnDrop runs for every probe discarded because of a transport failure.
	OnDrop func(pe *ProbeError)
	// OnProgress runs after every completed probe, successful or not.
	OnProgress func(done, total int)
}

// Scan acquires the wildcard baseline, probes every path through the
// worker pool and collects classified outcomes in completion order.
// Transport failures are dropped from the outcome list. Scan itself never
// fails; per-request timeouts bound its duration.
func Scan(ctx context.Context, p *Prober, paths []string, cfg ScanConfig) *ResultSet {
	rs := &ResultSet{Total: len(paths)}

	if !cfg.NoBaseline {
		b, err := AcquireBaseline(ctx, p)
		if err != nil {
			log.WithFields(log.Fields{"target": p.BaseURL(), "err": err}).Debug("baseline request failed")
		} else {
			log.WithFields(log.Fields{
				"url":    b.URL,
				"status": b.StatusCode,
				"length": b.ContentLength,
				"sample": b.Sample,
			}).Debug("baseline acquired")
		}
		rs.Baseline = b
		if cfg.OnBaseline != nil {
			cfg.OnBaseline(b, err)
		}
	}

	results := RunWorkerPool(ctx, p, paths, WorkerConfig{
		Threads: cfg.Threads,
		Gate:    cfg.Gate,
	})

	done := 0
	for res := range results {
		done++

		if res.Err != nil {
			log.WithFields(log.Fields{
				"url":     res.Err.URL,
				"timeout": res.Err.Timeout(),
				"err":     res.Err.Err,
			}).Debug("probe dropped")
			rs.drop(res.Err, cfg.ReportUnreachable)
			if cfg.OnDrop != nil {
				cfg.OnDrop(res.Err)
			}
		} else {
			o := Classify(*res.Outcome, rs.Baseline)
			rs.add(o)
			if cfg.OnOutcome != nil {
				cfg.OnOutcome(o)
			}
		}

		if cfg.OnProgress != nil {
			cfg.OnProgress(done, rs.Total)
		}
	}

	return rs
}
