package scanner

import (
	"context"
	"sync"
)

// WorkerConfig holds options for the worker pool.
type WorkerConfig struct {
	Threads int
	Gate    *Gate // nil = no pause support
}

// ProbeResult is what a worker reports for one candidate: exactly one of
// Outcome and Err is set.
type ProbeResult struct {
	Path    string
	Outcome *Outcome
	Err     *ProbeError
}

// RunWorkerPool starts cfg.Threads workers that take paths from a shared
// queue and probe them one at a time, so no more than cfg.Threads requests
// are in flight. The returned channel is closed once every worker has
// exited. Cancelling ctx stops the producer; queued paths are abandoned.
func RunWorkerPool(ctx context.Context, p *Prober, paths []string, cfg WorkerConfig) <-chan ProbeResult {
	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}
	pathsCh := make(chan string, threads*2)
	resultsCh := make(chan ProbeResult, threads*2)

	var wg sync.WaitGroup

	// Producer: feed paths into channel.
	go func() {
		defer close(pathsCh)
		for _, path := range paths {
			select {
			case pathsCh <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Workers: consume paths, produce results.
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range pathsCh {
				if cfg.Gate != nil {
					if err := cfg.Gate.Wait(ctx); err != nil {
						return
					}
				}

				outcome, err := p.Probe(ctx, path)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					pe, ok := err.(*ProbeError)
					if !ok {
						pe = &ProbeError{Path: path, URL: JoinURL(p.BaseURL(), path), Err: err}
					}
					resultsCh <- ProbeResult{Path: path, Err: pe}
					continue
				}
				resultsCh <- ProbeResult{Path: path, Outcome: outcome}
			}
		}()
	}

	// Closer: when all workers finish, close the results channel.
	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	return resultsCh
}
