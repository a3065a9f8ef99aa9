package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

	"github.com/dirprobe/dirprobe/internal/config"
	"github.com/dirprobe/dirprobe/internal/filter"
	"github.com/dirprobe/dirprobe/internal/hook"
	"github.com/dirprobe/dirprobe/internal/output"
	"github.com/dirprobe/dirprobe/internal/scanner"
	"github.com/dirprobe/dirprobe/internal/wordlist"
	"github.com/dirprobe/dirprobe/pkg/version"
)

// stdinToggle is replaced in tests so a scan never grabs the terminal.
var stdinToggle = startStdinToggle

// Run executes the full scan pipeline. Only option and wordlist errors are
// returned; network failures and output-file failures are reported on the
// console and do not fail the run.
func Run(ctx context.Context, opts *config.Options) error {
	return run(ctx, opts, os.Stdout, os.Stderr)
}

func run(ctx context.Context, opts *config.Options, stdout, stderr io.Writer) error {
	// 1. Load wordlist. This is the only fatal failure once options are valid.
	paths, err := wordlist.Load(opts.WordlistPath)
	if err != nil {
		return fmt.Errorf("loading wordlist: %w", err)
	}

	// 2. Create HTTP prober.
	prober, err := scanner.NewProber(opts)
	if err != nil {
		return fmt.Errorf("creating prober: %w", err)
	}

	// 3. Console display filters.
	chain := buildChain(opts)

	var hookRunner *hook.Runner
	if opts.OnResultCmd != "" {
		hookRunner = hook.NewRunner(opts.OnResultCmd, opts.Quiet)
	}

	console := output.NewConsoleWriter(stdout, stderr, opts.Quiet)

	// 4. Banner.
	if !opts.Quiet {
		printBanner(stderr, opts, len(paths))
	}
	log.WithFields(log.Fields{
		"target":  opts.URL,
		"paths":   len(paths),
		"threads": opts.Threads,
		"timeout": opts.Timeout,
	}).Debug("starting scan")

	// 5. Interactive pause toggle (terminal only).
	gate, restore := stdinToggle(opts.Quiet)
	defer restore()
	if gate != nil && !opts.Quiet {
		fmt.Fprintf(stderr, "[*] Press Enter or Space to pause/resume\n")
	}

	if !opts.NoWildcardCheck && !opts.Quiet {
		fmt.Fprintf(stderr, "[*] Acquiring wildcard baseline ...\n")
	}

	// 6. Scan.
	progress := output.NewProgress(stderr, len(paths), opts.Quiet, opts.NoColor)
	var stats output.Stats
	stats.TotalRequests = len(paths)
	startTime := time.Now()

	rs := scanner.Scan(ctx, prober, paths, scanner.ScanConfig{
		Threads:           opts.Threads,
		Gate:              gate,
		NoBaseline:        opts.NoWildcardCheck,
		ReportUnreachable: opts.ReportUnreachable,
		OnBaseline: func(b *scanner.Baseline, err error) {
			if opts.Quiet {
				return
			}
			if err != nil {
				fmt.Fprintf(stderr, "[!] Wildcard baseline unavailable (%v), continuing without false-positive filtering\n", err)
				return
			}
			fmt.Fprintf(stderr, "    Baseline: Status %d, Length %d\n", b.StatusCode, b.ContentLength)
		},
		OnOutcome: func(o scanner.Outcome) {
			if o.FalsePositive {
				progress.IncrementFalsePositives()
			}
			if hidden, reason := chain.Apply(&o); hidden {
				stats.HiddenCount++
				log.WithFields(log.Fields{"url": o.URL, "filter": reason}).Debug("outcome hidden")
				return
			}

			progress.ClearLine()
			if err := console.WriteResult(&o); err != nil {
				log.WithError(err).Warn("writing result to console")
			}
			progress.Redraw()

			if hookRunner != nil {
				_ = hookRunner.Run(&o)
			}
		},
		OnDrop: func(*scanner.ProbeError) {
			progress.IncrementErrors()
		},
		OnProgress: func(done, _ int) {
			progress.Set(done)
		},
	})
	progress.Stop()

	stats.Duration = time.Since(startTime)
	if gate != nil {
		stats.Duration -= gate.PausedDuration()
	}
	stats.Outcomes = rs.Len()
	stats.FalsePositives = rs.FalsePositives()
	stats.ErrorCount = rs.Errors()

	if opts.ReportUnreachable {
		printUnreachable(stderr, rs.Unreachable())
	}

	// 7. Persist. A write failure leaves the console results as the record.
	if opts.OutputFile != "" {
		if err := persist(opts, rs.Outcomes(), stats); err != nil {
			log.WithError(err).Debug("persisting results")
			fmt.Fprintf(stderr, "[!] Could not write results to %s: %v\n", opts.OutputFile, err)
		} else if !opts.Quiet {
			fmt.Fprintf(stderr, "[+] Results written to %s\n", opts.OutputFile)
		}
	}

	// 8. Footer.
	if err := console.WriteFooter(stats); err != nil {
		log.WithError(err).Warn("writing summary")
	}
	return nil
}

func buildChain(opts *config.Options) *filter.Chain {
	chain := filter.NewChain()
	if len(opts.IncludeStatus) > 0 || len(opts.ExcludeStatus) > 0 {
		chain.Add(filter.NewStatusFilter(opts.IncludeStatus, opts.ExcludeStatus))
	}
	if opts.HideFalsePositives {
		chain.Add(filter.FalsePositiveFilter{})
	}
	return chain
}

func persist(opts *config.Options, outcomes []scanner.Outcome, stats output.Stats) (err error) {
	w, err := output.Create(opts.OutputFile, opts.JSON)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	if err := w.WriteHeader(); err != nil {
		return err
	}
	for i := range outcomes {
		if err := w.WriteResult(&outcomes[i]); err != nil {
			return err
		}
	}
	return w.WriteFooter(stats)
}

func printUnreachable(w io.Writer, dropped []scanner.ProbeError) {
	if len(dropped) == 0 {
		return
	}
	fmt.Fprintf(w, "\n[!] Unreachable paths (%d):\n", len(dropped))
	for _, pe := range dropped {
		reason := "error"
		if pe.Timeout() {
			reason = "timeout"
		}
		fmt.Fprintf(w, "    %s (%s: %v)\n", pe.URL, reason, pe.Err)
	}
}

func printBanner(w io.Writer, opts *config.Options, pathCount int) {
	c := color.New(color.FgCyan).SprintFunc()
	d := color.New(color.Faint).SprintFunc()
	hi := color.New(color.FgHiWhite).SprintFunc()
	y := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(w, "\n%s %s\n%s\n",
		c("  dirprobe"), d("v"+version.Version),
		hi("  Web path prober with wildcard detection"),
	)

	wildcard := color.New(color.FgGreen).Sprint("ON")
	if opts.NoWildcardCheck {
		wildcard = color.New(color.FgRed).Sprint("OFF")
	}
	format := "text"
	if opts.JSON {
		format = "json"
	}
	dest := opts.OutputFile
	if dest == "" {
		dest = "(none)"
	}

	fmt.Fprintf(w, "%s\n", d("  ──────────────────────────────────────"))
	fmt.Fprintf(w, "  %s       %s\n", d("Target:"), hi(opts.URL))
	fmt.Fprintf(w, "  %s      %s\n", d("Threads:"), y(opts.Threads))
	fmt.Fprintf(w, "  %s      %s\n", d("Timeout:"), hi(opts.Timeout))
	fmt.Fprintf(w, "  %s     %s\n", d("Wordlist:"), hi(fmt.Sprintf("%d paths", pathCount)))
	fmt.Fprintf(w, "  %s       %s (%s)\n", d("Output:"), hi(dest), format)
	fmt.Fprintf(w, "  %s     %s\n", d("Wildcard:"), wildcard)
	fmt.Fprintf(w, "%s\n\n", d("  ──────────────────────────────────────"))
}
