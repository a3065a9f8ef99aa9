package output

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/dirprobe/dirprobe/internal/scanner"
)

var (
	status2xx = color.New(color.FgGreen).SprintFunc()
	status3xx = color.New(color.FgCyan).SprintFunc()
	status4xx = color.New(color.FgYellow).SprintFunc()
	status5xx = color.New(color.FgRed).SprintFunc()
	dimmed    = color.New(color.Faint).SprintFunc()
)

// ConsoleWriter streams outcomes to the terminal as they complete and
// prints the scan summary. Colours follow color.NoColor.
type ConsoleWriter struct {
	out   io.Writer // result lines
	info  io.Writer // summary
	quiet bool
}

// NewConsoleWriter writes result lines to out and the summary to info.
func NewConsoleWriter(out, info io.Writer, quiet bool) *ConsoleWriter {
	return &ConsoleWriter{out: out, info: info, quiet: quiet}
}

func (c *ConsoleWriter) WriteHeader() error { return nil }

func (c *ConsoleWriter) WriteResult(o *scanner.Outcome) error {
	line := fmt.Sprintf("[%s] %s - %d bytes in %.2fs",
		colorForStatus(o.StatusCode)(o.StatusCode),
		o.URL,
		o.ContentLength,
		o.Elapsed.Seconds(),
	)
	if o.FalsePositive {
		line += dimmed(falsePositiveSuffix)
	}
	_, err := fmt.Fprintln(c.out, line)
	return err
}

func (c *ConsoleWriter) WriteFooter(stats Stats) error {
	if c.quiet {
		return nil
	}
	_, err := fmt.Fprintf(c.info,
		"\n[+] Scan finished. Total time: %.2f seconds\n"+
			"    Requests: %d | Results: %d | False positives: %d | Hidden: %d | Errors: %d\n",
		stats.Duration.Round(time.Millisecond).Seconds(),
		stats.TotalRequests,
		stats.Outcomes,
		stats.FalsePositives,
		stats.HiddenCount,
		stats.ErrorCount,
	)
	return err
}

func (c *ConsoleWriter) Close() error { return nil }

func colorForStatus(code int) func(a ...interface{}) string {
	switch {
	case code >= 200 && code < 300:
		return status2xx
	case code >= 300 && code < 400:
		return status3xx
	case code >= 400 && code < 500:
		return status4xx
	case code >= 500:
		return status5xx
	default:
		return fmt.Sprint
	}
}
