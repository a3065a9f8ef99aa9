package output

import (
	"fmt"
	"time"

	"github.com/dirprobe/dirprobe/internal/scanner"
)

// Stats holds aggregate scan statistics.
type Stats struct {
	TotalRequests  int
	Outcomes       int
	FalsePositives int
	HiddenCount    int
	ErrorCount     int
	Duration       time.Duration
}

// Writer is implemented by each output format.
type Writer interface {
	WriteHeader() error
	WriteResult(o *scanner.Outcome) error
	WriteFooter(stats Stats) error
	Close() error
}

// Create opens the output file in the requested format.
func Create(outputFile string, jsonFormat bool) (Writer, error) {
	if jsonFormat {
		return NewJSONWriter(outputFile)
	}
	return NewTextWriter(outputFile)
}

// FormatLine renders an outcome the way the text output file stores it:
// "{status} {url} {length} bytes {elapsed}s".
func FormatLine(o *scanner.Outcome) string {
	line := fmt.Sprintf("%d %s %d bytes %.2fs", o.StatusCode, o.URL, o.ContentLength, o.Elapsed.Seconds())
	if o.FalsePositive {
		line += falsePositiveSuffix
	}
	return line
}

const falsePositiveSuffix = " (False Positive)"
