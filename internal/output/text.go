package output

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dirprobe/dirprobe/internal/scanner"
)

// TextWriter writes one plain line per outcome, see FormatLine.
type TextWriter struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewTextWriter creates a text output writer. If outputFile is empty, stdout
// is used.
func NewTextWriter(outputFile string) (*TextWriter, error) {
	var w io.Writer = os.Stdout
	var closer io.Closer
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return nil, err
		}
		w = f
		closer = f
	}
	return &TextWriter{w: bufio.NewWriter(w), closer: closer}, nil
}

func (t *TextWriter) WriteHeader() error { return nil }

func (t *TextWriter) WriteResult(o *scanner.Outcome) error {
	_, err := fmt.Fprintln(t.w, FormatLine(o))
	return err
}

func (t *TextWriter) WriteFooter(_ Stats) error {
	return t.w.Flush()
}

func (t *TextWriter) Close() error {
	flushErr := t.w.Flush()
	if t.closer != nil {
		if err := t.closer.Close(); err != nil {
			return err
		}
	}
	return flushErr
}
