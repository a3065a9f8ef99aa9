package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/dirprobe/dirprobe/internal/scanner"
)

type jsonEntry struct {
	URL           string  `json:"url"`
	StatusCode    int     `json:"status"`
	ContentLength int64   `json:"length"`
	Time          float64 `json:"time"`
	FalsePositive bool    `json:"false_positive"`
}

// JSONWriter writes results as a JSON array once the scan is complete.
type JSONWriter struct {
	w       io.Writer
	closer  io.Closer
	entries []jsonEntry
}

// NewJSONWriter creates a JSON output writer.
func NewJSONWriter(outputFile string) (*JSONWriter, error) {
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
	return &JSONWriter{w: w, closer: closer, entries: []jsonEntry{}}, nil
}

func (j *JSONWriter) WriteHeader() error { return nil }

func (j *JSONWriter) WriteResult(o *scanner.Outcome) error {
	j.entries = append(j.entries, jsonEntry{
		URL:           o.URL,
		StatusCode:    o.StatusCode,
		ContentLength: o.ContentLength,
		Time:          o.Elapsed.Seconds(),
		FalsePositive: o.FalsePositive,
	})
	return nil
}

func (j *JSONWriter) WriteFooter(_ Stats) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(j.entries)
}

func (j *JSONWriter) Close() error {
	if j.closer != nil {
		return j.closer.Close()
	}
	return nil
}
