package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads the candidate paths from a wordlist file. See Parse for the
// line rules. A missing or unreadable file is an error.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading wordlist %s: %w", path, err)
	}
	defer f.Close()

	paths, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading wordlist %s: %w", path, err)
	}
	return paths, nil
}

// Parse returns one candidate per line. Lines are trimmed; blank lines and
// lines starting with '#' are skipped. Duplicates are kept in input order.
func Parse(r io.Reader) ([]string, error) {
	var result []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result = append(result, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
