package scanner

import (
	"bytes"
	"context"
	"crypto/rand"
	"io"
	"math/big"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

const (
	tokenLength    = 12
	tokenAlphabet  = "abcdefghijklmnopqrstuvwxyz0123456789"
	sampleMaxRunes = 200
)

// Baseline is the response to a path that almost certainly does not exist.
// It is computed once before dispatch and never modified afterwards.
type Baseline struct {
	StatusCode    int
	ContentLength int64
	// Sample is the start of the decoded body, kept for diagnostics only.
	Sample string
	URL    string
}

// AcquireBaseline requests one random path on the target. A non-nil error
// means no baseline is available and classification is disabled.
func AcquireBaseline(ctx context.Context, p *Prober) (*Baseline, error) {
	resp, err := p.get(ctx, randomToken(tokenLength))
	if err != nil {
		return nil, err
	}
	return &Baseline{
		StatusCode:    resp.StatusCode,
		ContentLength: resp.ContentLength,
		Sample:        decodeSample(resp.body, resp.contentType, sampleMaxRunes),
		URL:           resp.URL,
	}, nil
}

// randomToken returns n characters drawn from [a-z0-9].
func randomToken(n int) string {
	buf := make([]byte, n)
	limit := big.NewInt(int64(len(tokenAlphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			buf[i] = tokenAlphabet[i%len(tokenAlphabet)]
			continue
		}
		buf[i] = tokenAlphabet[idx.Int64()]
	}
	return string(buf)
}

// decodeSample converts body to UTF-8 using the declared or sniffed charset
// and truncates it to maxRunes characters.
func decodeSample(body []byte, contentType string, maxRunes int) string {
	text := body
	if r, err := charset.NewReader(bytes.NewReader(body), contentType); err == nil {
		if decoded, err := io.ReadAll(r); err == nil {
			text = decoded
		}
	}

	if utf8.RuneCount(text) <= maxRunes {
		return string(text)
	}
	n := 0
	for i := range string(text) {
		if n == maxRunes {
			return string(text[:i])
		}
		n++
	}
	return string(text)
}
