package scanner

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dirprobe/dirprobe/internal/config"
)

// Prober issues one GET per candidate path against a fixed base URL.
type Prober struct {
	client    *http.Client
	baseURL   string
	headers   map[string]string
	userAgent string
}

// NewProber creates a Prober from the provided options. Redirects are
// followed with the net/http default policy.
func NewProber(opts *config.Options) (*Prober, error) {
	base, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", opts.URL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid URL %q: scheme and host required", opts.URL)
	}

	threads := opts.Threads
	if threads < 1 {
		threads = config.DefaultThreads
	}
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		DialContext: (&net.Dialer{
			Timeout: opts.Timeout,
		}).DialContext,
		MaxIdleConnsPerHost: threads,
		MaxIdleConns:        threads,
	}

	if opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", opts.Proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = config.DefaultUserAgent
	}

	return &Prober{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
		baseURL:   opts.URL,
		headers:   opts.Headers,
		userAgent: ua,
	}, nil
}

// BaseURL returns the target the prober was created for.
func (p *Prober) BaseURL() string { return p.baseURL }

// JoinURL composes base and path with exactly one slash between them.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// Probe requests path and returns its Outcome. Any transport failure,
// including a failed body read, is returned as a *ProbeError.
func (p *Prober) Probe(ctx context.Context, path string) (*Outcome, error) {
	resp, err := p.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return &resp.Outcome, nil
}

type response struct {
	Outcome
	body        []byte
	contentType string
}

func (p *Prober) get(ctx context.Context, path string) (*response, error) {
	targetURL := JoinURL(p.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, &ProbeError{Path: path, URL: targetURL, Err: err}
	}
	req.Header.Set("User-Agent", p.userAgent)
	for k, v := range p.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &ProbeError{Path: path, URL: targetURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProbeError{Path: path, URL: targetURL, Err: fmt.Errorf("reading body: %w", err)}
	}
	elapsed := time.Since(start)

	return &response{
		Outcome: Outcome{
			Path:          path,
			URL:           targetURL,
			StatusCode:    resp.StatusCode,
			ContentLength: int64(len(body)),
			Elapsed:       elapsed,
		},
		body:        body,
		contentType: resp.Header.Get("Content-Type"),
	}, nil
}
