package scanner

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dirprobe/dirprobe/internal/config"
)

func newTestProber(t *testing.T, target string, threads int) *Prober {
	t.Helper()
	p, err := NewProber(&config.Options{
		URL:       target,
		Threads:   threads,
		Timeout:   5 * time.Second,
		UserAgent: "dirprobe-test",
	})
	if err != nil {
		t.Fatalf("NewProber: %v", err)
	}
	return p
}

// deadTarget returns the URL of a server that has already been shut down,
// so every request to it fails at the transport level.
func deadTarget(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	target := srv.URL
	srv.Close()
	return target
}
