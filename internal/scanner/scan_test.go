package scanner

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// wildcardServer answers /login with a 1200 byte page, hangs up on paths
// starting with /broken and returns a 50 byte 404 for everything else.
func wildcardServer(t *testing.T) *httptest.Server {
	t.Helper()
	notFound := strings.Repeat("n", 50)
	login := strings.Repeat("L", 1200)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/login":
			fmt.Fprint(w, login)
		case strings.HasPrefix(r.URL.Path, "/broken"):
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Error("response writer does not support hijacking")
				return
			}
			conn, _, err := hj.Hijack()
			if err == nil {
				conn.Close()
			}
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, notFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func outcomesByPath(rs *ResultSet) map[string]Outcome {
	m := make(map[string]Outcome)
	for _, o := range rs.Outcomes() {
		m[o.Path] = o
	}
	return m
}

func TestScanEndToEnd(t *testing.T) {
	srv := wildcardServer(t)
	p := newTestProber(t, srv.URL, 2)

	rs := Scan(context.Background(), p, []string{"login", "xyz123"}, ScanConfig{Threads: 2})

	if rs.Baseline == nil {
		t.Fatal("expected a baseline")
	}
	if rs.Baseline.StatusCode != 404 || rs.Baseline.ContentLength != 50 {
		t.Errorf("baseline = %d/%d, want 404/50", rs.Baseline.StatusCode, rs.Baseline.ContentLength)
	}
	if rs.Len() != 2 {
		t.Fatalf("expected 2 outcomes, got %d", rs.Len())
	}

	got := outcomesByPath(rs)
	login := got["login"]
	if login.URL != srv.URL+"/login" || login.StatusCode != 200 || login.ContentLength != 1200 || login.FalsePositive {
		t.Errorf("login outcome = %+v", login)
	}
	xyz := got["xyz123"]
	if xyz.URL != srv.URL+"/xyz123" || xyz.StatusCode != 404 || xyz.ContentLength != 50 || !xyz.FalsePositive {
		t.Errorf("xyz123 outcome = %+v", xyz)
	}
	if rs.FalsePositives() != 1 {
		t.Errorf("FalsePositives() = %d, want 1", rs.FalsePositives())
	}
}

func TestScanBaselineFailureDisablesClassification(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The very first request is the baseline probe; kill it.
		if calls.Add(1) == 1 {
			hj := w.(http.Hijacker)
			conn, _, err := hj.Hijack()
			if err == nil {
				conn.Close()
			}
			return
		}
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "same")
	}))
	defer srv.Close()

	var baselineErr error
	rs := Scan(context.Background(), newTestProber(t, srv.URL, 1), []string{"a", "b", "c"}, ScanConfig{
		Threads:    1,
		OnBaseline: func(b *Baseline, err error) { baselineErr = err },
	})

	if rs.Baseline != nil {
		t.Fatalf("expected no baseline, got %+v", rs.Baseline)
	}
	if baselineErr == nil {
		t.Error("OnBaseline should receive the failure")
	}
	if rs.Len() != 3 {
		t.Fatalf("expected 3 outcomes, got %d", rs.Len())
	}
	for _, o := range rs.Outcomes() {
		if o.FalsePositive {
			t.Errorf("outcome %s flagged without a baseline", o.Path)
		}
	}
}

func TestScanNoBaseline(t *testing.T) {
	srv := wildcardServer(t)
	called := false
	rs := Scan(context.Background(), newTestProber(t, srv.URL, 2), []string{"xyz123"}, ScanConfig{
		Threads:    2,
		NoBaseline: true,
		OnBaseline: func(*Baseline, error) { called = true },
	})
	if called || rs.Baseline != nil {
		t.Error("baseline should not be acquired")
	}
	if o := rs.Outcomes(); len(o) != 1 || o[0].FalsePositive {
		t.Errorf("outcomes = %+v", o)
	}
}

func TestScanDropsTransportFailures(t *testing.T) {
	srv := wildcardServer(t)
	paths := []string{"login", "broken1", "a", "broken2", "b"}

	rs := Scan(context.Background(), newTestProber(t, srv.URL, 3), paths, ScanConfig{Threads: 3})

	if rs.Total != len(paths) {
		t.Errorf("Total = %d, want %d", rs.Total, len(paths))
	}
	if rs.Len() != 3 {
		t.Errorf("expected 3 outcomes, got %d: %+v", rs.Len(), rs.Outcomes())
	}
	if rs.Errors() != 2 {
		t.Errorf("Errors() = %d, want 2", rs.Errors())
	}
	for _, o := range rs.Outcomes() {
		if strings.HasPrefix(o.Path, "broken") {
			t.Errorf("failed probe %s leaked into outcomes", o.Path)
		}
	}
	if len(rs.Unreachable()) != 0 {
		t.Error("Unreachable should stay empty unless requested")
	}
}

func TestScanReportUnreachable(t *testing.T) {
	srv := wildcardServer(t)
	rs := Scan(context.Background(), newTestProber(t, srv.URL, 2), []string{"broken", "login"}, ScanConfig{
		Threads:           2,
		ReportUnreachable: true,
	})
	un := rs.Unreachable()
	if len(un) != 1 || un[0].Path != "broken" || un[0].URL != srv.URL+"/broken" {
		t.Fatalf("Unreachable = %+v", un)
	}
	if rs.Len() != 1 {
		t.Errorf("expected 1 outcome, got %d", rs.Len())
	}
}

func TestScanBoundsInFlight(t *testing.T) {
	const limit = 4
	var inFlight, peak atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		fmt.Fprint(w, r.URL.Path)
	}))
	defer srv.Close()

	paths := make([]string, 40)
	for i := range paths {
		paths[i] = fmt.Sprintf("p%d", i)
	}

	rs := Scan(context.Background(), newTestProber(t, srv.URL, limit), paths, ScanConfig{Threads: limit, NoBaseline: true})

	if rs.Len() != len(paths) {
		t.Errorf("expected %d outcomes, got %d", len(paths), rs.Len())
	}
	if p := peak.Load(); p > limit {
		t.Errorf("peak in-flight = %d, limit %d", p, limit)
	}
	if p := peak.Load(); p < 2 {
		t.Errorf("peak in-flight = %d, expected probes to overlap", p)
	}

	seen := make(map[string]bool)
	for _, o := range rs.Outcomes() {
		if seen[o.Path] {
			t.Errorf("duplicate outcome for %s", o.Path)
		}
		seen[o.Path] = true
	}
}

func TestScanProgressAndOutcomeCallbacks(t *testing.T) {
	srv := wildcardServer(t)
	paths := []string{"login", "broken", "x", "y"}

	var mu sync.Mutex
	var progress []int
	var streamed []string
	rs := Scan(context.Background(), newTestProber(t, srv.URL, 2), paths, ScanConfig{
		Threads: 2,
		OnOutcome: func(o Outcome) {
			mu.Lock()
			streamed = append(streamed, o.Path)
			mu.Unlock()
		},
		OnProgress: func(done, total int) {
			mu.Lock()
			defer mu.Unlock()
			if total != len(paths) {
				t.Errorf("total = %d, want %d", total, len(paths))
			}
			progress = append(progress, done)
		},
	})

	if len(progress) != len(paths) {
		t.Fatalf("expected %d progress updates, got %v", len(paths), progress)
	}
	for i, d := range progress {
		if d != i+1 {
			t.Errorf("progress[%d] = %d, want %d", i, d, i+1)
		}
	}

	outcomes := rs.Outcomes()
	if len(streamed) != len(outcomes) {
		t.Fatalf("streamed %d outcomes, result set has %d", len(streamed), len(outcomes))
	}
	for i := range outcomes {
		if streamed[i] != outcomes[i].Path {
			t.Errorf("stream order differs from result set at %d: %s vs %s", i, streamed[i], outcomes[i].Path)
		}
	}
}

func TestScanEmptyCandidates(t *testing.T) {
	srv := wildcardServer(t)
	rs := Scan(context.Background(), newTestProber(t, srv.URL, 5), nil, ScanConfig{Threads: 5})
	if rs.Len() != 0 || rs.Total != 0 {
		t.Errorf("expected empty result set, got %d/%d", rs.Len(), rs.Total)
	}
}
