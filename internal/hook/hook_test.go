package hook

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/dirprobe/dirprobe/internal/scanner"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("hook tests use a POSIX shell")
	}
}

func TestRunPassesJSONOnStdin(t *testing.T) {
	skipOnWindows(t)
	dst := filepath.Join(t.TempDir(), "payload.json")
	r := NewRunner("cat > "+dst, true)

	o := &scanner.Outcome{
		Path:          "admin",
		URL:           "http://example.com/admin",
		StatusCode:    200,
		ContentLength: 42,
		Elapsed:       250 * time.Millisecond,
		FalsePositive: true,
	}
	if err := r.Run(o); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	var got outcomeJSON
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("payload is not JSON: %v (%q)", err, data)
	}
	want := outcomeJSON{URL: o.URL, Path: "admin", StatusCode: 200, ContentLength: 42, Time: 0.25, FalsePositive: true}
	if got != want {
		t.Errorf("payload = %+v, want %+v", got, want)
	}
}

func TestRunExpandsPlaceholders(t *testing.T) {
	skipOnWindows(t)
	var out bytes.Buffer
	r := NewRunner("echo {status} {path} {length} {url}", false)
	r.stdout = &out

	o := &scanner.Outcome{Path: "login", URL: "http://x/login", StatusCode: 403, ContentLength: 7}
	if err := r.Run(o); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "[hook] 403 login 7 http://x/login" {
		t.Errorf("hook output = %q", got)
	}
}

func TestRunReportsFailure(t *testing.T) {
	skipOnWindows(t)
	r := NewRunner("exit 3", true)
	if err := r.Run(&scanner.Outcome{URL: "http://x/a"}); err == nil {
		t.Error("expected error from failing hook")
	}
}
