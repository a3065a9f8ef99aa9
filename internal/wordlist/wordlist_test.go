package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeWordlist(t *testing.T, content string) string {
	t.Helper()
	wl := filepath.Join(t.TempDir(), "test.txt")
	if err := os.WriteFile(wl, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return wl
}

func TestLoadSkipsBlanksAndComments(t *testing.T) {
	paths, err := Load(writeWordlist(t, "admin\n\n#comment\nlogin\n  \nbackup  \n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []string{"admin", "login", "backup"}
	if len(paths) != len(want) {
		t.Fatalf("got %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestLoadKeepsDuplicates(t *testing.T) {
	paths, err := Load(writeWordlist(t, "admin\nadmin\nlogin\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(paths) != 3 {
		t.Errorf("expected 3 entries, got %d: %v", len(paths), paths)
	}
}

func TestLoadHandlesCRLFAndIndentedComments(t *testing.T) {
	paths, err := Load(writeWordlist(t, "admin\r\n   # indented comment\r\n/api/v1/\r\nno-newline"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"admin", "/api/v1/", "no-newline"}
	if strings.Join(paths, ",") != strings.Join(want, ",") {
		t.Errorf("got %v, want %v", paths, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected error for missing wordlist")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist cause, got %v", err)
	}
}

func TestParseEmpty(t *testing.T) {
	paths, err := Parse(strings.NewReader("# only comments\n\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 0 {
		t.Errorf("expected no entries, got %v", paths)
	}
}
