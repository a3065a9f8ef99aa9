package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/dirprobe/dirprobe/internal/scanner"
)

// outcomeJSON is the payload sent to the hook command via stdin.
type outcomeJSON struct {
	URL           string  `json:"url"`
	Path          string  `json:"path"`
	StatusCode    int     `json:"status"`
	ContentLength int64   `json:"length"`
	Time          float64 `json:"time"`
	FalsePositive bool    `json:"false_positive"`
}

// Runner executes a shell command for each displayed outcome.
type Runner struct {
	cmd     string
	timeout time.Duration
	stdout  io.Writer
}

// NewRunner creates a hook runner. cmd is the shell command to execute;
// its output is echoed to stderr unless quiet is set.
func NewRunner(cmd string, quiet bool) *Runner {
	r := &Runner{cmd: cmd, timeout: 30 * time.Second, stdout: os.Stderr}
	if quiet {
		r.stdout = io.Discard
	}
	return r
}

// Run executes the hook command with the outcome as JSON on stdin.
// Placeholders {url}, {path}, {status}, {length} and {time} are expanded
// in the command line. Failures are logged and returned; they never stop
// the scan.
func (r *Runner) Run(o *scanner.Outcome) error {
	data, err := json.Marshal(outcomeJSON{
		URL:           o.URL,
		Path:          o.Path,
		StatusCode:    o.StatusCode,
		ContentLength: o.ContentLength,
		Time:          o.Elapsed.Seconds(),
		FalsePositive: o.FalsePositive,
	})
	if err != nil {
		return fmt.Errorf("hook payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	expanded := strings.NewReplacer(
		"{url}", o.URL,
		"{path}", o.Path,
		"{status}", strconv.Itoa(o.StatusCode),
		"{length}", strconv.FormatInt(o.ContentLength, 10),
		"{time}", strconv.FormatFloat(o.Elapsed.Seconds(), 'f', 2, 64),
	).Replace(r.cmd)

	shell, args := shellCommand()
	cmd := exec.CommandContext(ctx, shell, append(args, expanded)...)
	cmd.Stdin = bytes.NewReader(data)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		log.WithFields(log.Fields{
			"cmd":    expanded,
			"url":    o.URL,
			"stderr": strings.TrimSpace(stderr.String()),
			"err":    err,
		}).Warn("on-result hook failed")
		return fmt.Errorf("running hook for %s: %w", o.URL, err)
	}

	if len(out) > 0 {
		fmt.Fprintf(r.stdout, "[hook] %s", out)
	}
	return nil
}

func shellCommand() (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C"}
	}
	return "sh", []string{"-c"}
}
