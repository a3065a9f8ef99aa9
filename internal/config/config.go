package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultThreads    = 20
	DefaultTimeout    = 10 * time.Second
	DefaultOutputFile = "dirsearch_results.txt"
	DefaultUserAgent  = "Mozilla/5.0 (X11; Linux x86_64)"
)

// Options holds all configuration for a dirprobe scan.
type Options struct {
	// Target
	URL          string `yaml:"url"`
	WordlistPath string `yaml:"wordlist"`

	// Performance
	Threads int           `yaml:"threads"`
	Timeout time.Duration `yaml:"-"` // read through fileOptions as Seconds

	// Wildcard detection
	NoWildcardCheck bool `yaml:"no-wildcard-check"`

	// Display filtering (console only)
	IncludeStatus      []int `yaml:"include-status"`
	ExcludeStatus      []int `yaml:"exclude-status"`
	HideFalsePositives bool  `yaml:"hide-false-positives"`

	// Output
	OutputFile        string `yaml:"output"`
	JSON              bool   `yaml:"json"`
	Quiet             bool   `yaml:"quiet"`
	NoColor           bool   `yaml:"no-color"`
	Verbose           bool   `yaml:"verbose"`
	ReportUnreachable bool   `yaml:"report-unreachable"`

	// HTTP
	Headers   map[string]string `yaml:"headers"`
	UserAgent string            `yaml:"user-agent"`
	Proxy     string            `yaml:"proxy"`

	// Hooks
	OnResultCmd string `yaml:"on-result"`
}

// Defaults returns the options used when nothing is set explicitly.
func Defaults() Options {
	return Options{
		Threads:    DefaultThreads,
		Timeout:    DefaultTimeout,
		OutputFile: DefaultOutputFile,
		UserAgent:  DefaultUserAgent,
	}
}

// Normalize fills derived values: a missing URL scheme becomes http://.
func (o *Options) Normalize() {
	o.URL = strings.TrimSpace(o.URL)
	if o.URL != "" && !strings.HasPrefix(o.URL, "http://") && !strings.HasPrefix(o.URL, "https://") {
		o.URL = "http://" + o.URL
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
}

// Validate reports the first option combination that cannot produce a scan.
func (o *Options) Validate() error {
	if o.URL == "" {
		return fmt.Errorf("target required: use -u/--url")
	}
	if o.WordlistPath == "" {
		return fmt.Errorf("wordlist required: use -w/--wordlist")
	}
	if o.Threads < 1 {
		return fmt.Errorf("--threads must be at least 1, got %d", o.Threads)
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("--timeout must be positive, got %s", o.Timeout)
	}
	if len(o.IncludeStatus) > 0 && len(o.ExcludeStatus) > 0 {
		return fmt.Errorf("--include-status and --exclude-status are mutually exclusive")
	}
	return nil
}
