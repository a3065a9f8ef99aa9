package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dirprobe/dirprobe/internal/config"
	"github.com/dirprobe/dirprobe/internal/runner"
	"github.com/dirprobe/dirprobe/pkg/version"
)

var (
	opts       = config.Defaults()
	rawHeaders []string
	configFile string
)

type flagGroup struct {
	title string
	flags []string
}

var helpGroups = []flagGroup{
	{"TARGET", []string{"url", "wordlist"}},
	{"PERFORMANCE", []string{"threads", "timeout"}},
	{"WILDCARD", []string{"no-wildcard-check", "hide-false-positives"}},
	{"FILTERS", []string{"include-status", "exclude-status"}},
	{"HTTP", []string{"header", "user-agent", "proxy"}},
	{"OUTPUT", []string{"output", "json", "quiet", "no-color", "verbose", "report-unreachable", "on-result"}},
	{"CONFIGURATION", []string{"config"}},
}

var rootCmd = &cobra.Command{
	Use:     "dirprobe -u <url> -w <wordlist> [flags]",
	Short:   "Concurrent web path prober with wildcard detection",
	Version: version.Version,
	Long: `dirprobe requests every path from a wordlist against a base URL and
reports status, size and timing for each one. Before the scan it requests a
random path to learn how the server answers for content that does not exist,
and flags responses that look the same as likely false positives.`,
	Example: `  dirprobe -u https://example.com -w common.txt
  dirprobe -u example.com -w common.txt -t 50 --timeout 5
  dirprobe -u https://example.com -w common.txt --json -o results.json
  dirprobe -u https://example.com -w common.txt -x 404 --hide-false-positives
  dirprobe -u https://example.com -w common.txt -H "Cookie: session=abc"
  dirprobe -c scan.yaml --on-result "notify-send {url}"`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		headers, err := parseHeaders(rawHeaders)
		if err != nil {
			return err
		}
		opts.Headers = headers

		if configFile != "" {
			if err := config.LoadFile(configFile, &opts, cmd.Flags().Changed); err != nil {
				return err
			}
		}

		opts.Normalize()
		configureLogging(opts.Verbose)
		if opts.NoColor {
			color.NoColor = true
		}

		if err := opts.Validate(); err != nil {
			if opts.URL == "" || opts.WordlistPath == "" {
				_ = cmd.Help()
				fmt.Fprintln(os.Stderr)
			}
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return runner.Run(ctx, &opts)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.Flags()

	// Target
	f.StringVarP(&opts.URL, "url", "u", "", "Base URL to probe")
	f.StringVarP(&opts.WordlistPath, "wordlist", "w", "", "Wordlist with one path per line")

	// Performance
	f.IntVarP(&opts.Threads, "threads", "t", config.DefaultThreads, "Number of concurrent workers")
	f.Var(&secondsValue{target: &opts.Timeout}, "timeout", "Per-request timeout in seconds or as a duration")

	// Wildcard detection
	f.BoolVar(&opts.NoWildcardCheck, "no-wildcard-check", false, "Skip the baseline request and false-positive flagging")
	f.BoolVar(&opts.HideFalsePositives, "hide-false-positives", false, "Hide flagged responses from the console")

	// Filtering
	f.VarP(&intSliceValue{target: &opts.IncludeStatus}, "include-status", "i", "Only show these status codes (comma-separated)")
	f.VarP(&intSliceValue{target: &opts.ExcludeStatus}, "exclude-status", "x", "Hide these status codes (comma-separated)")

	// HTTP
	f.StringSliceVarP(&rawHeaders, "header", "H", nil, "Custom headers (Key: Value)")
	f.StringVar(&opts.UserAgent, "user-agent", config.DefaultUserAgent, "User-Agent header sent with every request")
	f.StringVar(&opts.Proxy, "proxy", "", "HTTP/SOCKS proxy URL")

	// Output
	f.StringVarP(&opts.OutputFile, "output", "o", config.DefaultOutputFile, "Results file, empty to skip")
	f.BoolVar(&opts.JSON, "json", false, "Write the results file as a JSON array")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "Only print result lines")
	f.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "Log debug details to stderr")
	f.BoolVar(&opts.ReportUnreachable, "report-unreachable", false, "List paths that failed at the transport level")
	f.StringVar(&opts.OnResultCmd, "on-result", "", "Shell command to run for each displayed result (receives JSON on stdin)")

	// Configuration
	f.StringVarP(&configFile, "config", "c", "", "YAML config file; explicit flags take precedence")

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		w := os.Stderr
		fmt.Fprint(w, helpBanner(cmd.Version))
		fmt.Fprintf(w, "%s\n\nUsage:\n  %s\n", cmd.Long, cmd.UseLine())
		fmt.Fprintf(w, "\nExamples:\n%s\n", cmd.Example)
		fmt.Fprintf(w, "\nFlags:\n")
		for _, g := range helpGroups {
			fmt.Fprintf(w, "\n%s:\n", g.title)
			for _, name := range g.flags {
				if f := cmd.Flags().Lookup(name); f != nil {
					fmt.Fprintln(w, formatFlag(f))
				}
			}
		}
		fmt.Fprintln(w)
	})
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func configureLogging(verbose bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetLevel(log.WarnLevel)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// parseHeaders turns repeated "Key: Value" flags into a header map.
func parseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		parts := strings.SplitN(h, ":", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("invalid header format %q, expected 'Key: Value'", h)
		}
		headers[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return headers, nil
}

// intSliceValue implements pflag.Value for comma-separated int slices.
type intSliceValue struct {
	target *[]int
}

func (v *intSliceValue) String() string {
	if v.target == nil || len(*v.target) == 0 {
		return ""
	}
	parts := make([]string, len(*v.target))
	for i, val := range *v.target {
		parts[i] = strconv.Itoa(val)
	}
	return strings.Join(parts, ",")
}

func (v *intSliceValue) Set(s string) error {
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid status code %q: %w", p, err)
		}
		if n < 100 || n > 599 {
			return fmt.Errorf("status code %d out of range", n)
		}
		*v.target = append(*v.target, n)
	}
	return nil
}

func (v *intSliceValue) Type() string { return "ints" }

// secondsValue implements pflag.Value for --timeout: "10", "2.5" or "1500ms".
type secondsValue struct {
	target *time.Duration
}

func (v *secondsValue) String() string {
	if v.target == nil {
		return ""
	}
	return v.target.String()
}

func (v *secondsValue) Set(s string) error {
	d, err := config.ParseSeconds(s)
	if err != nil {
		return err
	}
	*v.target = d
	return nil
}

func (v *secondsValue) Type() string { return "seconds" }

func formatFlag(f *pflag.Flag) string {
	var left string
	if f.Shorthand != "" {
		left = fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	} else {
		left = fmt.Sprintf("    --%s", f.Name)
	}

	typ := f.Value.Type()
	if typ != "bool" {
		left += " " + typ
	}

	// Pad to fixed column width for aligned descriptions.
	const col = 36
	for len(left) < col {
		left += " "
	}

	right := f.Usage
	def := f.DefValue
	if def != "" && def != "false" && def != "0" && def != "0s" && def != "[]" {
		right += fmt.Sprintf(" (default %s)", def)
	}

	return "   " + left + right
}

func helpBanner(ver string) string {
	if ver != "dev" && ver != "" && !strings.HasPrefix(ver, "v") {
		ver = "v" + ver
	}
	return fmt.Sprintf("\n  dirprobe %s\n\n", ver)
}
