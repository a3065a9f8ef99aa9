package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Seconds is a timeout that accepts either a bare number of seconds
// ("10", "2.5") or a Go duration string ("1500ms").
type Seconds time.Duration

// ParseSeconds parses the --timeout / timeout: syntax.
func ParseSeconds(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty timeout")
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f < 0 {
			return 0, fmt.Errorf("negative timeout %q", s)
		}
		return time.Duration(f * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: want seconds or a duration like 1500ms", s)
	}
	return d, nil
}

func (s *Seconds) UnmarshalYAML(value *yaml.Node) error {
	d, err := ParseSeconds(value.Value)
	if err != nil {
		return err
	}
	*s = Seconds(d)
	return nil
}

type fileOptions struct {
	Options `yaml:",inline"`
	Timeout *Seconds `yaml:"timeout"`
}

// LoadFile reads a YAML config file into opts. Keys for which changed
// reports true (flags given explicitly on the command line) are left
// untouched. Headers from the file are merged under explicit ones.
func LoadFile(path string, opts *Options, changed func(name string) bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	if len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config %s: top level must be a mapping", path)
	}

	var fo fileOptions
	if err := root.Decode(&fo); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	present := make(map[string]bool, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		present[root.Content[i].Value] = true
	}
	if changed == nil {
		changed = func(string) bool { return false }
	}

	if fo.Timeout != nil && !changed("timeout") {
		opts.Timeout = time.Duration(*fo.Timeout)
	}

	if len(fo.Headers) > 0 {
		if opts.Headers == nil {
			opts.Headers = make(map[string]string, len(fo.Headers))
		}
		for k, v := range fo.Headers {
			if _, exists := opts.Headers[k]; !exists {
				opts.Headers[k] = v
			}
		}
	}

	dst := reflect.ValueOf(opts).Elem()
	src := reflect.ValueOf(&fo.Options).Elem()
	typ := dst.Type()
	for i := 0; i < typ.NumField(); i++ {
		name := strings.Split(typ.Field(i).Tag.Get("yaml"), ",")[0]
		if name == "" || name == "-" || name == "headers" {
			continue
		}
		if !present[name] || changed(name) {
			continue
		}
		dst.Field(i).Set(src.Field(i))
	}
	return nil
}
