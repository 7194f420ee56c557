package config

import (
	"flag"
	"os"
	"strconv"

	"cell-society/internal/core"
)

// Option describes one command-line setting that may also come from the
// environment. Flags win over environment variables, which win over Default.
type Option struct {
	Flag    string
	Env     string
	Default string
	Usage   string
	Set     func(string) error
}

// String stores the resolved value in dst.
func String(dst *string) func(string) error {
	return func(v string) error {
		*dst = v
		return nil
	}
}

// Int parses the resolved value into dst.
func Int(dst *int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}
}

// Resolve registers every option on fs, parses args and applies the
// resolved values in order. A value Set rejects is a ConfigError naming the
// flag.
func Resolve(fs *flag.FlagSet, args []string, opts []Option) error {
	vals := make([]*string, len(opts))
	for i, o := range opts {
		vals[i] = fs.String(o.Flag, "", o.Usage)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	for i, o := range opts {
		v := *vals[i]
		if v == "" && o.Env != "" {
			v = os.Getenv(o.Env)
		}
		if v == "" {
			v = o.Default
		}
		if o.Set == nil {
			continue
		}
		if err := o.Set(v); err != nil {
			return core.Configf(o.Flag, "invalid value %q: %v", v, err)
		}
	}
	return nil
}
