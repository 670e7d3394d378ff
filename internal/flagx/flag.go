// Package flagx pre-scans command-line arguments for the few flags that
// must be known before the main flag set is parsed (config and env files).
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs returns only the allowed flags from args, with their values.
//
// Both "-c conf.json" and "-c=conf.json" forms are recognized. A value is
// taken from the next argument only when it does not start with '-'. Flags
// keep their order; the result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}
	return filtered
}

// ConfigPath returns the JSON config file given with -c or -config, or "".
func ConfigPath(args []string) string {
	return lookup(args, "c", "config")
}

// EnvPath returns the dotenv file given with -e or -env, or "".
func EnvPath(args []string) string {
	return lookup(args, "e", "env")
}

// lookup parses the short and long forms of one string flag. The last
// occurrence wins.
func lookup(args []string, short, long string) string {
	var v string
	fs := flag.NewFlagSet(long, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&v, long, "", "")
	fs.StringVar(&v, short, "", "")
	_ = fs.Parse(FilterArgs(args, []string{"-" + short, "-" + long, "--" + short, "--" + long}))
	return v
}
