// Package flagx contains helpers for parsing a subset of the command line
// without interfering with flags registered by other packages.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns a slice of command-line arguments that only contains
// the allowed flags (and their values) specified in allowedFlags.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -e dev.env
//  2. Flag and value combined with '=':      --env-file=dev.env
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "--flag=value" form
		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		// "-flag value" form
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

// EnvFileFlag inspects command-line arguments and extracts the .env file path
// provided via the -e or -env-file flags. If neither is present, an empty
// string is returned.
func EnvFileFlag() string {
	var envFile string

	args := FilterArgs(os.Args[1:], []string{"-e", "-env-file"})

	fs := flag.NewFlagSet("envfile", flag.ContinueOnError)
	fs.StringVar(&envFile, "env-file", "", "Path to .env file")
	fs.StringVar(&envFile, "e", "", "Path to .env file (short)")
	_ = fs.Parse(args)

	return envFile
}
