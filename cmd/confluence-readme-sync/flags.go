package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// cliFlags holds parsed command-line flags.
type cliFlags struct {
	output    string
	config    string
	workers   int
	hardWraps bool
	verbose   bool
	version   bool
}

// parseFlags parses command-line arguments.
// Returns the flags, the positional arguments, and any parse error.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("confluence-readme-sync", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <input.md|dir> [more inputs...]\n\nFlags:\n%s",
			fs.Name(), fs.FlagUsages())
	}

	f := &cliFlags{}
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: alongside each input)")
	fs.StringVarP(&f.config, "config", "c", "", "YAML config file")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel conversions (0 = number of CPUs)")
	fs.BoolVar(&f.hardWraps, "hard-wraps", false, "render single newlines as <br/>")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output on stderr")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
