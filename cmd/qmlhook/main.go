package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mv/qmlhook/internal/cli"
)

func main() {
	// Defaults from ~/.qmlhook come first so command-line flags win.
	args := prependDefaults(cli.LoadConfigArgs(), os.Args[1:])
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
	os.Exit(exitCode)
}

// prependDefaults inserts the defaults-file arguments ahead of the real
// command line. Defaults the invoked command has no flag for are
// dropped, so a root-only entry like --check cannot break fix or
// install.
func prependDefaults(defaults, args []string) []string {
	if len(defaults) == 0 {
		return args
	}
	// Help and completion are registered lazily during Execute; do it
	// now so defaults are filtered against the command that will run.
	rootCmd.InitDefaultHelpCmd()
	rootCmd.InitDefaultCompletionCmd()
	target, _, err := rootCmd.Find(args)
	if err != nil || target == nil {
		target = rootCmd
	}

	kept := make([]string, 0, len(defaults)+len(args))
	for _, d := range defaults {
		if hasFlag(target, d) {
			kept = append(kept, d)
		}
	}
	return append(kept, args...)
}

// hasFlag reports whether the argument names a flag the command defines
// itself or inherits from an ancestor's persistent set.
func hasFlag(cmd *cobra.Command, arg string) bool {
	name := strings.TrimLeft(arg, "-")
	if i := strings.IndexByte(name, '='); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return false
	}
	defined := func(fs *pflag.FlagSet) bool {
		if len(name) == 1 {
			return fs.ShorthandLookup(name) != nil
		}
		return fs.Lookup(name) != nil
	}
	if defined(cmd.Flags()) || defined(cmd.PersistentFlags()) {
		return true
	}
	for c := cmd.Parent(); c != nil; c = c.Parent() {
		if defined(c.PersistentFlags()) {
			return true
		}
	}
	return false
}
