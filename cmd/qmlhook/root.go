package main

import (
	"github.com/spf13/cobra"

	"github.com/mv/qmlhook/internal/cli"
	"github.com/mv/qmlhook/internal/format"
)

// exitCode is set by each command's Run and reported by main.
// The process exits 0 or 1, nothing else.
var exitCode int

var (
	useSpaces     bool
	checkOnly     bool
	inPlace       bool
	tabSize       int
	staged        bool
	recursive     bool
	noIgnore      bool
	hidden        bool
	excludes      []string
	maxWorkers    int
	formatterPath string
	jsonOutput    bool
	colorMode     string
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "qmlhook [files...]",
	Short: "Run qmlformat across QML sources as a pre-commit gate",
	Long: `qmlhook locates a qmlformat executable on PATH and runs it over the
given QML files in parallel, rewriting them in place by default. With
--check nothing is modified and files that are not formatted are reported
instead. The exit status is 0 when every file is clean and 1 otherwise,
which is what git pre-commit expects.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode = cli.Run(cmd.Context(), buildConfig(args))
	},
}

// buildConfig assembles the run configuration from the shared flag set
// and the positional arguments.
func buildConfig(paths []string) cli.Config {
	return cli.Config{
		UseSpaces:     useSpaces,
		Check:         checkOnly,
		InPlace:       inPlace,
		TabSize:       tabSize,
		Paths:         paths,
		Staged:        staged,
		Recursive:     recursive,
		NoIgnore:      noIgnore,
		Hidden:        hidden,
		Excludes:      excludes,
		Workers:       maxWorkers,
		FormatterPath: formatterPath,
		JSONOutput:    jsonOutput,
		Color:         colorMode,
		Verbose:       verbose,
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&useSpaces, "use-spaces", false, "Indent with spaces instead of tabs")
	pf.IntVar(&tabSize, "tab-size", format.DefaultTabSize, "Indent width passed to qmlformat")
	pf.StringVar(&formatterPath, "qmlformat-path", "", "Path to qmlformat (skips PATH discovery)")
	pf.StringArrayVar(&excludes, "exclude", nil, "Drop files whose path matches this pattern (repeatable)")
	pf.BoolVar(&staged, "staged", false, "Use the QML files staged in the git index")
	pf.BoolVarP(&recursive, "recursive", "r", false, "Descend into directory arguments")
	pf.BoolVar(&noIgnore, "no-ignore", false, "Do not honor .gitignore files during collection")
	pf.BoolVar(&hidden, "hidden", false, "Include hidden files and directories")
	pf.BoolVar(&jsonOutput, "json", false, "Emit one JSON object per result line")
	pf.StringVar(&colorMode, "color", "auto", "Colorize output: auto, always, or never")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	fl := rootCmd.Flags()
	fl.BoolVar(&checkOnly, "check", false, "Report files that need formatting without writing")
	fl.BoolVar(&inPlace, "inplace", true, "Rewrite files in place (--check overrides)")
	fl.IntVar(&maxWorkers, "max-workers", 0, "Formatter processes to run at once (0 = auto)")
}
