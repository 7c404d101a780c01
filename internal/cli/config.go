package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds all settings for one hook run.
type Config struct {
	// Formatter flags forwarded to qmlformat.
	UseSpaces bool
	Check     bool
	InPlace   bool
	TabSize   int

	// File selection.
	Paths     []string
	Staged    bool
	Recursive bool
	NoIgnore  bool
	Hidden    bool
	Excludes  []string

	// Execution.
	Workers       int
	FormatterPath string // bypasses discovery when set
	Debounce      time.Duration

	// Reporting.
	JSONOutput bool
	Color      string // auto, always, never
	Verbose    bool
}

// Validate checks that the config is coherent and returns an error if not.
func (c *Config) Validate() error {
	if c.TabSize <= 0 {
		return fmt.Errorf("invalid tab size: %d", c.TabSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid worker count: %d", c.Workers)
	}
	if c.Staged && len(c.Paths) > 0 {
		return fmt.Errorf("cannot combine --staged with explicit paths")
	}
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always, or never)", c.Color)
	}
	return nil
}

// LoadConfigArgs reads the defaults file and returns its contents as
// CLI arguments, one per line. The file is $QMLHOOK_CONFIG_PATH when
// set, otherwise ~/.qmlhook. Each line names one flag, with or without
// leading dashes and with any value attached by "=", so
//
//	use-spaces
//	tab-size=2
//	--exclude=^vendor/
//
// all work. Blank lines and # comments are skipped. Returns nil when
// there is no file.
func LoadConfigArgs() []string {
	path := os.Getenv("QMLHOOK_CONFIG_PATH")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(home, ".qmlhook")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var args []string
	for _, line := range strings.Split(string(data), "\n") {
		if arg, ok := flagLine(line); ok {
			args = append(args, arg)
		}
	}
	return args
}

// flagLine turns one defaults-file line into a single argument.
func flagLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", false
	}
	name, value, hasValue := strings.Cut(line, "=")
	name = strings.TrimSpace(name)
	if !strings.HasPrefix(name, "-") {
		name = "--" + name
	}
	if !hasValue {
		return name, true
	}
	return name + "=" + strings.TrimSpace(value), true
}
