package format

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultTabSize is the indent width qmlformat uses on its own. The
// tab-size flag is only forwarded when the requested width differs.
const DefaultTabSize = 4

// Options mirror the subset of qmlformat flags the hook drives.
type Options struct {
	UseSpaces bool
	CheckOnly bool
	InPlace   bool
	TabSize   int
}

// Invoker runs the external formatter against individual files.
type Invoker struct {
	bin  string
	opts Options
}

// NewInvoker returns an Invoker bound to a resolved formatter executable.
func NewInvoker(bin string, opts Options) *Invoker {
	return &Invoker{bin: bin, opts: opts}
}

// Args builds the formatter argv for one file, argv[0] excluded.
// Check mode takes precedence over in-place when both are set.
func (inv *Invoker) Args(path string) []string {
	args := make([]string, 0, 6)
	if inv.opts.UseSpaces {
		args = append(args, "--use-spaces")
	}
	if inv.opts.CheckOnly {
		args = append(args, "--check")
	} else if inv.opts.InPlace {
		args = append(args, "--inplace")
	}
	if inv.opts.TabSize != DefaultTabSize {
		args = append(args, "--tab-size", strconv.Itoa(inv.opts.TabSize))
	}
	return append(args, path)
}

// Format runs the formatter on one file and classifies the outcome.
// In check mode an exit status of 1 means the file needs formatting,
// not that the formatter failed.
func (inv *Invoker) Format(ctx context.Context, path string) Result {
	res := Result{Path: path}
	stderr, err := runFormatter(ctx, inv.bin, inv.Args(path))
	if err == nil {
		return res
	}
	var exitErr *exec.ExitError
	if inv.opts.CheckOnly && errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		res.Status = StatusNeedsFormat
		res.Detail = "needs formatting"
		return res
	}
	res.Status = StatusError
	res.Detail = stderr
	if res.Detail == "" {
		res.Detail = err.Error()
	}
	return res
}

func runFormatter(ctx context.Context, bin string, args []string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return strings.TrimSpace(stderr.String()), err
}
