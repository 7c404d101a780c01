package format

import (
	"bytes"
	"context"
	"os"
)

// Fixer rewrites files through the formatter and reports which ones changed.
// Unlike the Invoker it always runs the formatter in place, and it detects
// changes itself by comparing file content before and after, so it works
// even with formatter builds whose in-place mode always exits zero.
type Fixer struct {
	bin string
}

// NewFixer returns a Fixer bound to a resolved formatter executable.
func NewFixer(bin string) *Fixer {
	return &Fixer{bin: bin}
}

// Fix formats one file in place and compares its content before and after.
// A read failure or a formatter crash is fatal for the file.
func (f *Fixer) Fix(ctx context.Context, path string) Result {
	res := Result{Path: path}
	before, err := os.ReadFile(path)
	if err != nil {
		res.Status = StatusError
		res.Detail = err.Error()
		return res
	}
	stderr, err := runFormatter(ctx, f.bin, []string{"-i", path})
	if err != nil {
		res.Status = StatusError
		res.Detail = stderr
		if res.Detail == "" {
			res.Detail = err.Error()
		}
		return res
	}
	after, err := os.ReadFile(path)
	if err != nil {
		res.Status = StatusError
		res.Detail = err.Error()
		return res
	}
	if !bytes.Equal(before, after) {
		res.Status = StatusChanged
	}
	return res
}
