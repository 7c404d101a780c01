package output

import "github.com/mv/qmlhook/internal/format"

// Formatter renders per-file outcomes into bytes for the report stream.
// buf is a reusable buffer; implementations append to it and return the
// result. Callers can pass buf[:0] to reuse the underlying array.
type Formatter interface {
	// Format renders one result. Clean files produce no output unless
	// verbose is set.
	Format(buf []byte, res format.Result, verbose bool) []byte
	// Summary renders the end-of-run line for a multi-file batch.
	Summary(buf []byte, tally Tally) []byte
}

// Tally accumulates per-status counts across a run.
type Tally struct {
	Total       int
	OK          int
	NeedsFormat int
	Changed     int
	Errors      int
}

// Observe counts one result.
func (t *Tally) Observe(res format.Result) {
	t.Total++
	switch res.Status {
	case format.StatusOK:
		t.OK++
	case format.StatusNeedsFormat:
		t.NeedsFormat++
	case format.StatusChanged:
		t.Changed++
	case format.StatusError:
		t.Errors++
	}
}

// Clean reports whether every observed file came back conforming.
func (t *Tally) Clean() bool {
	return t.NeedsFormat == 0 && t.Changed == 0 && t.Errors == 0
}
