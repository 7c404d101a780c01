package output

import (
	"io"

	"github.com/mv/qmlhook/internal/format"
)

// OrderedWriter consumes results as workers complete them and writes
// report lines in submission order, buffering whatever arrives early.
// Output is deterministic regardless of worker interleaving.
type OrderedWriter struct {
	out       io.Writer
	formatter Formatter
	verbose   bool
	buf       []byte
}

// NewOrderedWriter creates an OrderedWriter.
func NewOrderedWriter(out io.Writer, f Formatter, verbose bool) *OrderedWriter {
	return &OrderedWriter{
		out:       out,
		formatter: f,
		verbose:   verbose,
	}
}

// WriteOrdered drains the result channel. observe runs for every result
// in arrival order, so aggregation sees completions as they happen; the
// report itself is written in sequence-number order.
func (ow *OrderedWriter) WriteOrdered(results <-chan format.Result, observe func(format.Result)) {
	nextSeq := 1
	pending := make(map[int]format.Result)

	for r := range results {
		if observe != nil {
			observe(r)
		}

		if r.SeqNum != nextSeq {
			pending[r.SeqNum] = r
			continue
		}
		ow.write(r)
		nextSeq++
		// Flush any consecutive pending results
		for {
			p, ok := pending[nextSeq]
			if !ok {
				break
			}
			ow.write(p)
			delete(pending, nextSeq)
			nextSeq++
		}
	}
}

// WriteResult renders a single result immediately, for sequential runs
// that produce results in order already.
func (ow *OrderedWriter) WriteResult(r format.Result) {
	ow.write(r)
}

// WriteSummary appends the end-of-run line for a batch.
func (ow *OrderedWriter) WriteSummary(tally Tally) {
	ow.buf = ow.formatter.Summary(ow.buf[:0], tally)
	if len(ow.buf) > 0 {
		ow.out.Write(ow.buf)
	}
}

func (ow *OrderedWriter) write(r format.Result) {
	ow.buf = ow.formatter.Format(ow.buf[:0], r, ow.verbose)
	if len(ow.buf) > 0 {
		ow.out.Write(ow.buf)
	}
}
