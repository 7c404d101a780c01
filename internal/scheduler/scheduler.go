package scheduler

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/mv/qmlhook/internal/format"
)

// Runner is the per-file work the pool executes.
type Runner interface {
	Format(ctx context.Context, path string) format.Result
}

// Scheduler manages a pool of workers that format files concurrently.
type Scheduler struct {
	workers int
	runner  Runner
}

// New creates a Scheduler with the given number of workers.
// If workers is 0 or negative, defaults to NumCPU * 2.
func New(workers int, r Runner) *Scheduler {
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}
	return &Scheduler{workers: workers, runner: r}
}

// Workers reports the pool size.
func (s *Scheduler) Workers() int {
	return s.workers
}

// Run processes paths from the channel and returns results on the result
// channel, which closes once every submitted file has been handled.
// Sequence numbers follow dequeue order so output can be reassembled in
// submission order; the results themselves arrive in completion order.
// The pool never cancels in-flight work.
func (s *Scheduler) Run(ctx context.Context, paths <-chan string) <-chan format.Result {
	resultCh := make(chan format.Result, s.workers*2)
	var seq atomic.Int64

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				seqNum := int(seq.Add(1))
				res := s.runner.Format(ctx, path)
				res.SeqNum = seqNum
				resultCh <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	return resultCh
}

// Feed turns a slice of paths into a closed channel ready for Run.
func Feed(paths []string) <-chan string {
	ch := make(chan string, len(paths))
	for _, p := range paths {
		ch <- p
	}
	close(ch)
	return ch
}
