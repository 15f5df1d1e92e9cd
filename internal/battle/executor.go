package battle

import (
	"runtime"
	"sync"
)

// Range is a half-open index interval [Start, End).
type Range struct {
	Start, End int
}

// Len returns the number of indices in r.
func (r Range) Len() int { return r.End - r.Start }

// Partition splits [0, n) into workers contiguous, non-overlapping ranges.
// The first n%workers ranges get one extra index so lengths differ by at
// most one. When n < workers the trailing ranges are empty.
func Partition(n, workers int) []Range {
	if workers < 1 {
		workers = 1
	}
	if n < 0 {
		n = 0
	}
	size := n / workers
	extra := n % workers
	out := make([]Range, workers)
	start := 0
	for i := range out {
		end := start + size
		if i < extra {
			end++
		}
		out[i] = Range{Start: start, End: end}
		start = end
	}
	return out
}

// Executor runs fork-join batches on a fixed pool of goroutines. Each call
// to ForEachRange is one phase: it returns only after every task finished.
type Executor struct {
	workers int
	tasks   chan func()
	done    sync.WaitGroup
	once    sync.Once
}

// NewExecutor starts a pool of workers goroutines. workers <= 0 sizes the
// pool to GOMAXPROCS.
func NewExecutor(workers int) *Executor {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	e := &Executor{
		workers: workers,
		tasks:   make(chan func(), workers),
	}
	e.done.Add(workers)
	for i := 0; i < workers; i++ {
		go e.loop()
	}
	return e
}

func (e *Executor) loop() {
	defer e.done.Done()
	for task := range e.tasks {
		task()
	}
}

// Workers returns the pool size, which is also the number of ranges per batch.
func (e *Executor) Workers() int { return e.workers }

// ForEachRange partitions [0, n) into Workers() ranges and runs fn once per
// non-empty range, passing the range's position in the partition. It blocks
// until all tasks complete.
func (e *Executor) ForEachRange(n int, fn func(part int, r Range)) {
	if n <= 0 {
		return
	}
	var wg sync.WaitGroup
	for part, r := range Partition(n, e.workers) {
		if r.Len() == 0 {
			continue
		}
		wg.Add(1)
		e.tasks <- func() {
			defer wg.Done()
			fn(part, r)
		}
	}
	wg.Wait()
}

// ForEach runs fn for every index in [0, n) and blocks until all are done.
func (e *Executor) ForEach(n int, fn func(i int)) {
	e.ForEachRange(n, func(_ int, r Range) {
		for i := r.Start; i < r.End; i++ {
			fn(i)
		}
	})
}

// Close stops the pool and waits for the workers to exit. The executor must
// not be used afterwards.
func (e *Executor) Close() {
	e.once.Do(func() {
		close(e.tasks)
		e.done.Wait()
	})
}
