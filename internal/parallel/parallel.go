// Package parallel distributes independent, equal-cost work items
// across GOMAXPROCS goroutines: each worker claims a contiguous range
// of indices and writes its results in place, so the result is
// independent of scheduling order.
package parallel

import (
	"runtime"
	"sync"
)

// Fill calls fn(i) for every i in [0,n), distributed across
// runtime.GOMAXPROCS(0) goroutines, and blocks until all have
// completed. fn must write only to index i (or data it alone owns) so
// that the result is identical regardless of how work is split.
func Fill(n int, fn func(i int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	perWorker := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := start + perWorker
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}
