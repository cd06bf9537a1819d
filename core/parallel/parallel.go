// Package parallel fans independent work items out over goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits items into contiguous ranges, one per worker, and calls
// fn(start, end) for each range concurrently. workers <= 0 means one worker
// per CPU. It returns when every range is done.
func Parallelize(items, workers int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items
	}

	// ceiling division
	chunkSize := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ForEach calls fn(i) for every i in [0, items) using up to workers goroutines.
func ForEach(items, workers int, fn func(i int)) {
	Parallelize(items, workers, func(start, end int) {
		for i := start; i < end; i++ {
			fn(i)
		}
	})
}

// ForEachWithThreshold runs sequentially in the calling goroutine when items
// is at most threshold, and like ForEach otherwise.
func ForEachWithThreshold(items, threshold, workers int, fn func(i int)) {
	if items <= threshold {
		for i := 0; i < items; i++ {
			fn(i)
		}
		return
	}
	ForEach(items, workers, fn)
}
