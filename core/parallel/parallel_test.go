package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForEachVisitsEveryItemOnce(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 16} {
		seen := make([]int32, 10)
		ForEach(len(seen), workers, func(i int) {
			atomic.AddInt32(&seen[i], 1)
		})
		for i, n := range seen {
			assert.Equal(t, int32(1), n, "workers=%d item=%d", workers, i)
		}
	}
}

func TestParallelizeRanges(t *testing.T) {
	var total int64
	Parallelize(101, 4, func(start, end int) {
		assert.Less(t, start, end)
		atomic.AddInt64(&total, int64(end-start))
	})
	assert.Equal(t, int64(101), total)

	called := false
	Parallelize(0, 4, func(int, int) { called = true })
	assert.False(t, called)
}

func TestForEachWithThresholdSequential(t *testing.T) {
	var order []int
	ForEachWithThreshold(4, 4, 8, func(i int) { order = append(order, i) })
	assert.Equal(t, []int{0, 1, 2, 3}, order)
}
