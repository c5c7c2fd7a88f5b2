package pipe_test

import (
	"sync"
	"sync/atomic"
	"testing"

	pipe "github.com/fogfactory/signalpipe"
	"github.com/maxatome/go-testdeep/td"
	"github.com/panjf2000/ants/v2"
	"github.com/samber/lo"
)

func InitPool(t testing.TB, size int, opts ...ants.Option) *ants.Pool {
	pool, err := ants.NewPool(size, opts...)
	td.Require(t).CmpNoError(err)
	t.Cleanup(pool.Release)
	return pool
}

func TestFeed(t *testing.T) {

	t.Run("feed_in_order", func(t *testing.T) {
		// Arrange
		var calls [][]int
		p := pipe.New(pipe.Map(func(i int) int { return i + 1 }))
		p.Connect(record(&calls))
		in := lo.SliceToChannel(0, lo.Range(5))

		// Act
		pipe.Feed(in, p.Send)

		// Assert
		td.Cmp(t, calls, [][]int{{1}, {2}, {3}, {4}, {5}})
	})

	t.Run("feed_pool_nil_pool", func(t *testing.T) {
		// Arrange
		var calls [][]int
		p := pipe.New[int]()
		p.Connect(record(&calls))
		in := lo.SliceToChannel(0, lo.Range(3))

		// Act
		err := pipe.FeedPool(nil, in, p.Send)

		// Assert
		td.CmpNoError(t, err)
		td.Cmp(t, calls, [][]int{{0}, {1}, {2}})
	})

	t.Run("feed_pool_concurrent_senders", func(t *testing.T) {
		// Arrange
		pool := InitPool(t, 8)
		var mu sync.Mutex
		var got []int
		p := pipe.New(pipe.Map(func(i int) int { return i * 2 }))
		p.Extend().Connect(func(args ...int) {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, args...)
		})
		input := lo.Range(100)

		// Act
		err := pipe.FeedPool(pool, lo.SliceToChannel(0, input), p.Send)

		// Assert
		td.CmpNoError(t, err)
		// Values can come in disorder, since the pool contains several workers
		td.CmpBag(t, got, lo.Map(input, func(i, _ int) any { return i * 2 }))
	})

	t.Run("feed_pool_rebuild_while_sending", func(t *testing.T) {
		// Arrange
		pool := InitPool(t, 8)
		var total atomic.Int64
		tap := pipe.Tap(func(args ...int) {})
		p := pipe.New[int]()
		p.Connect(func(args ...int) { total.Add(int64(args[0])) })
		in := make(chan int)

		// Act
		done := make(chan error)
		go func() { done <- pipe.FeedPool(pool, in, p.Send) }()
		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				p.Push(tap)
			} else {
				p.Remove(tap)
			}
			in <- 1
		}
		close(in)

		// Assert
		td.CmpNoError(t, <-done)
		td.Cmp(t, total.Load(), int64(200), "every signal goes through a complete chain")
	})

	t.Run("error_feed_pool_closed", func(t *testing.T) {
		// Arrange
		pool := InitPool(t, 1)
		pool.Release()
		p := pipe.New[int]()

		in := lo.SliceToChannel(0, lo.Range(3))

		// Act
		err := pipe.FeedPool(pool, in, p.Send)

		// Assert
		td.CmpErrorIs(t, err, ants.ErrPoolClosed)
		_, open := <-in
		td.CmpFalse(t, open, "input drained until closed")
	})
}
