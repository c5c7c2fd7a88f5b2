package pipe

import (
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Feed sends every value read from in to send, in the current goroutine, until in is closed.
func Feed[T any](in <-chan T, send Receiver[T]) {
	for value := range in {
		send(value)
	}
}

// FeedPool sends every value read from in to send, each one in a task of the pool, and waits until in is closed
// and all the submitted tasks are done. Values may reach send in any order. A nil pool falls back to Feed.
//
// Each task is a plain synchronous Send: a panicking subscriber is handled by the pool panic handler.
//
// If a task cannot be submitted, FeedPool stops sending, drains in until it is closed, waits for the tasks already
// submitted and returns the error.
func FeedPool[T any](pool *ants.Pool, in <-chan T, send Receiver[T]) error {
	if pool == nil {
		Feed(in, send)
		return nil
	}

	var wg sync.WaitGroup
	defer wg.Wait()
	for value := range in {
		value := value
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			send(value)
		}); err != nil {
			wg.Done()
			for range in {
				// drop the remaining values, so the producer is not blocked
			}
			return fmt.Errorf("submit signal to pool: %w", err)
		}
	}
	return nil
}
