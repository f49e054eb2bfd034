package search

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Debounce returns a function that delivers only the last of a rapid call
// sequence: each invocation restarts the delay timer and records its
// argument, and fn fires with the latest argument once delay elapses with
// no further call. A pending delivery is implicitly cancelled by the next
// invocation. A non-positive delay invokes fn synchronously.
//
// The clock is injected so tests can advance virtual time.
func Debounce[T any](c clock.Clock, delay time.Duration, fn func(T)) func(T) {
	if delay <= 0 {
		return fn
	}

	var mu sync.Mutex
	var timer *clock.Timer
	var latest T
	var gen uint64

	return func(arg T) {
		mu.Lock()
		defer mu.Unlock()
		latest = arg
		gen++
		if timer != nil {
			timer.Stop()
		}
		// Stop cannot cancel a callback that already fired and is waiting
		// on mu, so each delivery checks it belongs to the current arming.
		mine := gen
		timer = c.AfterFunc(delay, func() {
			mu.Lock()
			if gen != mine {
				mu.Unlock()
				return
			}
			arg := latest
			mu.Unlock()
			fn(arg)
		})
	}
}
