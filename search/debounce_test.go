package search

import (
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

// capture collects debounced deliveries; the timer callback may run on
// another goroutine.
type capture struct {
	mu   sync.Mutex
	args []string
}

func (c *capture) fn(arg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.args = append(c.args, arg)
}

func (c *capture) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.args...)
}

func TestDebounce_OnlyLastCallFires(t *testing.T) {
	req := require.New(t)
	mock := clock.NewMock()
	var got capture

	debounced := Debounce(mock, 300*time.Millisecond, got.fn)

	debounced("a")
	debounced("b")
	debounced("c")

	// Nothing before the quiet period elapses.
	mock.Add(299 * time.Millisecond)
	req.Empty(got.snapshot())

	mock.Add(time.Millisecond)
	req.Eventually(func() bool {
		return len(got.snapshot()) == 1
	}, time.Second, time.Millisecond)
	req.Equal([]string{"c"}, got.snapshot())
}

func TestDebounce_NewCallRestartsDelay(t *testing.T) {
	req := require.New(t)
	mock := clock.NewMock()
	var got capture

	debounced := Debounce(mock, 300*time.Millisecond, got.fn)

	debounced("first")
	mock.Add(200 * time.Millisecond)
	debounced("second")
	mock.Add(200 * time.Millisecond)
	req.Empty(got.snapshot())

	mock.Add(100 * time.Millisecond)
	req.Eventually(func() bool {
		return len(got.snapshot()) == 1
	}, time.Second, time.Millisecond)
	req.Equal([]string{"second"}, got.snapshot())
}

func TestDebounce_ZeroDelayIsSynchronous(t *testing.T) {
	req := require.New(t)
	mock := clock.NewMock()
	var got capture

	debounced := Debounce(mock, 0, got.fn)
	debounced("now")

	req.Equal([]string{"now"}, got.snapshot())
}

// A timer that has already fired can lose the race against a superseding
// call: Stop cannot recall it, so without the generation check the stale
// callback delivers the new value and the re-armed timer delivers it again.
// Calls spaced exactly one delay apart keep hitting that window; each armed
// value must still be delivered at most once.
func TestDebounce_StaleTimerDeliversAtMostOncePerCall(t *testing.T) {
	req := require.New(t)

	var mu sync.Mutex
	var delivered []int
	debounced := Debounce(clock.New(), time.Millisecond, func(v int) {
		mu.Lock()
		defer mu.Unlock()
		delivered = append(delivered, v)
	})

	const calls = 200
	for i := 0; i < calls; i++ {
		debounced(i)
		time.Sleep(time.Millisecond)
	}

	req.Eventually(func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(delivered) > 0 && delivered[len(delivered)-1] == calls-1
	}, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for i := 1; i < len(delivered); i++ {
		req.Greater(delivered[i], delivered[i-1],
			"value delivered twice or out of order: %v", delivered)
	}
}

func TestDebounce_SuccessiveBursts(t *testing.T) {
	req := require.New(t)
	mock := clock.NewMock()
	var got capture

	debounced := Debounce(mock, 100*time.Millisecond, got.fn)

	debounced("one")
	mock.Add(100 * time.Millisecond)
	req.Eventually(func() bool {
		return len(got.snapshot()) == 1
	}, time.Second, time.Millisecond)

	debounced("two")
	debounced("three")
	mock.Add(100 * time.Millisecond)
	req.Eventually(func() bool {
		return len(got.snapshot()) == 2
	}, time.Second, time.Millisecond)
	req.Equal([]string{"one", "three"}, got.snapshot())
}
