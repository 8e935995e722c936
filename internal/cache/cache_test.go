package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	t   time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func TestGetOrCompute_Idempotent(t *testing.T) {
	c := New()
	calls := 0
	fn := func() (any, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrCompute("regions", NewKey("sub-1"), time.Minute, fn)
		require.NoError(t, err)
		assert.Equal(t, "value", v)
	}
	assert.Equal(t, 1, calls, "compute fn must run exactly once within TTL")
}

func TestGetOrCompute_Expiry(t *testing.T) {
	clock := newFakeClock()
	c := New(WithClock(clock.Now))

	calls := 0
	fn := func() (any, error) {
		calls++
		return calls, nil
	}

	v, err := c.GetOrCompute("sizes", NewKey("westeurope"), time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	clock.Advance(59 * time.Second)
	v, err = c.GetOrCompute("sizes", NewKey("westeurope"), time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, 1, v, "entry must survive until the TTL elapses")

	clock.Advance(2 * time.Second)
	v, err = c.GetOrCompute("sizes", NewKey("westeurope"), time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, 2, v, "expired entry must be recomputed")
	assert.Equal(t, 2, calls)
}

func TestGetOrCompute_KeyIncludesArguments(t *testing.T) {
	c := New()
	calls := 0
	fn := func() (any, error) {
		calls++
		return calls, nil
	}

	a, err := c.GetOrCompute("skus", NewKey("westeurope", "sub-1"), time.Minute, fn)
	require.NoError(t, err)
	b, err := c.GetOrCompute("skus", NewKey("westeurope", "sub-2"), time.Minute, fn)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "different arguments must not share an entry")
}

func TestGetOrCompute_TTLPrecedence(t *testing.T) {
	clock := newFakeClock()
	c := New(WithClock(clock.Now), WithDefaultTTL(10*time.Second))

	calls := 0
	fn := func() (any, error) {
		calls++
		return calls, nil
	}

	// No per-call TTL: the configured default (10s) applies.
	_, err := c.GetOrCompute("a", NewKey(), 0, fn)
	require.NoError(t, err)
	clock.Advance(11 * time.Second)
	_, err = c.GetOrCompute("a", NewKey(), 0, fn)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	// Explicit per-call TTL wins over the configured default.
	_, err = c.GetOrCompute("b", NewKey(), time.Hour, fn)
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = c.GetOrCompute("b", NewKey(), time.Hour, fn)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestGetOrCompute_ConstantDefault(t *testing.T) {
	clock := newFakeClock()
	c := New(WithClock(clock.Now))

	calls := 0
	fn := func() (any, error) {
		calls++
		return calls, nil
	}

	_, err := c.GetOrCompute("a", NewKey(), 0, fn)
	require.NoError(t, err)
	clock.Advance(DefaultTTL - time.Second)
	_, err = c.GetOrCompute("a", NewKey(), 0, fn)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	clock.Advance(2 * time.Second)
	_, err = c.GetOrCompute("a", NewKey(), 0, fn)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetOrCompute_ErrorNotCached(t *testing.T) {
	c := New()
	calls := 0
	fn := func() (any, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("upstream down")
		}
		return "ok", nil
	}

	_, err := c.GetOrCompute("a", NewKey(), time.Minute, fn)
	require.Error(t, err)
	assert.Equal(t, 0, c.Len(), "failed computations must not leave entries")

	v, err := c.GetOrCompute("a", NewKey(), time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestInvalidate_DropsOnlyIdentity(t *testing.T) {
	c := New()
	mk := func(v string) func() (any, error) {
		return func() (any, error) { return v, nil }
	}

	_, err := c.GetOrCompute("regions", NewKey("sub-1"), time.Minute, mk("r1"))
	require.NoError(t, err)
	_, err = c.GetOrCompute("regions", NewKey("sub-2"), time.Minute, mk("r2"))
	require.NoError(t, err)
	_, err = c.GetOrCompute("sizes", NewKey("sub-1"), time.Minute, mk("s1"))
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	c.Invalidate("regions")
	assert.Equal(t, 1, c.Len())

	v, err := c.GetOrCompute("sizes", NewKey("sub-1"), time.Minute, mk("other"))
	require.NoError(t, err)
	assert.Equal(t, "s1", v, "other identities must be untouched")
}

func TestClear(t *testing.T) {
	c := New()
	_, err := c.GetOrCompute("a", NewKey(), time.Minute, func() (any, error) { return 1, nil })
	require.NoError(t, err)
	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestGetOrCompute_SingleFlight(t *testing.T) {
	c := New()
	var calls atomic.Int32
	release := make(chan struct{})
	fn := func() (any, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make([]any, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.GetOrCompute("hot", NewKey("key"), time.Minute, fn)
		}(i)
	}

	// Give the goroutines time to stack up on the flight group, then let the
	// single computation finish.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "concurrent misses must share one computation")
	for i, v := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", v)
	}
}

func TestObserver_ConcurrentMissesCountOnce(t *testing.T) {
	var misses atomic.Int32
	c := New(WithObserver(func(_ string, hit bool) {
		if !hit {
			misses.Add(1)
		}
	}))

	release := make(chan struct{})
	fn := func() (any, error) {
		<-release
		return "shared", nil
	}

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.GetOrCompute("hot", NewKey("key"), time.Minute, fn)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), misses.Load(), "misses count computations, not callers")
}

func TestObserver(t *testing.T) {
	var hits, misses int
	c := New(WithObserver(func(identity string, hit bool) {
		if hit {
			hits++
		} else {
			misses++
		}
	}))

	fn := func() (any, error) { return 1, nil }
	_, _ = c.GetOrCompute("a", NewKey(), time.Minute, fn)
	_, _ = c.GetOrCompute("a", NewKey(), time.Minute, fn)

	assert.Equal(t, 1, misses)
	assert.Equal(t, 1, hits)
}

func TestGetTyped(t *testing.T) {
	c := New()
	v, err := GetTyped(c, "list", NewKey("x"), time.Minute, func() ([]string, error) {
		return []string{"a", "b"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)

	_, err = GetTyped(c, "err", NewKey(), time.Minute, func() ([]string, error) {
		return nil, errors.New("boom")
	})
	assert.Error(t, err)
}
