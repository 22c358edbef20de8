package ratelimiter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter(t *testing.T) {
	t.Run("burst then refusal", func(t *testing.T) {
		l := New(0.001, 2, time.Minute)
		defer l.Stop()

		assert.True(t, l.Allow("a"))
		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))
	})

	t.Run("identities are independent", func(t *testing.T) {
		l := New(0.001, 1, time.Minute)
		defer l.Stop()

		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))
		assert.True(t, l.Allow("b"))
	})

	t.Run("tokens refill over time", func(t *testing.T) {
		l := New(100, 1, time.Minute)
		defer l.Stop()

		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))
		time.Sleep(50 * time.Millisecond)
		assert.True(t, l.Allow("a"))
	})

	t.Run("concurrent access", func(t *testing.T) {
		l := New(0.001, 10, time.Minute)
		defer l.Stop()

		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if l.Allow("a") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 10, allowed)
	})

	t.Run("idle buckets expire", func(t *testing.T) {
		l := New(0.001, 1, 20*time.Millisecond)
		defer l.Stop()

		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))

		time.Sleep(50 * time.Millisecond)

		// Bucket was evicted, so the identity starts fresh.
		assert.True(t, l.Allow("a"))
	})
}
