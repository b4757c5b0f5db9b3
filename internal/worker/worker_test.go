package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	t.Run("runs every task", func(t *testing.T) {
		p := NewPool(context.Background(), 3)
		var mu sync.Mutex
		count := 0
		for i := 0; i < 5; i++ {
			p.Submit(func(context.Context) error {
				mu.Lock()
				count++
				mu.Unlock()
				return nil
			})
		}
		p.Submit(nil)
		require.NoError(t, p.Wait())
		require.Equal(t, 5, count)
	})

	t.Run("limits concurrency", func(t *testing.T) {
		p := NewPool(context.Background(), 0)
		var running, peak int32
		for i := 0; i < 4; i++ {
			p.Submit(func(context.Context) error {
				n := atomic.AddInt32(&running, 1)
				if n > atomic.LoadInt32(&peak) {
					atomic.StoreInt32(&peak, n)
				}
				atomic.AddInt32(&running, -1)
				return nil
			})
		}
		require.NoError(t, p.Wait())
		require.Equal(t, int32(1), peak)
	})

	t.Run("first error cancels the rest", func(t *testing.T) {
		boom := errors.New("boom")
		p := NewPool(context.Background(), 1)
		p.Submit(func(context.Context) error { return boom })
		ran := false
		p.Submit(func(context.Context) error { ran = true; return nil })
		require.ErrorIs(t, p.Wait(), boom)
		require.False(t, ran)
	})
}
