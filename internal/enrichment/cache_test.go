package enrichment

import (
	"context"
	"fmt"
	"github.com/stretchr/testify/assert"
	"sync"
	"testing"
	"time"
)

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_, ok := cache.Get(ctx, "123")
	assert.False(t, ok)

	first := Entry{Data: []byte(`{"bot":null}`), Timestamp: time.Unix(100, 0)}
	cache.Set(ctx, "123", first)

	got, ok := cache.Get(ctx, "123")
	assert.True(t, ok)
	assert.Equal(t, first, got)

	second := Entry{Data: []byte(`{"application":null}`), Timestamp: time.Unix(200, 0)}
	cache.Set(ctx, "123", second)

	got, ok = cache.Get(ctx, "123")
	assert.True(t, ok)
	assert.Equal(t, second, got)
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("bot-%d", i%5)
			cache.Set(ctx, key, Entry{Data: []byte(key), Timestamp: time.Now()})
			cache.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		key := fmt.Sprintf("bot-%d", i)
		entry, ok := cache.Get(ctx, key)
		assert.True(t, ok)
		assert.Equal(t, []byte(key), entry.Data)
	}
}
