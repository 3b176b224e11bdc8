package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseCache_ExpiresAfterTTL(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	c := newResponseCache(time.Hour)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	var fills int
	fill := func(context.Context) ([]byte, error) {
		fills++
		return []byte("body"), nil
	}

	for range 3 {
		body, err := c.fetch(ctx, "/products", fill)
		require.NoError(t, err)
		assert.Equal(t, "body", string(body))
	}
	assert.Equal(t, 1, fills)

	now = now.Add(time.Hour + time.Second)
	_, err := c.fetch(ctx, "/products", fill)
	require.NoError(t, err)
	assert.Equal(t, 2, fills)

	c.clear()
	_, err = c.fetch(ctx, "/products", fill)
	require.NoError(t, err)
	assert.Equal(t, 3, fills)
}

func TestResponseCache_ErrorsAreNotCached(t *testing.T) {
	c := newResponseCache(0)
	ctx := context.Background()
	assert.Equal(t, DefaultCacheTTL, c.ttl)

	_, err := c.fetch(ctx, "/products", func(context.Context) ([]byte, error) { return nil, errors.New("boom") })
	require.Error(t, err)

	body, err := c.fetch(ctx, "/products", func(context.Context) ([]byte, error) { return []byte("ok"), nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}

func TestResponseCache_ConcurrentMissesShareOneFill(t *testing.T) {
	c := newResponseCache(time.Hour)
	ctx := context.Background()

	var fills atomic.Int32
	release := make(chan struct{})
	fill := func(context.Context) ([]byte, error) {
		fills.Add(1)
		<-release
		return []byte("body"), nil
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body, err := c.fetch(ctx, "/products", fill)
			assert.NoError(t, err)
			assert.Equal(t, "body", string(body))
		}()
	}

	require.Eventually(t, func() bool { return fills.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), fills.Load())
}

func TestResponseCache_CanceledCallerDoesNotFailOthers(t *testing.T) {
	c := newResponseCache(time.Hour)

	started := make(chan struct{})
	release := make(chan struct{})
	var fillErr atomic.Value
	fill := func(ctx context.Context) ([]byte, error) {
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			fillErr.Store(err)
			return nil, err
		}
		return []byte("body"), nil
	}

	first, cancel := context.WithCancel(context.Background())
	firstDone := make(chan error, 1)
	go func() {
		_, err := c.fetch(first, "/products", fill)
		firstDone <- err
	}()
	<-started

	secondDone := make(chan []byte, 1)
	go func() {
		body, err := c.fetch(context.Background(), "/products", fill)
		assert.NoError(t, err)
		secondDone <- body
	}()

	cancel()
	assert.ErrorIs(t, <-firstDone, context.Canceled)

	close(release)
	assert.Equal(t, "body", string(<-secondDone))
	assert.Nil(t, fillErr.Load(), "the shared fill outlives the canceled caller")

	body, ok := c.get("/products")
	require.True(t, ok)
	assert.Equal(t, "body", string(body))
}
