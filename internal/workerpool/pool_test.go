package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, p *Pool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p.Drain(ctx)
}

func TestSubmitAndDrain(t *testing.T) {
	p := New(2, 10)
	var count atomic.Int32

	for i := 0; i < 5; i++ {
		require.True(t, p.Submit(func() { count.Add(1) }), "Submit %d failed", i)
	}

	drain(t, p)
	assert.Equal(t, int32(5), count.Load())
}

func TestSubmitAfterDrainReturnsFalse(t *testing.T) {
	p := New(1, 1)
	drain(t, p)

	assert.False(t, p.Submit(func() {}))
	assert.ErrorIs(t, p.Do(context.Background(), func() error { return nil }), ErrRejected)
}

func TestQueueFullReturnsFalse(t *testing.T) {
	p := New(1, 1)
	blocker := make(chan struct{})
	started := make(chan struct{})
	require.True(t, p.Submit(func() {
		close(started)
		<-blocker
	}))
	<-started

	require.True(t, p.Submit(func() {})) // fills the queue
	assert.False(t, p.Submit(func() {}))

	close(blocker)
	drain(t, p)
}

func TestDoReturnsTaskResult(t *testing.T) {
	p := New(1, 4)
	defer drain(t, p)

	want := errors.New("extract failed")
	assert.ErrorIs(t, p.Do(context.Background(), func() error { return want }), want)
	assert.NoError(t, p.Do(context.Background(), func() error { return nil }))
}

func TestDoRunsOffCallerGoroutine(t *testing.T) {
	p := New(1, 4)
	defer drain(t, p)

	var ran atomic.Bool
	err := p.Do(context.Background(), func() error {
		time.Sleep(10 * time.Millisecond)
		ran.Store(true)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran.Load(), "Do must join the task before returning")
}

func TestDoRecoversPanic(t *testing.T) {
	p := New(1, 4)
	defer drain(t, p)

	err := p.Do(context.Background(), func() error { panic("boom") })
	assert.ErrorContains(t, err, "boom")

	// the worker survives
	assert.NoError(t, p.Do(context.Background(), func() error { return nil }))
}

func TestDoHonoursContext(t *testing.T) {
	p := New(1, 4)
	release := make(chan struct{})
	defer func() {
		close(release)
		drain(t, p)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := p.Do(ctx, func() error {
		<-release
		return nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
