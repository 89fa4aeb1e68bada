package shutdown_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devotrack/pkg/shutdown"
)

func TestWaitRunsHooksWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}

	err := shutdown.Wait(ctx, time.Second, hook, hook)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestWaitJoinsHookErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errFirst := errors.New("first")
	errSecond := errors.New("second")

	err := shutdown.Wait(ctx, time.Second,
		func(context.Context) error { return errFirst },
		func(context.Context) error { return errSecond },
		func(context.Context) error { return nil },
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errFirst)
	assert.ErrorIs(t, err, errSecond)
}

func TestWaitRespectsTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	release := make(chan struct{})
	defer close(release)

	start := time.Now()
	err := shutdown.Wait(ctx, 50*time.Millisecond, func(context.Context) error {
		<-release
		return nil
	})

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitHookSeesLiveContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := shutdown.Wait(ctx, time.Second, func(hookCtx context.Context) error {
		return hookCtx.Err()
	})
	assert.NoError(t, err)
}
