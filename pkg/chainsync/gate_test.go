package chainsync

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeChecker struct {
	leader atomic.Bool
}

func (f *fakeChecker) IsLeader() bool { return f.leader.Load() }

func TestGateWaitsWhileNotLeader(t *testing.T) {
	checker := &fakeChecker{}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	var ran atomic.Bool
	err := Gate(ctx, checker, 5*time.Millisecond, func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})
	assert.NoError(t, err)
	assert.False(t, ran.Load())
}

func TestGateRunsFollowerOnceLeader(t *testing.T) {
	checker := &fakeChecker{}
	checker.leader.Store(true)
	ctx := context.Background()

	var ran atomic.Bool
	err := Gate(ctx, checker, time.Millisecond, func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, ran.Load())
}

func TestGateReturnsFollowerError(t *testing.T) {
	checker := &fakeChecker{}
	checker.leader.Store(true)
	ctx := context.Background()

	boom := errors.New("boom")
	err := Gate(ctx, checker, time.Millisecond, func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestGateStopsOnCancellation(t *testing.T) {
	checker := &fakeChecker{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Gate(ctx, checker, time.Millisecond, func(ctx context.Context) error {
		t.Fatal("follower should not run after cancellation")
		return nil
	})
	assert.NoError(t, err)
}
