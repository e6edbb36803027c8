package ratelimit

import (
	"testing"
	"time"

	"github.com/cuemby/baliusd/pkg/types"
	"github.com/stretchr/testify/assert"
)

func goldTier() types.Tier {
	return types.Tier{Name: "gold", Rates: []types.Rate{{Interval: time.Second, Limit: 5}}}
}

func TestExceededAllowsUpToLimitThenBlocks(t *testing.T) {
	l := New([]types.Tier{goldTier()})
	consumer := types.Consumer{Key: "abc123", Tier: "gold"}

	for i := 0; i < 5; i++ {
		assert.False(t, l.Exceeded(consumer), "request %d should be allowed", i+1)
	}
	assert.True(t, l.Exceeded(consumer), "6th request should be rate-limited")
}

func TestExceededResetsAfterWindowElapses(t *testing.T) {
	l := New([]types.Tier{{Name: "burst", Rates: []types.Rate{{Interval: 50 * time.Millisecond, Limit: 1}}}})
	consumer := types.Consumer{Key: "k1", Tier: "burst"}

	assert.False(t, l.Exceeded(consumer))
	assert.True(t, l.Exceeded(consumer))

	time.Sleep(60 * time.Millisecond)
	assert.False(t, l.Exceeded(consumer))
}

func TestExceededUnknownTierFailsClosed(t *testing.T) {
	l := New([]types.Tier{goldTier()})
	consumer := types.Consumer{Key: "k2", Tier: "unknown"}

	assert.True(t, l.Exceeded(consumer))
}

func TestExceededIsolatedPerConsumer(t *testing.T) {
	l := New([]types.Tier{goldTier()})

	for i := 0; i < 5; i++ {
		assert.False(t, l.Exceeded(types.Consumer{Key: "a", Tier: "gold"}))
	}
	assert.True(t, l.Exceeded(types.Consumer{Key: "a", Tier: "gold"}))
	assert.False(t, l.Exceeded(types.Consumer{Key: "b", Tier: "gold"}))
}
