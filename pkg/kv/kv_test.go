package kv

import (
	"context"
	"testing"

	baliuserrors "github.com/cuemby/baliusd/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreGetMissingReturnsKvNotFound(t *testing.T) {
	s := NewMemStore()
	_, err := s.Get(context.Background(), "nft-marketplace", "missing")
	require.Error(t, err)
	assert.True(t, baliuserrors.Is(err, baliuserrors.KindKvNotFound))
}

func TestMemStoreSetThenGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	require.NoError(t, s.Set(ctx, "nft-marketplace", "color", []byte("blue")))
	got, err := s.Get(ctx, "nft-marketplace", "color")
	require.NoError(t, err)
	assert.Equal(t, []byte("blue"), got)
}

func TestMemStoreIsolatedPerWorker(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	require.NoError(t, s.Set(ctx, "worker-a", "k", []byte("a")))
	_, err := s.Get(ctx, "worker-b", "k")
	require.Error(t, err)
}

func TestMemStoreListByPrefix(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	require.NoError(t, s.Set(ctx, "w", "alpha:1", []byte("1")))
	require.NoError(t, s.Set(ctx, "w", "alpha:2", []byte("2")))
	require.NoError(t, s.Set(ctx, "w", "beta:1", []byte("3")))

	keys, err := s.List(ctx, "w", "alpha:")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha:1", "alpha:2"}, keys)
}
