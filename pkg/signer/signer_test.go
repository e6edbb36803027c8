package signer

import (
	"context"
	"testing"

	baliuserrors "github.com/cuemby/baliusd/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeSignerRejectsNonEd25519(t *testing.T) {
	s := NewFakeSigner()
	_, err := s.AddKey(context.Background(), "worker-a", "main", "rsa")
	require.Error(t, err)
	assert.True(t, baliuserrors.Is(err, baliuserrors.KindSignerInternal))
}

func TestFakeSignerAddThenSign(t *testing.T) {
	ctx := context.Background()
	s := NewFakeSigner()

	_, err := s.AddKey(ctx, "worker-a", "main", "ed25519")
	require.NoError(t, err)

	sig, err := s.SignPayload(ctx, "worker-a", "main", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, []byte("olleh"), sig)
}

func TestFakeSignerSignWithoutKeyReturnsNotFound(t *testing.T) {
	s := NewFakeSigner()
	_, err := s.SignPayload(context.Background(), "worker-a", "missing", []byte("x"))
	require.Error(t, err)
	assert.True(t, baliuserrors.Is(err, baliuserrors.KindSignerNotFound))
}

func TestKeyForWorkerNamespacesPerWorker(t *testing.T) {
	assert.Equal(t, "worker-a-main", keyForWorker("worker-a", "main"))
	assert.NotEqual(t, keyForWorker("worker-a", "k"), keyForWorker("worker-b", "k"))
}
