package signer

import (
	"context"
	"sync"

	baliuserrors "github.com/cuemby/baliusd/pkg/errors"
)

// FakeSigner is an in-memory Signer for tests: AddKey stores a fixed
// "public key" derived from the key name, and SignPayload returns the
// payload reversed so tests can assert something was actually signed.
type FakeSigner struct {
	mu   sync.Mutex
	keys map[string]bool
}

// NewFakeSigner returns an empty FakeSigner.
func NewFakeSigner() *FakeSigner {
	return &FakeSigner{keys: make(map[string]bool)}
}

func (f *FakeSigner) AddKey(ctx context.Context, workerID, keyName, algorithm string) ([]byte, error) {
	if algorithm != "ed25519" {
		return nil, baliuserrors.SignerInternal(nil, "unsupported algorithm %q: only ed25519 is supported", algorithm)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys[keyForWorker(workerID, keyName)] = true
	return []byte("pub:" + keyForWorker(workerID, keyName)), nil
}

func (f *FakeSigner) SignPayload(ctx context.Context, workerID, keyName string, payload []byte) ([]byte, error) {
	vaultKey := keyForWorker(workerID, keyName)
	f.mu.Lock()
	exists := f.keys[vaultKey]
	f.mu.Unlock()
	if !exists {
		return nil, baliuserrors.SignerNotFound(nil, "signing key %s not found", vaultKey)
	}

	sig := make([]byte, len(payload))
	for i, b := range payload {
		sig[len(payload)-1-i] = b
	}
	return sig, nil
}
