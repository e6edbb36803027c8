package signer

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	vault "github.com/hashicorp/vault/api"

	baliuserrors "github.com/cuemby/baliusd/pkg/errors"
	"github.com/cuemby/baliusd/pkg/log"
)

// Signer creates and uses ed25519 signing keys on behalf of workers.
type Signer interface {
	// AddKey creates a new ed25519 key for worker+keyName if algorithm is
	// "ed25519" and returns its public key bytes.
	AddKey(ctx context.Context, workerID, keyName, algorithm string) ([]byte, error)

	// SignPayload signs payload with worker+keyName's private key.
	SignPayload(ctx context.Context, workerID, keyName string, payload []byte) ([]byte, error)
}

// VaultSigner is the production Signer, backed by Vault's transit engine.
type VaultSigner struct {
	client *vault.Client
}

// NewVaultSigner builds a VaultSigner against a Vault server at address,
// authenticating with token.
func NewVaultSigner(address, token string) (*VaultSigner, error) {
	cfg := vault.DefaultConfig()
	cfg.Address = address
	client, err := vault.NewClient(cfg)
	if err != nil {
		return nil, baliuserrors.SignerInternal(err, "creating vault client")
	}
	client.SetToken(token)
	return &VaultSigner{client: client}, nil
}

// keyForWorker namespaces a worker's key name so distinct workers never
// collide in Vault's transit key space.
func keyForWorker(workerID, keyName string) string {
	return fmt.Sprintf("%s-%s", workerID, keyName)
}

func (s *VaultSigner) AddKey(ctx context.Context, workerID, keyName, algorithm string) ([]byte, error) {
	if algorithm != "ed25519" {
		return nil, baliuserrors.SignerInternal(nil, "unsupported algorithm %q: only ed25519 is supported", algorithm)
	}

	vaultKey := keyForWorker(workerID, keyName)
	path := fmt.Sprintf("transit/keys/%s", vaultKey)
	if _, err := s.client.Logical().WriteWithContext(ctx, path, map[string]any{
		"type": "ed25519",
	}); err != nil {
		return nil, baliuserrors.SignerInternal(err, "creating signing key %s", vaultKey)
	}

	exportPath := fmt.Sprintf("transit/export/public-key/%s/latest", vaultKey)
	secret, err := s.client.Logical().ReadWithContext(ctx, exportPath)
	if err != nil {
		return nil, baliuserrors.SignerInternal(err, "exporting public key %s", vaultKey)
	}
	if secret == nil {
		return nil, baliuserrors.SignerInternal(nil, "vault returned no data exporting public key %s", vaultKey)
	}

	keys, ok := secret.Data["keys"].(map[string]any)
	if !ok {
		return nil, baliuserrors.SignerInternal(nil, "unexpected export response shape for %s", vaultKey)
	}
	encoded, ok := keys["1"].(string)
	if !ok {
		return nil, baliuserrors.SignerInternal(nil, "public key version 1 missing for %s", vaultKey)
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, baliuserrors.SignerInternal(err, "decoding public key %s", vaultKey)
	}
	return decoded, nil
}

func (s *VaultSigner) SignPayload(ctx context.Context, workerID, keyName string, payload []byte) ([]byte, error) {
	vaultKey := keyForWorker(workerID, keyName)
	path := fmt.Sprintf("transit/sign/%s", vaultKey)
	secret, err := s.client.Logical().WriteWithContext(ctx, path, map[string]any{
		"input": base64.StdEncoding.EncodeToString(payload),
	})
	if err != nil {
		if isNotFoundErr(err) {
			return nil, baliuserrors.SignerNotFound(err, "signing key %s not found", vaultKey)
		}
		return nil, baliuserrors.SignerInternal(err, "signing payload with %s", vaultKey)
	}
	if secret == nil {
		return nil, baliuserrors.SignerInternal(nil, "vault returned no data signing with %s", vaultKey)
	}

	raw, ok := secret.Data["signature"].(string)
	if !ok {
		return nil, baliuserrors.SignerInternal(nil, "unexpected sign response shape for %s", vaultKey)
	}

	// Vault prefixes transit signatures with "vault:v<n>:"; strip it before
	// base64-decoding the raw signature bytes.
	trimmed := raw
	if idx := strings.LastIndex(raw, ":"); idx >= 0 {
		trimmed = raw[idx+1:]
	}

	decoded, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, baliuserrors.SignerInternal(err, "decoding signature for %s", vaultKey)
	}
	return decoded, nil
}

func isNotFoundErr(err error) bool {
	return strings.Contains(err.Error(), "not found")
}

// RunTokenRenewer renews the Vault token every renewInterval until ctx is
// cancelled, using increment as the renewal lease extension (e.g. "1h").
func RunTokenRenewer(ctx context.Context, client *vault.Client, renewInterval time.Duration, increment string) {
	renewLog := log.WithComponent("signer")
	ticker := time.NewTicker(renewInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			secret, err := client.Auth().Token().RenewSelfWithContext(ctx, durationSeconds(increment))
			if err != nil {
				renewLog.Warn().Err(err).Msg("renewing vault token")
				continue
			}
			renewLog.Debug().Interface("secret", secret).Msg("vault token renewed")
		case <-ctx.Done():
			renewLog.Warn().Msg("token renewer received cancellation")
			return
		}
	}
}

// durationSeconds converts a Go duration string like "1h" to the integer
// seconds the Vault API's RenewSelf increment expects.
func durationSeconds(increment string) int {
	d, err := time.ParseDuration(increment)
	if err != nil {
		d = time.Hour
	}
	return int(d.Seconds())
}
