package jwtx

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/aussiebroadwan/adminhub/pkg/cryptox"
)

// Supported JWT signing algorithms
const (
	AlgorithmES256 = "ES256"
	AlgorithmEdDSA = "EdDSA"
)

// KeyManager owns the signing keys of one process and the KeySet that both
// the verifier and the JWKS endpoint read from.
//
// Keys are ephemeral: they live in memory only, so every access token becomes
// invalid when the process restarts. Refresh tokens are opaque and stored, so
// clients recover by calling createNewAccessToken.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	algorithm string

	mu      sync.RWMutex
	signers []Signer
}

// KeyManagerOptions configures a KeyManager.
type KeyManagerOptions struct {
	// Algorithm is EdDSA or ES256.
	Algorithm string

	// Issuer is the iss claim verified on every token.
	Issuer string

	// NumKeys signing keys are generated, clamped to [1, 10]. Defaults to 3.
	NumKeys int
}

// NewEphemeralKeyManager generates opts.NumKeys signing keys and wires them
// into a KeySet and verifier.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}
	if opts.Algorithm != AlgorithmEdDSA && opts.Algorithm != AlgorithmES256 {
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q (supported: EdDSA, ES256)", opts.Algorithm)
	}

	numKeys := opts.NumKeys
	if numKeys <= 0 {
		numKeys = 3
	}
	numKeys = min(numKeys, 10)

	keyset := NewKeySet()
	signers := make([]Signer, 0, numKeys)

	for i := range numKeys {
		kid, err := generateRandomKeyID()
		if err != nil {
			return nil, err
		}

		signer, err := GenerateSigner(opts.Algorithm, kid)
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to generate signer %d: %w", i+1, err)
		}
		if err := keyset.AddSigner(signer); err != nil {
			return nil, fmt.Errorf("jwtx: failed to add signer %d to keyset: %w", i+1, err)
		}
		signers = append(signers, signer)
	}

	return &KeyManager{
		Verifier:  NewVerifier(keyset, opts.Issuer, opts.Algorithm),
		KeySet:    keyset,
		algorithm: opts.Algorithm,
		signers:   signers,
	}, nil
}

// Algorithm returns the signing algorithm being used.
func (km *KeyManager) Algorithm() string {
	return km.algorithm
}

// IsReady returns true if the KeyManager has valid keys loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}

// GetSigner returns a randomly selected signer.
func (km *KeyManager) GetSigner() Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()

	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	default:
		return km.signers[rand.IntN(len(km.signers))]
	}
}

// NumSigners returns the number of active signing keys.
func (km *KeyManager) NumSigners() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.signers)
}

// Sign signs claims with a randomly selected key.
func (km *KeyManager) Sign(claims Claims) (string, error) {
	s := km.GetSigner()
	if s == nil {
		return "", fmt.Errorf("jwtx: no signing keys")
	}
	return s.Sign(claims)
}

// generateRandomKeyID returns "adminhub-{128 bit token}".
func generateRandomKeyID() (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("jwtx: failed to generate key ID: %w", err)
	}
	return "adminhub-" + token, nil
}
