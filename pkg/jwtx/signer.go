package jwtx

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
	PublicJWK() JWK
}

// keySigner signs with an in-memory Ed25519 or P-256 key.
type keySigner struct {
	kid    string
	method jwt.SigningMethod
	key    crypto.Signer
	jwk    JWK
}

// GenerateSigner creates a signer with a fresh keypair for alg (EdDSA or ES256).
func GenerateSigner(alg, kid string) (Signer, error) {
	if kid == "" {
		return nil, errors.New("jwtx: kid is required")
	}

	switch alg {
	case AlgorithmEdDSA:
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("jwtx: generate ed25519 key: %w", err)
		}
		return &keySigner{
			kid:    kid,
			method: jwt.SigningMethodEdDSA,
			key:    priv,
			jwk:    NewEd25519JWK(kid, "sig", alg, pub),
		}, nil

	case AlgorithmES256:
		priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("jwtx: generate p-256 key: %w", err)
		}
		return &keySigner{
			kid:    kid,
			method: jwt.SigningMethodES256,
			key:    priv,
			jwk:    NewES256JWK(kid, "sig", alg, &priv.PublicKey),
		}, nil

	default:
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q (supported: EdDSA, ES256)", alg)
	}
}

func (s *keySigner) Alg() string    { return s.method.Alg() }
func (s *keySigner) KID() string    { return s.kid }
func (s *keySigner) PublicJWK() JWK { return s.jwk }

// Sign turns claims into a compact JWS with the kid header set.
func (s *keySigner) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(s.method, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}
