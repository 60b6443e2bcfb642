package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/adminhub/pkg/jwtx"
)

// InitAuthKeys generates the signing keys for this process.
//
// Keys are ephemeral: they live in memory only, so every access token issued
// before a restart fails verification afterwards. Clients recover with
// createNewAccessToken, since refresh tokens are stored.
//
// Supported algorithms: EdDSA, ES256. JWT_NUM_KEYS controls how many keys
// are generated (default 3).
func InitAuthKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	logger.Info("initializing ephemeral key manager",
		"algorithm", cfg.Algorithm,
		"num_keys", cfg.NumKeys,
	)

	keyManager, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Algorithm: cfg.Algorithm,
		Issuer:    cfg.Issuer,
		NumKeys:   cfg.NumKeys,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ephemeral key manager: %w", err)
	}

	logger.Info("generated ephemeral signing keys",
		"algorithm", keyManager.Algorithm(),
		"num_keys", keyManager.NumSigners(),
		"issuer", cfg.Issuer,
	)
	logger.Warn("access tokens issued before this start are now invalid")

	return keyManager, nil
}
