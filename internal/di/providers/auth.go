package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/devflowhq/devflow-server/internal/auth"
	"github.com/devflowhq/devflow-server/internal/config"
	"github.com/devflowhq/devflow-server/internal/logger"
)

// AuthKey is the hex-encoded PASETO signing key.
type AuthKey string

// ProvideAuthKey provides the token signing key. The key from config
// wins; otherwise one is loaded or generated next to the database.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Auth.AccessTokenKey != "" {
		return AuthKey(cfg.Auth.AccessTokenKey), nil
	}

	key, err := auth.LoadOrGenerateKey(filepath.Dir(cfg.Database.Path))
	if err != nil {
		return "", err
	}
	cfg.Auth.AccessTokenKey = key

	log.Info("Authentication key loaded",
		"access_token_duration", cfg.Auth.AccessTokenDuration,
	)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	key := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService(string(key), cfg.Auth.AccessTokenDuration)
}
