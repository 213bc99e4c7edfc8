package app

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// MinJWTSecretBytes is the shortest signing secret the server accepts.
const MinJWTSecretBytes = 32

// KeyByteLength returns the decoded byte length of a key string.
// It supports hex, base64, and raw string encodings.
func KeyByteLength(value string) (int, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, nil
	}

	// Generated secrets are hex.
	if len(v)%2 == 0 {
		if decoded, err := hex.DecodeString(v); err == nil {
			return len(decoded), nil
		}
	}

	if decoded, err := base64.StdEncoding.DecodeString(v); err == nil {
		return len(decoded), nil
	}
	if decoded, err := base64.RawStdEncoding.DecodeString(v); err == nil {
		return len(decoded), nil
	}

	return len(v), nil
}

// EnsureSecretsPresent verifies that the JWT signing secret is configured and
// long enough. Run it after ApplyRuntimeDefaults.
func EnsureSecretsPresent(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Auth.JWT.Secret = strings.TrimSpace(cfg.Auth.JWT.Secret)
	if cfg.Auth.JWT.Secret == "" {
		return errors.New("auth.jwt.secret must be configured")
	}

	length, err := KeyByteLength(cfg.Auth.JWT.Secret)
	if err != nil {
		return fmt.Errorf("auth.jwt.secret: %w", err)
	}
	if length < MinJWTSecretBytes {
		return fmt.Errorf("auth.jwt.secret must be at least %d bytes (current: %d)", MinJWTSecretBytes, length)
	}
	return nil
}
