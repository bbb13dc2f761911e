package crypto

import (
	"crypto/rsa"
	"errors"
	"fmt"

	base64_ "stockroom/internal/utils/base64"
	"stockroom/internal/utils/logger"

	"golang.org/x/crypto/ssh"
)

var log = logger.New("crypto")

var PrivateKey *rsa.PrivateKey
var PublicKey *rsa.PublicKey

// InitializeKeys parses the base64-encoded RSA private key from the
// environment. Access, refresh and activation tokens are all signed
// with this key pair.
func InitializeKeys(privateKeyEnv string) error {
	log.Info("Initializing signing keys")

	if privateKeyEnv == "" {
		return errors.New("private key not found")
	}

	decoded, err := base64_.DecodeFromBase64(privateKeyEnv)
	if err != nil {
		return fmt.Errorf("failed to decode private key: %w", err)
	}

	key, err := ssh.ParseRawPrivateKey([]byte(decoded))
	if err != nil {
		return fmt.Errorf("failed to parse private key: %w", err)
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return errors.New("private key is not an RSA key")
	}

	PrivateKey = rsaKey
	PublicKey = &rsaKey.PublicKey
	return nil
}

// SetKeys installs an already-parsed key pair. Used by tests that
// generate a throwaway key instead of reading one from the environment.
func SetKeys(key *rsa.PrivateKey) {
	PrivateKey = key
	PublicKey = &key.PublicKey
}
