package casper

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cowlnet/deployer/types"
)

// File names written by the keygen command.
const (
	SecretKeyFile    = "secret_key.pem"
	PublicKeyFile    = "public_key.pem"
	PublicKeyHexFile = "public_key_hex"
)

// ReadKeyPair reads the key directory dir/name written by keygen.
func ReadKeyPair(dir, name string) (types.KeyPair, error) {
	keyDir := filepath.Join(dir, name)

	hexBytes, err := os.ReadFile(filepath.Join(keyDir, PublicKeyHexFile))
	if err != nil {
		return types.KeyPair{}, fmt.Errorf("failed to read public key of %s: %w", name, err)
	}
	publicKeyHex := strings.ToLower(strings.TrimSpace(string(hexBytes)))

	accountHash, err := types.AccountKeyFromPublicKey(publicKeyHex)
	if err != nil {
		return types.KeyPair{}, fmt.Errorf("key pair %s: %w", name, err)
	}

	return types.KeyPair{
		Name:          name,
		PublicKeyHex:  publicKeyHex,
		AccountHash:   accountHash,
		SecretKeyPath: filepath.Join(keyDir, SecretKeyFile),
		PublicKeyPath: filepath.Join(keyDir, PublicKeyFile),
	}, nil
}

// VerifyKeyPair checks that the key files of kp exist and that its account hash matches its
// public key.
func VerifyKeyPair(kp types.KeyPair) error {
	var errs []error

	for _, path := range []string{kp.SecretKeyPath, kp.PublicKeyPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", kp.Name, err))
		}
	}

	derived, err := types.AccountKeyFromPublicKey(kp.PublicKeyHex)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("%s: %w", kp.Name, err))
	case derived != kp.AccountHash:
		errs = append(errs, fmt.Errorf("%s: account hash %s does not match public key (want %s)", kp.Name, kp.AccountHash, derived))
	}

	return errors.Join(errs...)
}
