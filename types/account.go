package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/crypto/blake2b"
)

const (
	// AccountHashPrefix is the prefix of a formatted account hash key.
	AccountHashPrefix = "account-hash-"

	accountHashLength = 32

	ed25519Tag   = 0x01
	secp256k1Tag = 0x02

	ed25519KeyLength   = 32
	secp256k1KeyLength = 33
)

var (
	// ErrInvalidAccountKey is returned when an account key is not a formatted account hash.
	ErrInvalidAccountKey = errors.New("invalid account key")

	// ErrInvalidPublicKey is returned when a public key hex cannot be decoded.
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// AccountKey is a formatted account hash key, e.g. "account-hash-<64 hex chars>".
type AccountKey string

// ParseAccountKey validates and normalises a formatted account hash key.
func ParseAccountKey(s string) (AccountKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, AccountHashPrefix) {
		return "", fmt.Errorf("%w: missing %q prefix in %q", ErrInvalidAccountKey, AccountHashPrefix, s)
	}

	raw, err := hexutil.Decode("0x" + strings.TrimPrefix(s, AccountHashPrefix))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAccountKey, err)
	}
	if len(raw) != accountHashLength {
		return "", fmt.Errorf("%w: account hash must be %d bytes, got %d", ErrInvalidAccountKey, accountHashLength, len(raw))
	}

	return AccountKey(s), nil
}

// Bytes returns the raw 32 byte account hash.
func (k AccountKey) Bytes() ([]byte, error) {
	if _, err := ParseAccountKey(string(k)); err != nil {
		return nil, err
	}

	return hexutil.Decode("0x" + strings.TrimPrefix(string(k), AccountHashPrefix))
}

func (k AccountKey) String() string {
	return string(k)
}

// AccountKeyFromPublicKey derives the account hash of a hex encoded public key, as printed in the
// public_key_hex file written by the node client.
//
// The account hash is blake2b-256(lowercase algorithm name || 0x00 || raw key bytes).
func AccountKeyFromPublicKey(publicKeyHex string) (AccountKey, error) {
	raw, err := hexutil.Decode("0x" + strings.TrimPrefix(strings.TrimSpace(publicKeyHex), "0x"))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: empty key", ErrInvalidPublicKey)
	}

	var algorithm string
	switch raw[0] {
	case ed25519Tag:
		algorithm = "ed25519"
		if len(raw)-1 != ed25519KeyLength {
			return "", fmt.Errorf("%w: ed25519 key must be %d bytes", ErrInvalidPublicKey, ed25519KeyLength)
		}
	case secp256k1Tag:
		algorithm = "secp256k1"
		if len(raw)-1 != secp256k1KeyLength {
			return "", fmt.Errorf("%w: secp256k1 key must be %d bytes", ErrInvalidPublicKey, secp256k1KeyLength)
		}
	default:
		return "", fmt.Errorf("%w: unknown algorithm tag 0x%02x", ErrInvalidPublicKey, raw[0])
	}

	preimage := make([]byte, 0, len(algorithm)+len(raw))
	preimage = append(preimage, algorithm...)
	preimage = append(preimage, 0x00)
	preimage = append(preimage, raw[1:]...)
	sum := blake2b.Sum256(preimage)

	return AccountKey(AccountHashPrefix + hexutil.Encode(sum[:])[2:]), nil
}

// KeyPair describes a key directory produced by the node client keygen command.
type KeyPair struct {
	Name          string     `json:"name" validate:"required"`
	PublicKeyHex  string     `json:"public_key" validate:"required,hexadecimal"`
	AccountHash   AccountKey `json:"account_hash" validate:"required"`
	SecretKeyPath string     `json:"secret_key_path" validate:"required"`
	PublicKeyPath string     `json:"public_key_path"`
}

// UnmarshalJSON fills in the account hash from the public key when the document omits it.
func (p *KeyPair) UnmarshalJSON(data []byte) error {
	type Alias KeyPair
	if err := json.Unmarshal(data, (*Alias)(p)); err != nil {
		return err
	}

	if p.AccountHash == "" && p.PublicKeyHex != "" {
		key, err := AccountKeyFromPublicKey(p.PublicKeyHex)
		if err != nil {
			return err
		}
		p.AccountHash = key
	}

	return nil
}
