package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

const deployHashLength = 32

// ErrInvalidDeployHash is returned when a deploy hash is not 32 hex encoded bytes.
var ErrInvalidDeployHash = errors.New("invalid deploy hash")

// DeployHash is the identifier the network assigns to an accepted deploy. It is only meaningful as
// a lookup key for the deploy's execution status.
type DeployHash string

// ParseDeployHash validates a hex encoded deploy hash and returns it lower-cased.
func ParseDeployHash(s string) (DeployHash, error) {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "0x"))

	raw, err := hexutil.Decode("0x" + s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDeployHash, err)
	}
	if len(raw) != deployHashLength {
		return "", fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidDeployHash, deployHashLength, len(raw))
	}

	return DeployHash(s), nil
}

// IsZero reports whether no hash has been recorded.
func (h DeployHash) IsZero() bool {
	return h == ""
}

func (h DeployHash) String() string {
	return string(h)
}
