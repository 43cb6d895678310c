package sdk

import (
	"context"

	"github.com/cowlnet/deployer/types"
)

// KeyGenerator creates a new key pair in dir, named name. Existing key files are only replaced
// when overwrite is set.
type KeyGenerator interface {
	GenerateKeyPair(ctx context.Context, dir, name string, overwrite bool) (types.KeyPair, error)
}
