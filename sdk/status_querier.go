package sdk

import (
	"context"

	"github.com/cowlnet/deployer/types"
)

// StatusQuerier looks up the execution status of a deploy.
//
// Implementations report a deploy with no execution result yet as types.DeployPending. An error
// means the status could not be determined for this attempt; callers may retry.
type StatusQuerier interface {
	DeployStatus(ctx context.Context, hash types.DeployHash) (types.ExecutionStatus, error)
}
