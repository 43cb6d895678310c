package casper

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cowlnet/deployer/sdk"
	"github.com/cowlnet/deployer/types"
)

// DefaultBinary is the node client executable looked up on PATH.
const DefaultBinary = "casper-client"

var (
	_ sdk.StatusQuerier = (*Client)(nil)
	_ sdk.KeyGenerator  = (*Client)(nil)
)

// Client drives the casper-client command line tool through a sdk.Runner.
type Client struct {
	runner      sdk.Runner
	binary      string
	nodeAddress string
}

type ClientOption func(*Client)

// WithBinary overrides the client executable.
func WithBinary(binary string) ClientOption {
	return func(c *Client) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// NewClient returns a client talking to the node at nodeAddress.
func NewClient(runner sdk.Runner, nodeAddress string, opts ...ClientOption) *Client {
	c := &Client{
		runner:      runner,
		binary:      DefaultBinary,
		nodeAddress: nodeAddress,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// DeployStatus implements sdk.StatusQuerier using "get-deploy".
func (c *Client) DeployStatus(ctx context.Context, hash types.DeployHash) (types.ExecutionStatus, error) {
	res, err := c.runner.Run(ctx, c.binary, "get-deploy", "--node-address", c.nodeAddress, hash.String())
	if err != nil {
		return types.ExecutionStatus{Outcome: types.DeployPending}, fmt.Errorf("get-deploy %s: %w", hash, err)
	}

	return ParseDeployStatus(res.Stdout)
}

// GenerateKeyPair implements sdk.KeyGenerator using "keygen". The keys are written to dir/name;
// keygen refuses to replace existing files unless overwrite passes --force.
func (c *Client) GenerateKeyPair(ctx context.Context, dir, name string, overwrite bool) (types.KeyPair, error) {
	keyDir := filepath.Join(dir, name)
	args := []string{"keygen"}
	if overwrite {
		args = append(args, "--force")
	}
	if _, err := c.runner.Run(ctx, c.binary, append(args, keyDir)...); err != nil {
		return types.KeyPair{}, fmt.Errorf("keygen %s: %w", name, err)
	}

	return ReadKeyPair(dir, name)
}
