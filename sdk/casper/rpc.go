package casper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/holiman/uint256"
	"github.com/tidwall/gjson"

	"github.com/cowlnet/deployer/sdk"
	sdkerrors "github.com/cowlnet/deployer/sdk/errors"
	"github.com/cowlnet/deployer/types"
)

const (
	rpcPath = "/rpc"

	methodGetDeploy          = "info_get_deploy"
	methodGetStateRootHash   = "chain_get_state_root_hash"
	methodGetDictionaryItem  = "state_get_dictionary_item"
	errCodeQueryFailed       = -32003
	errCodeNoSuchDeploy      = -32002
	errCodeQueryFailedLegacy = -32005
)

var (
	_ sdk.StatusQuerier = (*RPCClient)(nil)
	_ sdk.BalanceReader = (*RPCClient)(nil)
)

// RPCClient talks to a node's JSON-RPC endpoint. Parameters are sent by position.
type RPCClient struct {
	client *rpc.Client
}

// DialRPC connects to the node at nodeAddress. The "/rpc" path is appended when missing.
func DialRPC(ctx context.Context, nodeAddress string) (*RPCClient, error) {
	endpoint := strings.TrimRight(nodeAddress, "/")
	if !strings.HasSuffix(endpoint, rpcPath) {
		endpoint += rpcPath
	}

	client, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to dial node rpc %s: %w", endpoint, err)
	}

	return &RPCClient{client: client}, nil
}

// Close releases the underlying connection.
func (c *RPCClient) Close() {
	c.client.Close()
}

// DeployStatus implements sdk.StatusQuerier using info_get_deploy. A deploy unknown to the node
// is still pending: it may not have been gossiped to this node yet.
func (c *RPCClient) DeployStatus(ctx context.Context, hash types.DeployHash) (types.ExecutionStatus, error) {
	var raw json.RawMessage
	if err := c.client.CallContext(ctx, &raw, methodGetDeploy, hash.String()); err != nil {
		pending := types.ExecutionStatus{Outcome: types.DeployPending}
		if rpcErrorCode(err) == errCodeNoSuchDeploy {
			return pending, nil
		}

		return pending, wrapRPCError(methodGetDeploy, err)
	}

	return ParseDeployStatus(raw)
}

// StateRootHash returns the latest state root hash.
func (c *RPCClient) StateRootHash(ctx context.Context) (string, error) {
	var res struct {
		StateRootHash string `json:"state_root_hash"`
	}
	if err := c.client.CallContext(ctx, &res, methodGetStateRootHash); err != nil {
		return "", wrapRPCError(methodGetStateRootHash, err)
	}
	if res.StateRootHash == "" {
		return "", fmt.Errorf("%w: empty state root hash", sdkerrors.ErrMalformedResponse)
	}

	return res.StateRootHash, nil
}

type contractNamedKey struct {
	Key               string `json:"key"`
	DictionaryName    string `json:"dictionary_name"`
	DictionaryItemKey string `json:"dictionary_item_key"`
}

type dictionaryIdentifier struct {
	ContractNamedKey contractNamedKey `json:"ContractNamedKey"`
}

// Balance implements sdk.BalanceReader. contractHash is the formatted "hash-..." key of the token
// contract. An account without a dictionary entry yields sdk.ErrBalanceNotFound.
func (c *RPCClient) Balance(ctx context.Context, contractHash string, account types.AccountKey) (*uint256.Int, error) {
	itemKey, err := BalanceItemKey(account)
	if err != nil {
		return nil, err
	}

	stateRoot, err := c.StateRootHash(ctx)
	if err != nil {
		return nil, err
	}

	id := dictionaryIdentifier{ContractNamedKey: contractNamedKey{
		Key:               contractHash,
		DictionaryName:    BalancesDictionary,
		DictionaryItemKey: itemKey,
	}}

	var raw json.RawMessage
	if err := c.client.CallContext(ctx, &raw, methodGetDictionaryItem, stateRoot, id); err != nil {
		if code := rpcErrorCode(err); code == errCodeQueryFailed || code == errCodeQueryFailedLegacy {
			return nil, fmt.Errorf("%w: %s", sdk.ErrBalanceNotFound, account)
		}

		return nil, wrapRPCError(methodGetDictionaryItem, err)
	}

	return parseBalance(raw)
}

func parseBalance(raw json.RawMessage) (*uint256.Int, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: dictionary item is not valid JSON", sdkerrors.ErrMalformedResponse)
	}

	parsed := gjson.GetBytes(raw, "stored_value.CLValue.parsed")
	if !parsed.Exists() || parsed.Type == gjson.Null {
		return nil, fmt.Errorf("%w: dictionary item has no parsed CLValue", sdkerrors.ErrMalformedResponse)
	}

	// U256 values are rendered as decimal strings, small values may come back as numbers.
	balance, err := types.ParseU256(parsed.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sdkerrors.ErrMalformedResponse, err)
	}

	return balance, nil
}

func rpcErrorCode(err error) int {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.ErrorCode()
	}

	return 0
}

func wrapRPCError(method string, err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return &sdkerrors.RPCError{Method: method, Code: rpcErr.ErrorCode(), Message: rpcErr.Error()}
	}

	return fmt.Errorf("%s: %w", method, err)
}
