package casper

import (
	"bytes"
	"fmt"

	"github.com/tidwall/gjson"

	sdkerrors "github.com/cowlnet/deployer/sdk/errors"
	"github.com/cowlnet/deployer/types"
)

// ParseDeployStatus reads the execution status out of a get-deploy / info_get_deploy response.
//
// Both the full JSON-RPC envelope and its bare "result" object are accepted. Nodes running 1.x
// report "execution_results" (a list of per-block results holding a Success or Failure object),
// 2.x nodes report "execution_info.execution_result". A deploy without any execution result is
// Pending. Anything that cannot be read is reported as Pending with an error wrapping
// sdkerrors.ErrMalformedResponse; it is never treated as a success.
func ParseDeployStatus(raw []byte) (types.ExecutionStatus, error) {
	pending := types.ExecutionStatus{Outcome: types.DeployPending}

	raw = bytes.TrimSpace(raw)
	if start := bytes.IndexByte(raw, '{'); start > 0 {
		raw = raw[start:]
	}
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return pending, fmt.Errorf("%w: response is not valid JSON", sdkerrors.ErrMalformedResponse)
	}

	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return pending, fmt.Errorf("%w: response is not a JSON object", sdkerrors.ErrMalformedResponse)
	}
	if rpcErr := doc.Get("error"); rpcErr.Exists() {
		return pending, &sdkerrors.RPCError{
			Method:  "info_get_deploy",
			Code:    int(rpcErr.Get("code").Int()),
			Message: rpcErr.Get("message").String(),
		}
	}
	if result := doc.Get("result"); result.IsObject() {
		doc = result
	}

	if results := doc.Get("execution_results"); results.Exists() {
		return parseExecutionResultsV1(results)
	}
	if info := doc.Get("execution_info"); info.Exists() {
		return parseExecutionInfoV2(info)
	}
	if doc.Get("deploy").Exists() {
		// Known deploy, not executed yet.
		return pending, nil
	}

	return pending, fmt.Errorf("%w: no deploy or execution result in response", sdkerrors.ErrMalformedResponse)
}

func parseExecutionResultsV1(results gjson.Result) (types.ExecutionStatus, error) {
	pending := types.ExecutionStatus{Outcome: types.DeployPending}

	if !results.IsArray() {
		return pending, fmt.Errorf("%w: execution_results is not a list", sdkerrors.ErrMalformedResponse)
	}
	list := results.Array()
	if len(list) == 0 {
		return pending, nil
	}

	// A deploy is executed in a single block; the first entry is authoritative.
	entry := list[0]
	blockHash := entry.Get("block_hash").String()
	if success := entry.Get("result.Success"); success.Exists() {
		return types.ExecutionStatus{
			Outcome:   types.DeploySucceeded,
			BlockHash: blockHash,
			Cost:      success.Get("cost").String(),
		}, nil
	}
	if failure := entry.Get("result.Failure"); failure.Exists() {
		return types.ExecutionStatus{
			Outcome:      types.DeployFailed,
			BlockHash:    blockHash,
			ErrorMessage: failure.Get("error_message").String(),
			Cost:         failure.Get("cost").String(),
		}, nil
	}

	return pending, fmt.Errorf("%w: execution result has neither Success nor Failure", sdkerrors.ErrMalformedResponse)
}

func parseExecutionInfoV2(info gjson.Result) (types.ExecutionStatus, error) {
	pending := types.ExecutionStatus{Outcome: types.DeployPending}

	if info.Type == gjson.Null {
		return pending, nil
	}

	result := info.Get("execution_result")
	if !result.Exists() || result.Type == gjson.Null {
		return pending, nil
	}
	blockHash := info.Get("block_hash").String()

	if v2 := result.Get("Version2"); v2.IsObject() {
		status := types.ExecutionStatus{
			Outcome:   types.DeploySucceeded,
			BlockHash: blockHash,
			Cost:      v2.Get("cost").String(),
		}
		if msg := v2.Get("error_message"); msg.Exists() && msg.Type != gjson.Null {
			status.Outcome = types.DeployFailed
			status.ErrorMessage = msg.String()
		}

		return status, nil
	}

	if v1 := result.Get("Version1"); v1.IsObject() {
		if success := v1.Get("Success"); success.Exists() {
			return types.ExecutionStatus{Outcome: types.DeploySucceeded, BlockHash: blockHash, Cost: success.Get("cost").String()}, nil
		}
		if failure := v1.Get("Failure"); failure.Exists() {
			return types.ExecutionStatus{
				Outcome:      types.DeployFailed,
				BlockHash:    blockHash,
				ErrorMessage: failure.Get("error_message").String(),
				Cost:         failure.Get("cost").String(),
			}, nil
		}
	}

	return pending, fmt.Errorf("%w: unrecognised execution_result format", sdkerrors.ErrMalformedResponse)
}
