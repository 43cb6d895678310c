package types //nolint:revive,nolintlint // allow pkg name 'types'

// ExecutionStatus is what a single status query learned about a deploy.
type ExecutionStatus struct {
	Outcome DeployOutcome `json:"outcome"`
	// BlockHash is the block the deploy was executed in, once known.
	BlockHash string `json:"block_hash,omitempty"`
	// ErrorMessage is set by the node for failed executions.
	ErrorMessage string `json:"error_message,omitempty"`
	// Cost is the gas cost in motes reported with the execution result.
	Cost string `json:"cost,omitempty"`
}
