package types //nolint:revive,nolintlint // allow pkg name 'types'

// Target identifies the network a deploy is sent to.
type Target struct {
	NodeAddress string `json:"node_address" validate:"required,url"`
	ChainName   string `json:"chain_name" validate:"required"`
}
