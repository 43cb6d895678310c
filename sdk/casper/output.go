package casper

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	sdkerrors "github.com/cowlnet/deployer/sdk/errors"
	"github.com/cowlnet/deployer/types"
)

// DeployHashMarker prefixes the deploy hash in the client's plain text output.
const DeployHashMarker = "Deploy hash:"

// deployHashPaths are the JSON locations of the hash in put-deploy / transfer responses, for the
// 1.x and 2.x client output formats.
var deployHashPaths = []string{
	"result.deploy_hash",
	"result.transaction_hash.Deploy",
	"deploy_hash",
}

// ParseDeployHashOutput extracts the deploy hash from the output of a put-deploy or transfer
// command. It accepts the JSON-RPC response printed by the client as well as text output with a
// "Deploy hash:" line. Output without a hash is an error wrapping sdkerrors.ErrDeployHashNotFound.
func ParseDeployHashOutput(stdout []byte) (types.DeployHash, error) {
	if start := bytes.IndexByte(stdout, '{'); start >= 0 && gjson.ValidBytes(stdout[start:]) {
		doc := gjson.ParseBytes(stdout[start:])
		if rpcErr := doc.Get("error"); rpcErr.Exists() {
			return "", fmt.Errorf("%w: node returned error %d: %s", sdkerrors.ErrDeployHashNotFound,
				rpcErr.Get("code").Int(), rpcErr.Get("message").String())
		}
		for _, path := range deployHashPaths {
			if v := doc.Get(path); v.Type == gjson.String {
				return types.ParseDeployHash(v.String())
			}
		}
	}

	scanner := bufio.NewScanner(bytes.NewReader(stdout))
	for scanner.Scan() {
		line := scanner.Text()
		idx := indexFold(line, DeployHashMarker)
		if idx < 0 {
			continue
		}

		return types.ParseDeployHash(line[idx+len(DeployHashMarker):])
	}

	return "", sdkerrors.ErrDeployHashNotFound
}

// indexFold is strings.Index ignoring case. The returned offset is into s itself.
func indexFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}

	return -1
}
