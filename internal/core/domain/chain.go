package domain

import "strings"

// ChainFamily is the closed set of chain protocols the custody core speaks.
// It is resolved once when an asset's configuration is loaded and stored as
// a tag, never re-parsed from the RPC URL on the hot path.
type ChainFamily string

const (
	ChainFamilyEVM  ChainFamily = "EVM"
	ChainFamilyTron ChainFamily = "TRON"
)

// tronHostMarkers identify Tron full-node endpoints by host. Anything else
// is treated as EVM-compatible.
var tronHostMarkers = []string{"tron", "trongrid", "nile", "shasta"}

// ResolveChainFamily inspects an RPC endpoint host and classifies the chain.
// The network label on the asset row is free text and not trusted; the
// endpoint host is what the platform actually configured.
func ResolveChainFamily(rpcEndpoint string) ChainFamily {
	host := rpcEndpoint
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	if i := strings.IndexAny(host, "/:"); i >= 0 {
		host = host[:i]
	}
	host = strings.ToLower(host)
	for _, marker := range tronHostMarkers {
		if strings.Contains(host, marker) {
			return ChainFamilyTron
		}
	}
	return ChainFamilyEVM
}
