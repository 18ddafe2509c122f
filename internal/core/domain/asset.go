package domain

// SupportedAsset describes one asset the platform custodies. The chain
// family tag drives adapter selection; it is derived from the RPC endpoint
// host when the row is loaded, not from the free-text network label.
type SupportedAsset struct {
	Symbol          string      `json:"symbol"`
	ChainID         string      `json:"chain_id"`
	Network         string      `json:"network"` // RPC endpoint URL identifying the chain
	ContractAddress string      `json:"contract_address"`
	Decimals        int         `json:"decimals"`
	Family          ChainFamily `json:"-"`
}

// WithResolvedFamily returns a copy with the chain family tag populated
// from the configured RPC endpoint.
func (a SupportedAsset) WithResolvedFamily() SupportedAsset {
	a.Family = ResolveChainFamily(a.Network)
	return a
}
