package model

import "strings"

// ETHAddress is the pseudo-token address used to look up the ether rate.
const ETHAddress = "0x0000000000000000000000000000000000000000"

// UnknownTokenName is the name and symbol of the sentinel token.
const UnknownTokenName = "Unknown"

// TokenInfo is token metadata as served by the token API.
type TokenInfo struct {
	Address  string   `json:"address"`
	Name     string   `json:"name"`
	Symbol   string   `json:"symbol"`
	Decimals uint8    `json:"decimals"`
	Rate     *float64 `json:"rate,omitempty"`
}

// UnknownToken returns the sentinel used when metadata cannot be resolved.
func UnknownToken(address string) TokenInfo {
	return TokenInfo{
		Address: NormalizeAddress(address),
		Name:    UnknownTokenName,
		Symbol:  UnknownTokenName,
	}
}

// IsUnknown reports whether t is the sentinel token.
func (t TokenInfo) IsUnknown() bool {
	return t.Name == UnknownTokenName && t.Symbol == UnknownTokenName && t.Decimals == 0 && t.Rate == nil
}

// NormalizeAddress lower-cases an address for cache keys and lookups.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
