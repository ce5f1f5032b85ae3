package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Amount is an integer amount kept as its decimal text so values above 2^53 survive decoding.
// It accepts both JSON numbers and JSON strings.
type Amount string

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("decode amount: %w", err)
		}
		*a = Amount(s)
		return nil
	}
	if len(data) == 0 || !json.Valid(data) || (data[0] != '-' && (data[0] < '0' || data[0] > '9')) {
		return fmt.Errorf("decode amount: invalid literal %q", data)
	}
	*a = Amount(data)
	return nil
}

// MarshalJSON emits the amount as a JSON string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}

func (a Amount) String() string { return string(a) }

// RawTransaction is an ether transfer as returned by the Bulk API.
type RawTransaction struct {
	Timestamp   int64             `json:"timestamp"`
	BlockNumber uint64            `json:"blockNumber"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Hash        string            `json:"hash"`
	Value       float64           `json:"value"`
	Input       string            `json:"input,omitempty"`
	Balances    map[string]Amount `json:"balances,omitempty"`
	Success     bool              `json:"success"`
}

// RawOperation is a token operation as returned by the Bulk API.
type RawOperation struct {
	Timestamp   int64             `json:"timestamp"`
	BlockNumber uint64            `json:"blockNumber"`
	Contract    string            `json:"contract"`
	Value       Amount            `json:"value"`
	Type        string            `json:"type"`
	Priority    int64             `json:"priority"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Hash        string            `json:"hash"`
	Balances    map[string]Amount `json:"balances,omitempty"`
}

// OperationApprove is the operation type excluded from emission.
const OperationApprove = "approve"

// LastSolidBlock is the highest block the remote service considers stable.
type LastSolidBlock struct {
	Block     uint64 `json:"block"`
	Timestamp uint64 `json:"timestamp"`
}

// RawUpdate is the unit of data returned by one fetch.
type RawUpdate struct {
	Transactions   map[string][]RawTransaction `json:"transactions"`
	Operations     map[string][]RawOperation   `json:"operations"`
	LastSolidBlock *LastSolidBlock             `json:"lastSolidBlock,omitempty"`
}

// IsEmpty reports whether the update carries no activity.
func (u *RawUpdate) IsEmpty() bool {
	if u == nil {
		return true
	}
	for _, txs := range u.Transactions {
		if len(txs) > 0 {
			return false
		}
	}
	for _, ops := range u.Operations {
		if len(ops) > 0 {
			return false
		}
	}
	return true
}
