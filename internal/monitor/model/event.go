package model

import "fmt"

// EventType distinguishes transfers from token operations.
type EventType string

const (
	EventTransaction EventType = "transaction"
	EventOperation   EventType = "operation"
)

// Transaction is a normalized ether transfer.
type Transaction struct {
	RawTransaction
	Rate     *float64 `json:"rate,omitempty"`
	USDValue *float64 `json:"usdValue,omitempty"`
}

// Operation is a normalized token operation. Value is RawValue scaled by the token decimals.
type Operation struct {
	Timestamp   int64             `json:"timestamp"`
	BlockNumber uint64            `json:"blockNumber"`
	Contract    string            `json:"contract"`
	Type        string            `json:"type"`
	Priority    int64             `json:"priority"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Hash        string            `json:"hash"`
	Balances    map[string]Amount `json:"balances,omitempty"`
	Token       TokenInfo         `json:"token"`
	RawValue    string            `json:"rawValue"`
	Value       string            `json:"value"`
	USDValue    *float64          `json:"usdValue,omitempty"`
}

// Event is what the scheduler publishes for every new transfer or operation.
type Event struct {
	ID          string       `json:"id"`
	Address     string       `json:"address"`
	Type        EventType    `json:"type"`
	BlockNumber uint64       `json:"blockNumber"`
	Transaction *Transaction `json:"transaction,omitempty"`
	Operation   *Operation   `json:"operation,omitempty"`
	USDValue    *float64     `json:"usdValue,omitempty"`
}

// Hash returns the transaction hash of the payload.
func (e Event) Hash() string {
	switch {
	case e.Transaction != nil:
		return e.Transaction.Hash
	case e.Operation != nil:
		return e.Operation.Hash
	default:
		return ""
	}
}

// TransactionEventID builds the identity of a transfer event.
func TransactionEventID(address, hash string) string {
	return fmt.Sprintf("%s-%s-%s", EventTransaction, address, hash)
}

// OperationEventID builds the identity of an operation event; priority separates
// several operations within one transaction.
func OperationEventID(address, hash string, priority int64) string {
	return fmt.Sprintf("%s-%s-%s-%d", EventOperation, address, hash, priority)
}
