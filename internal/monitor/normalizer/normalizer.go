// Package normalizer turns raw pool updates into enriched events.
package normalizer

import (
	"context"
	"fmt"
	"sort"

	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/config"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
	"github.com/goodnatureofminers/poolmonitor-backend/pkg/workerpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Normalizer enriches transactions with the ether rate and operations with token
// metadata, skipping entries in blocks that are already processed.
type Normalizer struct {
	logger      *zap.Logger
	tokens      TokenResolver
	workers     int
	watchFailed bool
}

// New builds a normalizer using the WatchFailed and ResolveWorkers settings of cfg.
func New(tokens TokenResolver, cfg config.Config, logger *zap.Logger) *Normalizer {
	return &Normalizer{
		logger:      logger.Named("normalizer"),
		tokens:      tokens,
		workers:     cfg.ResolveWorkers,
		watchFailed: cfg.WatchFailed,
	}
}

// Normalize returns the events of update in a deterministic order: transactions
// first, then operations, each grouped by address.
func (n *Normalizer) Normalize(ctx context.Context, update *model.RawUpdate, processed BlockChecker) ([]model.Event, error) {
	if update.IsEmpty() {
		return nil, nil
	}

	wanted := n.tokenAddresses(update, processed)
	resolved, err := workerpool.Map(ctx, n.workers, wanted, func(ctx context.Context, address string) (model.TokenInfo, error) {
		return n.tokens.Resolve(ctx, address), nil
	})
	if err != nil {
		return nil, fmt.Errorf("resolve tokens: %w", err)
	}

	events := make([]model.Event, 0)
	if len(update.Transactions) > 0 {
		eth := resolved[model.ETHAddress]
		for _, address := range sortedKeys(update.Transactions) {
			for _, tx := range update.Transactions[address] {
				if !n.acceptTransaction(tx, processed) {
					continue
				}
				events = append(events, transactionEvent(address, tx, eth.Rate))
			}
		}
	}

	for _, address := range sortedKeys(update.Operations) {
		for _, op := range update.Operations[address] {
			if !acceptOperation(op, processed) {
				continue
			}
			token := resolved[model.NormalizeAddress(op.Contract)]
			ev, err := operationEvent(address, op, token)
			if err != nil {
				n.logger.Warn("operation value left unscaled", zap.String("hash", op.Hash), zap.Error(err))
			}
			events = append(events, ev)
		}
	}

	return events, nil
}

func (n *Normalizer) acceptTransaction(tx model.RawTransaction, processed BlockChecker) bool {
	if !tx.Success && !n.watchFailed {
		return false
	}
	return tx.BlockNumber != 0 && !processed.IsProcessed(tx.BlockNumber)
}

func acceptOperation(op model.RawOperation, processed BlockChecker) bool {
	if op.Type == model.OperationApprove {
		return false
	}
	return op.BlockNumber != 0 && !processed.IsProcessed(op.BlockNumber)
}

func (n *Normalizer) tokenAddresses(update *model.RawUpdate, processed BlockChecker) []string {
	addresses := make([]string, 0)
	if len(update.Transactions) > 0 {
		addresses = append(addresses, model.ETHAddress)
	}
	for _, ops := range update.Operations {
		for _, op := range ops {
			if acceptOperation(op, processed) {
				addresses = append(addresses, model.NormalizeAddress(op.Contract))
			}
		}
	}
	return addresses
}

func transactionEvent(address string, tx model.RawTransaction, rate *float64) model.Event {
	payload := &model.Transaction{RawTransaction: tx}
	if rate != nil {
		r := *rate
		payload.Rate = &r
		payload.USDValue = usd(decimal.NewFromFloat(tx.Value), r)
	}
	return model.Event{
		ID:          model.TransactionEventID(address, tx.Hash),
		Address:     address,
		Type:        model.EventTransaction,
		BlockNumber: tx.BlockNumber,
		Transaction: payload,
		USDValue:    payload.USDValue,
	}
}

func operationEvent(address string, op model.RawOperation, token model.TokenInfo) (model.Event, error) {
	payload := &model.Operation{
		Timestamp:   op.Timestamp,
		BlockNumber: op.BlockNumber,
		Contract:    op.Contract,
		Type:        op.Type,
		Priority:    op.Priority,
		From:        op.From,
		To:          op.To,
		Hash:        op.Hash,
		Balances:    op.Balances,
		Token:       token,
		RawValue:    op.Value.String(),
		Value:       op.Value.String(),
	}
	ev := model.Event{
		ID:          model.OperationEventID(address, op.Hash, op.Priority),
		Address:     address,
		Type:        model.EventOperation,
		BlockNumber: op.BlockNumber,
		Operation:   payload,
	}

	value, err := ScaleValue(op.Value.String(), token.Decimals)
	if err != nil {
		return ev, err
	}
	payload.Value = value.String()
	if token.Rate != nil {
		payload.USDValue = usd(value, *token.Rate)
		ev.USDValue = payload.USDValue
	}
	return ev, nil
}

// ScaleValue divides an integer amount by 10^decimals without losing precision.
// An empty amount is zero.
func ScaleValue(raw string, decimals uint8) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	return d.Shift(-int32(decimals)), nil
}

func usd(value decimal.Decimal, rate float64) *float64 {
	v, _ := value.Mul(decimal.NewFromFloat(rate)).Round(2).Float64()
	return &v
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
