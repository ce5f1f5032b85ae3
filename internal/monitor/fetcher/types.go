package fetcher

import (
	"context"

	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Client is the subset of the Bulk API used to pull pool activity.
	Client interface {
		GetPoolUpdates(ctx context.Context, period int64) (*model.RawUpdate, error)
		GetPoolLastTransactions(ctx context.Context, period int64) (map[string][]model.RawTransaction, error)
		GetPoolLastOperations(ctx context.Context, period int64) (map[string][]model.RawOperation, error)
	}
)
