package normalizer

import (
	"context"

	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// TokenResolver returns token metadata; it never fails.
	TokenResolver interface {
		Resolve(ctx context.Context, address string) model.TokenInfo
	}
	// BlockChecker reports whether a block was already handled.
	BlockChecker interface {
		IsProcessed(block uint64) bool
	}
)
