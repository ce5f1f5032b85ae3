package tokens

import (
	"context"
	"time"

	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Source loads token metadata from the token API.
	Source interface {
		GetTokenInfo(ctx context.Context, address string) (model.TokenInfo, error)
	}
	// Metrics records cache lookups and outbound fetches.
	Metrics interface {
		ObserveLookup(outcome string)
		ObserveFetch(err error, started time.Time)
	}
)

// Lookup outcomes reported to Metrics.
const (
	OutcomeHit      = "hit"
	OutcomeFetched  = "fetched"
	OutcomeFallback = "fallback"
	OutcomeTimeout  = "timeout"
)
