package scheduler

import (
	"context"
	"time"

	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/normalizer"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Fetcher interface {
		Fetch(ctx context.Context, sinceTs, lastCheckpointTs uint64) (*model.RawUpdate, error)
	}
	Normalizer interface {
		Normalize(ctx context.Context, update *model.RawUpdate, processed normalizer.BlockChecker) ([]model.Event, error)
	}
	Pool interface {
		PoolID() string
	}
	Sink interface {
		Watched()
		Data(ev model.Event)
		StateChanged(cp model.Checkpoint)
		Exception(err error)
		Unwatched()
	}
	Metrics interface {
		ObserveCycle(err error, started time.Time)
		ObserveEvents(eventType string, count int)
		SetConsecutiveErrors(count int)
		SetLastBlock(block uint64)
		SetDedupRetained(count int)
	}
)
