// Package fetcher pulls pool updates with a lookback window wide enough to cover
// the time since the last confirmed progress.
package fetcher

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/poolmonitor-backend/internal/clock"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/config"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
)

// millisecondThreshold separates unix seconds from unix milliseconds.
const millisecondThreshold = 10_000_000_000

// ErrEmptyUpdate is returned when the Bulk API answers without a body.
var ErrEmptyUpdate = errors.New("can not get last pool updates")

// Fetcher requests pool updates. It never retries; the scheduler counts failures.
type Fetcher struct {
	client  Client
	clock   clock.Clock
	period  time.Duration
	ceiling time.Duration
}

// New builds a fetcher using the period settings of cfg.
func New(client Client, cfg config.Config, clk clock.Clock) *Fetcher {
	if clk == nil {
		clk = clock.System{}
	}
	return &Fetcher{
		client:  client,
		clock:   clk,
		period:  cfg.Period,
		ceiling: cfg.PeriodCeiling,
	}
}

// Period returns the lookback window in seconds:
// min(max(Period, now-sinceTs, now-lastCheckpointTs), PeriodCeiling).
// A zero timestamp does not widen the window.
func (f *Fetcher) Period(sinceTs, lastCheckpointTs uint64) int64 {
	now := f.clock.Now().Unix()
	period := int64(f.period / time.Second)
	for _, ts := range []uint64{sinceTs, lastCheckpointTs} {
		if gap := gapSeconds(now, ts); gap > period {
			period = gap
		}
	}
	if ceiling := int64(f.ceiling / time.Second); ceiling > 0 && period > ceiling {
		period = ceiling
	}
	return period
}

// Fetch returns the combined pool update for the computed window.
func (f *Fetcher) Fetch(ctx context.Context, sinceTs, lastCheckpointTs uint64) (*model.RawUpdate, error) {
	update, err := f.client.GetPoolUpdates(ctx, f.Period(sinceTs, lastCheckpointTs))
	if err != nil {
		return nil, err
	}
	if update == nil {
		return nil, ErrEmptyUpdate
	}
	return update, nil
}

// FetchTransactions returns only the pool transactions for the computed window.
func (f *Fetcher) FetchTransactions(ctx context.Context, sinceTs, lastCheckpointTs uint64) (map[string][]model.RawTransaction, error) {
	return f.client.GetPoolLastTransactions(ctx, f.Period(sinceTs, lastCheckpointTs))
}

// FetchOperations returns only the pool operations for the computed window.
func (f *Fetcher) FetchOperations(ctx context.Context, sinceTs, lastCheckpointTs uint64) (map[string][]model.RawOperation, error) {
	return f.client.GetPoolLastOperations(ctx, f.Period(sinceTs, lastCheckpointTs))
}

func gapSeconds(now int64, ts uint64) int64 {
	if ts == 0 {
		return 0
	}
	if ts > millisecondThreshold {
		ts /= 1000
	}
	if ts > uint64(now) {
		return 0
	}
	return now - int64(ts)
}
