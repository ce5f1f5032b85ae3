package clickhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
)

// InsertEvents archives emitted events of a pool.
func (r *Repository) InsertEvents(ctx context.Context, poolID string, events []model.Event) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_events", poolID, err, start)
	}()

	if len(events) == 0 {
		return nil
	}

	const query = `
INSERT INTO pool_events (
	pool_id,
	event_id,
	type,
	address,
	block_number,
	hash,
	timestamp,
	usd_value,
	payload
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare events batch: %w", err)
	}

	for _, ev := range events {
		var payload []byte
		payload, err = json.Marshal(ev)
		if err != nil {
			_ = batch.Abort()
			return fmt.Errorf("encode event %s: %w", ev.ID, err)
		}
		if err = batch.Append(
			poolID,
			ev.ID,
			string(ev.Type),
			ev.Address,
			ev.BlockNumber,
			ev.Hash(),
			eventTime(ev),
			ev.USDValue,
			string(payload),
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append event: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert events: %w", err)
	}
	return nil
}

func eventTime(ev model.Event) time.Time {
	var ts int64
	switch {
	case ev.Transaction != nil:
		ts = ev.Transaction.Timestamp
	case ev.Operation != nil:
		ts = ev.Operation.Timestamp
	}
	return time.Unix(ts, 0).UTC()
}
