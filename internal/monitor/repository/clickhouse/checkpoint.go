package clickhouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
)

// SaveCheckpoint stores the latest checkpoint of a pool. Older rows are collapsed by the table engine.
func (r *Repository) SaveCheckpoint(ctx context.Context, poolID string, cp model.Checkpoint) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("save_checkpoint", poolID, err, start)
	}()

	if poolID == "" {
		err = model.ErrNoPoolConfigured
		return err
	}

	const query = `
INSERT INTO pool_checkpoints (
	pool_id,
	last_block,
	last_ts,
	blocks
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare checkpoint batch: %w", err)
	}

	if err = batch.Append(poolID, cp.LastBlock, cp.LastTs, cp.SortedBlocks()); err != nil {
		_ = batch.Abort()
		return fmt.Errorf("append checkpoint: %w", err)
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint returns the latest stored checkpoint of a pool and whether one exists.
func (r *Repository) LoadCheckpoint(ctx context.Context, poolID string) (model.Checkpoint, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("load_checkpoint", poolID, err, start)
	}()

	const query = `
SELECT last_block, last_ts, blocks
FROM pool_checkpoints
WHERE pool_id = ?
ORDER BY updated_at DESC
LIMIT 1`

	row := r.conn.QueryRow(ctx, query, poolID)
	if err = row.Err(); err != nil {
		return model.Checkpoint{}, false, fmt.Errorf("query checkpoint: %w", err)
	}

	var (
		lastBlock uint64
		lastTs    uint64
		blocks    []uint64
	)
	if err = row.Scan(&lastBlock, &lastTs, &blocks); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = nil
			return model.Checkpoint{}, false, nil
		}
		return model.Checkpoint{}, false, fmt.Errorf("scan checkpoint: %w", err)
	}

	cp := model.Checkpoint{LastBlock: lastBlock, LastTs: lastTs, Blocks: make(map[uint64]bool, len(blocks))}
	for _, b := range blocks {
		cp.Blocks[b] = true
	}
	return cp, true, nil
}
