// Package app binds a pool, its persisted state and a scheduler together.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/sink"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/statefile"
	"go.uber.org/zap"
)

var ErrNotInitialized = errors.New("pool app is not initialized")

const persistTimeout = 5 * time.Second

type App struct {
	logger      *zap.Logger
	client      PoolClient
	states      StateStore
	checkpoints CheckpointRepository

	mu      sync.Mutex
	watcher Watcher
	poolID  string
}

// New builds an app. checkpoints may be nil when only the state file is used.
func New(client PoolClient, states StateStore, checkpoints CheckpointRepository, logger *zap.Logger) (*App, error) {
	if client == nil {
		return nil, errors.New("pool client is required")
	}
	if states == nil {
		return nil, errors.New("state store is required")
	}
	return &App{
		logger:      logger.Named("app"),
		client:      client,
		states:      states,
		checkpoints: checkpoints,
	}, nil
}

// Persister returns the sink that stores every checkpoint the scheduler publishes.
func (a *App) Persister() sink.Sink {
	return sink.Funcs{OnStateChanged: a.persist}
}

// Init restores the stored pool or creates a new one with addresses, then restores the
// checkpoint into w. Repeated calls are no-ops.
func (a *App) Init(ctx context.Context, w Watcher, addresses []string) error {
	if w == nil {
		return errors.New("watcher is required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.watcher != nil {
		return nil
	}

	state, err := a.states.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	if state.PoolID == "" {
		poolID, err := a.client.CreatePool(ctx, addresses)
		if err != nil {
			return fmt.Errorf("create pool: %w", err)
		}
		state = statefile.State{PoolID: poolID}
		if err := a.states.Save(ctx, state); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
		a.logger.Info("pool created", zap.String("pool", poolID), zap.Int("addresses", len(addresses)))
	} else {
		a.client.SetPoolID(state.PoolID)
		if len(addresses) > 0 {
			if _, err := a.client.AddAddresses(ctx, addresses); err != nil {
				return fmt.Errorf("add addresses: %w", err)
			}
		}
		a.logger.Info("pool restored", zap.String("pool", state.PoolID), zap.Int("addresses", len(addresses)))
	}

	cp, err := a.restoreCheckpoint(ctx, state)
	if err != nil {
		return err
	}
	if cp != nil {
		w.RestoreCheckpoint(*cp)
		a.logger.Info("checkpoint restored",
			zap.String("pool", state.PoolID),
			zap.Uint64("last_block", cp.LastBlock),
			zap.Uint64("last_ts", cp.LastTs),
		)
	}

	a.poolID = state.PoolID
	a.watcher = w
	return nil
}

// restoreCheckpoint prefers the furthest checkpoint of the state file and the repository.
func (a *App) restoreCheckpoint(ctx context.Context, state statefile.State) (*model.Checkpoint, error) {
	cp := state.Checkpoint
	if a.checkpoints == nil {
		return cp, nil
	}

	stored, found, err := a.checkpoints.LoadCheckpoint(ctx, state.PoolID)
	if err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}
	if found && (cp == nil || stored.LastBlock > cp.LastBlock) {
		cp = &stored
	}
	return cp, nil
}

func (a *App) Watch(ctx context.Context) error {
	w, err := a.current()
	if err != nil {
		return err
	}
	return w.Watch(ctx)
}

func (a *App) Unwatch() (bool, error) {
	w, err := a.current()
	if err != nil {
		return false, err
	}
	return w.Unwatch(), nil
}

// Done is closed when the current watch session ends.
func (a *App) Done() (<-chan struct{}, error) {
	w, err := a.current()
	if err != nil {
		return nil, err
	}
	return w.Done(), nil
}

func (a *App) current() (Watcher, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.watcher == nil {
		return nil, ErrNotInitialized
	}
	return a.watcher, nil
}

func (a *App) persist(cp model.Checkpoint) {
	a.mu.Lock()
	poolID := a.poolID
	a.mu.Unlock()
	if poolID == "" {
		poolID = a.client.PoolID()
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := a.states.Save(ctx, statefile.State{PoolID: poolID, Checkpoint: &cp}); err != nil {
		a.logger.Error("save state failed", zap.String("pool", poolID), zap.Error(err))
	}
	if a.checkpoints != nil {
		if err := a.checkpoints.SaveCheckpoint(ctx, poolID, cp); err != nil {
			a.logger.Error("save checkpoint failed", zap.String("pool", poolID), zap.Error(err))
		}
	}
}
