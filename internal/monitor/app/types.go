package app

import (
	"context"

	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/statefile"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	StateStore interface {
		Load(ctx context.Context) (statefile.State, error)
		Save(ctx context.Context, state statefile.State) error
	}
	CheckpointRepository interface {
		SaveCheckpoint(ctx context.Context, poolID string, cp model.Checkpoint) error
		LoadCheckpoint(ctx context.Context, poolID string) (model.Checkpoint, bool, error)
	}
	PoolClient interface {
		PoolID() string
		SetPoolID(poolID string)
		CreatePool(ctx context.Context, addresses []string) (string, error)
		AddAddresses(ctx context.Context, addresses []string) (bool, error)
	}
	Watcher interface {
		Watch(ctx context.Context) error
		Unwatch() bool
		Done() <-chan struct{}
		RestoreCheckpoint(cp model.Checkpoint)
	}
)
