package sink

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
	"github.com/goodnatureofminers/poolmonitor-backend/pkg/batcher"
	"go.uber.org/zap"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// EventWriter persists batches of events.
type EventWriter interface {
	InsertEvents(ctx context.Context, poolID string, events []model.Event) error
}

const (
	archiveFlushSize     = 500
	archiveFlushInterval = 5 * time.Second
	archiveAddTimeout    = 5 * time.Second
)

// Archive buffers Data events and writes them in batches. Other signals are ignored.
type Archive struct {
	logger  *zap.Logger
	batcher *batcher.Batcher[model.Event]
	ctx     context.Context
}

// NewArchive builds an archive writing to writer under poolID. Start must be called before use.
func NewArchive(writer EventWriter, poolID func() string, cfg batcher.Config, logger *zap.Logger) (*Archive, error) {
	if writer == nil {
		return nil, errors.New("event writer is required")
	}
	if cfg.FlushSize <= 0 {
		cfg.FlushSize = archiveFlushSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = archiveFlushInterval
	}
	logger = logger.Named("archive")
	return &Archive{
		logger: logger,
		ctx:    context.Background(),
		batcher: batcher.New(logger, cfg, func(ctx context.Context, events []model.Event) error {
			return writer.InsertEvents(ctx, poolID(), events)
		}),
	}, nil
}

// Start runs the flush loop until ctx is canceled or Stop is called.
func (a *Archive) Start(ctx context.Context) {
	a.ctx = ctx
	a.batcher.Start(ctx)
}

// Stop flushes buffered events and waits for the flush loop.
func (a *Archive) Stop() {
	a.batcher.Stop()
}

func (a *Archive) Data(ev model.Event) {
	ctx, cancel := context.WithTimeout(a.ctx, archiveAddTimeout)
	defer cancel()
	if err := a.batcher.Add(ctx, ev); err != nil {
		a.logger.Warn("event dropped from archive", zap.String("id", ev.ID), zap.Error(err))
	}
}

func (a *Archive) Watched() {}

func (a *Archive) StateChanged(model.Checkpoint) {}

func (a *Archive) Exception(error) {}

func (a *Archive) Unwatched() {}
