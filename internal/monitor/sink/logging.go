package sink

import (
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
	"go.uber.org/zap"
)

// Logging writes every signal to a zap logger.
type Logging struct {
	logger *zap.Logger
}

// NewLogging returns a sink logging under the "events" name.
func NewLogging(logger *zap.Logger) *Logging {
	return &Logging{logger: logger.Named("events")}
}

func (l *Logging) Watched() {
	l.logger.Info("watching started")
}

func (l *Logging) Data(ev model.Event) {
	fields := []zap.Field{
		zap.String("id", ev.ID),
		zap.String("type", string(ev.Type)),
		zap.String("address", ev.Address),
		zap.Uint64("block", ev.BlockNumber),
		zap.String("hash", ev.Hash()),
	}
	if ev.Operation != nil {
		fields = append(fields,
			zap.String("token", ev.Operation.Token.Symbol),
			zap.String("value", ev.Operation.Value),
		)
	}
	if ev.Transaction != nil {
		fields = append(fields, zap.Float64("value", ev.Transaction.Value))
	}
	if ev.USDValue != nil {
		fields = append(fields, zap.Float64("usd", *ev.USDValue))
	}
	l.logger.Info("event", fields...)
}

func (l *Logging) StateChanged(cp model.Checkpoint) {
	l.logger.Debug("checkpoint advanced",
		zap.Uint64("lastBlock", cp.LastBlock),
		zap.Uint64("lastTs", cp.LastTs),
		zap.Int("pendingBlocks", len(cp.Blocks)),
	)
}

func (l *Logging) Exception(err error) {
	l.logger.Warn("monitor exception", zap.Error(err))
}

func (l *Logging) Unwatched() {
	l.logger.Info("watching stopped")
}
