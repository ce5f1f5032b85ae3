// Package scheduler drives the polling cycle of a pool: fetch, normalize, dedup,
// advance the checkpoint and publish.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goodnatureofminers/poolmonitor-backend/internal/clock"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/checkpoint"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/config"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/dedup"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
	"go.uber.org/zap"
)

// State is the watching state of a scheduler.
type State string

const (
	StateIdle      State = "idle"
	StateWatching  State = "watching"
	StateUnwatched State = "unwatched"
)

// Status is a point-in-time view of the scheduler.
type Status struct {
	State             State            `json:"state"`
	PoolID            string           `json:"poolId"`
	Checkpoint        model.Checkpoint `json:"checkpoint"`
	ConsecutiveErrors int              `json:"consecutiveErrors"`
}

type session struct {
	stop    chan struct{}
	done    chan struct{}
	watched bool
}

// Scheduler runs one cycle at a time on its own goroutine.
type Scheduler struct {
	logger     *zap.Logger
	fetcher    Fetcher
	normalizer Normalizer
	pool       Pool
	store      *checkpoint.Store
	filter     *dedup.Filter
	sink       Sink
	metrics    Metrics
	clock      clock.Clock
	sleep      func(ctx context.Context, stop <-chan struct{}, d time.Duration) bool
	interval   time.Duration
	maxErrors  int

	mu       sync.Mutex
	state    State
	session  *session
	resumeTs uint64
	errCount int
}

// New builds an idle scheduler.
func New(
	fetcher Fetcher,
	normalizer Normalizer,
	pool Pool,
	store *checkpoint.Store,
	filter *dedup.Filter,
	sink Sink,
	metrics Metrics,
	cfg config.Config,
	clk clock.Clock,
	logger *zap.Logger,
) (*Scheduler, error) {
	switch {
	case fetcher == nil:
		return nil, errors.New("fetcher is required")
	case normalizer == nil:
		return nil, errors.New("normalizer is required")
	case pool == nil:
		return nil, errors.New("pool is required")
	case sink == nil:
		return nil, errors.New("sink is required")
	case metrics == nil:
		return nil, errors.New("scheduler metrics is required")
	}
	if store == nil {
		store = checkpoint.NewStore()
	}
	if filter == nil {
		filter = dedup.NewFilter()
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &Scheduler{
		logger:     logger.Named("scheduler"),
		fetcher:    fetcher,
		normalizer: normalizer,
		pool:       pool,
		store:      store,
		filter:     filter,
		sink:       sink,
		metrics:    metrics,
		clock:      clk,
		sleep:      clock.SleepOrStop,
		interval:   cfg.Interval,
		maxErrors:  cfg.MaxErrorCount,
		state:      StateIdle,
	}, nil
}

// Watch starts polling: one cycle right away, then one every Interval until
// Unwatch, the error threshold or ctx cancellation. A cycle still running from
// the previous session finishes before the first cycle of the new one starts.
func (s *Scheduler) Watch(ctx context.Context) error {
	poolID := s.pool.PoolID()
	if poolID == "" {
		return model.ErrNoPoolConfigured
	}

	s.mu.Lock()
	if s.state == StateWatching {
		s.mu.Unlock()
		return model.ErrAlreadyWatching
	}
	var prevDone <-chan struct{}
	if s.session != nil {
		prevDone = s.session.done
	}
	sess := &session{stop: make(chan struct{}), done: make(chan struct{})}
	s.session = sess
	s.state = StateWatching
	s.errCount = 0
	s.mu.Unlock()

	s.metrics.SetConsecutiveErrors(0)
	s.logger.Info("watching pool", zap.String("pool", poolID), zap.Duration("interval", s.interval))
	go s.loop(ctx, sess, prevDone)
	return nil
}

// Run watches until ctx is canceled or watching stops, whichever comes first.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Watch(ctx); err != nil {
		return err
	}
	<-s.Done()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}

// Unwatch stops scheduling further cycles. A cycle already running completes.
// It reports whether a watch session was active.
func (s *Scheduler) Unwatch() bool {
	return s.stop(nil)
}

// Done is closed when the current watch session ends. Without a session it is already closed.
func (s *Scheduler) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return s.session.done
}

// Restore loads a persisted checkpoint blob. The next fetch looks back at least to its lastTs.
func (s *Scheduler) Restore(blob []byte) (model.Checkpoint, error) {
	cp, err := s.store.Restore(blob)
	if err != nil {
		return model.Checkpoint{}, err
	}
	s.restored(cp)
	return cp, nil
}

// RestoreCheckpoint loads an already decoded checkpoint.
func (s *Scheduler) RestoreCheckpoint(cp model.Checkpoint) {
	s.store.Set(cp)
	s.restored(cp)
}

func (s *Scheduler) restored(cp model.Checkpoint) {
	s.mu.Lock()
	s.resumeTs = cp.LastTs
	s.mu.Unlock()
	s.metrics.SetLastBlock(cp.LastBlock)
}

// Checkpoint returns a snapshot of the current checkpoint.
func (s *Scheduler) Checkpoint() model.Checkpoint {
	return s.store.Current()
}

// ReportException forwards a non-fatal error, such as a degraded token lookup, to the sink.
func (s *Scheduler) ReportException(err error) {
	s.sink.Exception(err)
}

// Status returns the current state, pool, checkpoint and error counter.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	state, errCount := s.state, s.errCount
	s.mu.Unlock()
	return Status{
		State:             state,
		PoolID:            s.pool.PoolID(),
		Checkpoint:        s.store.Current(),
		ConsecutiveErrors: errCount,
	}
}

func (s *Scheduler) loop(ctx context.Context, sess *session, prevDone <-chan struct{}) {
	defer close(sess.done)
	if prevDone != nil {
		select {
		case <-prevDone:
		case <-sess.stop:
			return
		case <-ctx.Done():
			s.stop(sess)
			return
		}
	}
	for {
		select {
		case <-sess.stop:
			return
		default:
		}
		if ctx.Err() != nil {
			s.stop(sess)
			return
		}

		if !s.runCycle(ctx, sess) {
			return
		}
		if !s.sleep(ctx, sess.stop, s.interval) {
			if ctx.Err() != nil {
				s.stop(sess)
			}
			return
		}
	}
}

// runCycle reports false when the error threshold ended the session.
// The error counter only tracks cycles of the current session.
func (s *Scheduler) runCycle(ctx context.Context, sess *session) bool {
	started := time.Now()
	err := s.cycle(ctx)
	s.metrics.ObserveCycle(err, started)

	if err == nil {
		s.mu.Lock()
		current := s.session == sess
		if current {
			s.errCount = 0
		}
		first := !sess.watched && current && s.state == StateWatching
		sess.watched = true
		s.mu.Unlock()
		if current {
			s.metrics.SetConsecutiveErrors(0)
		}
		if first {
			s.sink.Watched()
		}
		return true
	}

	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return true
	}

	s.mu.Lock()
	current := s.session == sess
	if current {
		s.errCount++
	}
	count := s.errCount
	s.mu.Unlock()
	s.sink.Exception(err)
	if !current {
		s.logger.Warn("cycle of a stopped session failed", zap.Error(err))
		return false
	}
	s.metrics.SetConsecutiveErrors(count)
	s.logger.Warn("cycle failed", zap.Error(err), zap.Int("consecutiveErrors", count))

	if s.maxErrors > 0 && count >= s.maxErrors {
		s.logger.Error("too many consecutive errors, unwatching", zap.Int("maxErrorCount", s.maxErrors))
		s.mu.Lock()
		s.errCount = 0
		s.mu.Unlock()
		s.metrics.SetConsecutiveErrors(0)
		s.stop(sess)
		return false
	}
	return true
}

func (s *Scheduler) cycle(ctx context.Context) error {
	cp := s.store.Current()
	s.mu.Lock()
	since := s.resumeTs
	s.mu.Unlock()

	update, err := s.fetcher.Fetch(ctx, since, cp.LastTs)
	if err != nil {
		return err
	}

	events, err := s.normalizer.Normalize(ctx, update, s.store)
	if err != nil {
		return err
	}

	fresh := make([]model.Event, 0, len(events))
	touched := make([]uint64, 0, len(events))
	for _, ev := range events {
		if !s.filter.Claim(ev.ID, ev.BlockNumber) {
			continue
		}
		fresh = append(fresh, ev)
		touched = append(touched, ev.BlockNumber)
	}

	lsb := update.LastSolidBlock
	lsbAdvanced := lsb != nil && lsb.Timestamp != 0 && lsb.Block > cp.LastBlock

	var (
		snapshot model.Checkpoint
		advanced bool
	)
	if lsbAdvanced || len(touched) > 0 {
		var block, ts uint64
		if lsbAdvanced {
			block, ts = lsb.Block, lsb.Timestamp
		}
		snapshot = s.store.Advance(block, ts, touched)
		if lsbAdvanced {
			s.filter.Prune(snapshot.LastBlock)
		}
		s.mu.Lock()
		s.resumeTs = 0
		s.mu.Unlock()
		s.metrics.SetLastBlock(snapshot.LastBlock)
		advanced = true
	}
	s.metrics.SetDedupRetained(s.filter.Len())

	if len(fresh) == 0 {
		s.logger.Debug("no new events")
	}
	counts := map[model.EventType]int{}
	for _, ev := range fresh {
		s.sink.Data(ev)
		counts[ev.Type]++
	}
	for typ, n := range counts {
		s.metrics.ObserveEvents(string(typ), n)
	}
	if advanced {
		s.sink.StateChanged(snapshot)
	}
	return nil
}

// stop ends the active session. A non-nil sess only stops that session.
func (s *Scheduler) stop(sess *session) bool {
	s.mu.Lock()
	if s.state != StateWatching || s.session == nil || (sess != nil && s.session != sess) {
		s.mu.Unlock()
		return false
	}
	s.state = StateUnwatched
	s.resumeTs = uint64(s.clock.Now().Unix())
	close(s.session.stop)
	s.mu.Unlock()

	s.logger.Info("watching stopped")
	s.sink.Unwatched()
	return true
}
