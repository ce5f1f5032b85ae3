package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/poolmonitor-backend/internal/clock"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/metrics"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/app"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/checkpoint"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/client"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/config"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/dedup"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/fetcher"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/normalizer"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/repository/clickhouse"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/scheduler"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/sink"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/statefile"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/tokens"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/transport"
	"github.com/goodnatureofminers/poolmonitor-backend/pkg/batcher"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type options struct {
	Network    string `long:"network" env:"POOL_MONITOR_NETWORK" description:"network: mainnet, kovan or custom" default:"mainnet"`
	APIURL     string `long:"api-url" env:"POOL_MONITOR_API_URL" description:"token API base URI (custom network)"`
	MonitorURL string `long:"monitor-url" env:"POOL_MONITOR_MONITOR_URL" description:"Bulk API monitor base URI (custom network)"`
	APIKey     string `long:"api-key" env:"POOL_MONITOR_API_KEY" description:"Bulk API key" required:"true"`
	PoolID     string `long:"pool-id" env:"POOL_MONITOR_POOL_ID" description:"existing pool to watch; overrides the state file"`

	Addresses []string `long:"address" env:"POOL_MONITOR_ADDRESSES" env-delim:"," description:"address to add to the pool (repeatable)"`

	Period        time.Duration `long:"period" env:"POOL_MONITOR_PERIOD" description:"minimum lookback window per fetch" default:"300s"`
	PeriodCeiling time.Duration `long:"period-ceiling" env:"POOL_MONITOR_PERIOD_CEILING" description:"maximum lookback window per fetch" default:"100h"`
	Interval      time.Duration `long:"interval" env:"POOL_MONITOR_INTERVAL" description:"delay between polling cycles" default:"60s"`
	MaxErrorCount int           `long:"max-error-count" env:"POOL_MONITOR_MAX_ERROR_COUNT" description:"stop after this many failed cycles in a row; 0 never stops" default:"0"`

	CacheLockCheckLimit int           `long:"cache-lock-check-limit" env:"POOL_MONITOR_CACHE_LOCK_CHECK_LIMIT" description:"token fetch wait checks" default:"100"`
	CacheLockCheckDelay time.Duration `long:"cache-lock-check-delay" env:"POOL_MONITOR_CACHE_LOCK_CHECK_DELAY" description:"token fetch wait check delay" default:"100ms"`
	TokensCacheLifeTime time.Duration `long:"tokens-cache-lifetime" env:"POOL_MONITOR_TOKENS_CACHE_LIFETIME" description:"token metadata TTL" default:"10m"`
	TokenRetryAttempts  int           `long:"token-retry-attempts" env:"POOL_MONITOR_TOKEN_RETRY_ATTEMPTS" description:"token fetch attempts" default:"3"`
	TokenRetryDelay     time.Duration `long:"token-retry-delay" env:"POOL_MONITOR_TOKEN_RETRY_DELAY" description:"delay between token fetch attempts" default:"1s"`

	RequestTimeout    time.Duration `long:"request-timeout" env:"POOL_MONITOR_REQUEST_TIMEOUT" description:"outbound request timeout" default:"30s"`
	RequestsPerSecond int           `long:"requests-per-second" env:"POOL_MONITOR_REQUESTS_PER_SECOND" description:"outbound request rate; 0 is unlimited" default:"0"`
	WatchFailed       bool          `long:"watch-failed" env:"POOL_MONITOR_WATCH_FAILED" description:"emit unsuccessful transactions"`
	ResolveWorkers    int           `long:"resolve-workers" env:"POOL_MONITOR_RESOLVE_WORKERS" description:"concurrent token resolutions per cycle" default:"8"`

	StateFile     string `long:"state-file" env:"POOL_MONITOR_STATE_FILE" description:"state file path (default $TMPDIR/poolMonitorState.json)"`
	ClickhouseDSN string `long:"clickhouse-dsn" env:"POOL_MONITOR_CLICKHOUSE_DSN" description:"ClickHouse DSN; enables checkpoint and event archiving"`
	MetricsAddr   string `long:"metrics-addr" env:"POOL_MONITOR_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	StatusAddr    string `long:"status-addr" env:"POOL_MONITOR_STATUS_ADDR" description:"address for status server" default:":8080"`
	Verbose       bool   `long:"verbose" short:"v" env:"POOL_MONITOR_VERBOSE" description:"development logging"`
}

func (o options) monitorConfig() config.Config {
	return config.Config{
		Network:             config.Network(o.Network),
		APIURL:              o.APIURL,
		MonitorURL:          o.MonitorURL,
		APIKey:              o.APIKey,
		PoolID:              o.PoolID,
		Period:              o.Period,
		PeriodCeiling:       o.PeriodCeiling,
		Interval:            o.Interval,
		MaxErrorCount:       o.MaxErrorCount,
		CacheLockCheckLimit: o.CacheLockCheckLimit,
		CacheLockCheckDelay: o.CacheLockCheckDelay,
		TokensCacheLifeTime: o.TokensCacheLifeTime,
		TokenRetryAttempts:  o.TokenRetryAttempts,
		TokenRetryDelay:     o.TokenRetryDelay,
		RequestTimeout:      o.RequestTimeout,
		RequestsPerSecond:   o.RequestsPerSecond,
		WatchFailed:         o.WatchFailed,
		ResolveWorkers:      o.ResolveWorkers,
	}
}

func main() {
	opts := options{}
	if _, err := flags.Parse(&opts); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := newLogger(opts.Verbose)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, opts, logger); err != nil {
		logger.Fatal("pool monitor failed", zap.Error(err))
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, opts options, logger *zap.Logger) error {
	cfg, err := opts.monitorConfig().Validate()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	api, err := client.New(cfg, metrics.NewMonitorClient(string(cfg.Network)), logger)
	if err != nil {
		return fmt.Errorf("init monitor client: %w", err)
	}
	cache, err := tokens.NewCache(api, cfg, metrics.NewTokenCache(), clock.System{}, logger)
	if err != nil {
		return fmt.Errorf("init token cache: %w", err)
	}

	sinks := sink.Multi{sink.NewLogging(logger)}

	var checkpoints app.CheckpointRepository
	var archive *sink.Archive
	if opts.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(opts.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return fmt.Errorf("init repository: %w", err)
		}
		defer func() {
			if err := repo.Close(); err != nil {
				logger.Warn("close repository", zap.Error(err))
			}
		}()
		checkpoints = repo

		archive, err = sink.NewArchive(repo, api.PoolID, batcher.Config{FlushesPerSecond: 2}, logger)
		if err != nil {
			return fmt.Errorf("init archive: %w", err)
		}
		sinks = append(sinks, archive)
	}

	states := statefile.New(opts.StateFile)
	if cfg.PoolID != "" {
		if err := pinPool(ctx, states, cfg.PoolID); err != nil {
			return err
		}
	}

	pool, err := app.New(api, states, checkpoints, logger)
	if err != nil {
		return fmt.Errorf("init pool app: %w", err)
	}
	sinks = append(sinks, pool.Persister())

	sched, err := scheduler.New(
		fetcher.New(api, cfg, clock.System{}),
		normalizer.New(cache, cfg, logger),
		api,
		checkpoint.NewStore(),
		dedup.NewFilter(),
		sinks,
		metrics.NewScheduler(api.PoolID),
		cfg,
		clock.System{},
		logger,
	)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	cache.SetErrorReporter(sched.ReportException)

	if err := pool.Init(ctx, sched, opts.Addresses); err != nil {
		return fmt.Errorf("init pool: %w", err)
	}
	logger.Info("pool monitor ready",
		zap.String("pool", api.PoolID()),
		zap.String("network", string(cfg.Network)),
		zap.String("state_file", states.Path()),
	)

	g, gctx := errgroup.WithContext(ctx)

	if opts.MetricsAddr != "" && opts.MetricsAddr != opts.StatusAddr {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		serve(gctx, g, "metrics", opts.MetricsAddr, mux, logger)
	}
	if opts.StatusAddr != "" {
		serve(gctx, g, "status", opts.StatusAddr, transport.NewMux(sched, logger), logger)
	}

	if archive != nil {
		archive.Start(gctx)
		defer archive.Stop()
	}

	g.Go(func() error {
		if err := pool.Watch(gctx); err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		done, err := pool.Done()
		if err != nil {
			return err
		}
		<-done
		if gctx.Err() != nil {
			return nil
		}
		return errors.New("watching stopped")
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) || (err == nil && ctx.Err() != nil) {
		logger.Info("exiting due to context cancellation")
		return nil
	}
	return err
}

// pinPool stores an explicitly configured pool ID, keeping the checkpoint when it belongs to the same pool.
func pinPool(ctx context.Context, states *statefile.Store, poolID string) error {
	state, err := states.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if state.PoolID == poolID {
		return nil
	}
	if err := states.Save(ctx, statefile.State{PoolID: poolID}); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func serve(ctx context.Context, g *errgroup.Group, name, addr string, handler http.Handler, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g.Go(func() error {
		logger.Info("starting "+name+" server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s server: %w", name, err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown "+name+" server", zap.Error(err))
		}
		return nil
	})
}
