// Package tokens caches token metadata with a TTL and a single outbound fetch per address.
package tokens

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/clock"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/config"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type entry struct {
	info      model.TokenInfo
	fetchedAt time.Time
}

// Cache resolves token metadata. Resolve never fails: on trouble it serves the last
// cached value or the Unknown sentinel and reports a degraded error.
type Cache struct {
	logger        *zap.Logger
	source        Source
	metrics       Metrics
	clock         clock.Clock
	ttl           time.Duration
	lockWait      time.Duration
	retryAttempts int
	retryDelay    time.Duration

	group singleflight.Group

	mu       sync.RWMutex
	entries  map[string]entry
	inflight map[string]uint64
	claims   uint64
	report   func(error)
}

// NewCache builds a cache on top of source using the token settings of cfg.
func NewCache(source Source, cfg config.Config, metrics Metrics, clk clock.Clock, logger *zap.Logger) (*Cache, error) {
	if source == nil {
		return nil, errors.New("token source is required")
	}
	if metrics == nil {
		return nil, errors.New("token cache metrics is required")
	}
	if clk == nil {
		clk = clock.System{}
	}
	attempts := cfg.TokenRetryAttempts
	if attempts <= 0 {
		attempts = 1
	}
	return &Cache{
		logger:        logger.Named("tokenCache"),
		source:        source,
		metrics:       metrics,
		clock:         clk,
		ttl:           cfg.TokensCacheLifeTime,
		lockWait:      cfg.LockWait(),
		retryAttempts: attempts,
		retryDelay:    cfg.TokenRetryDelay,
		entries:       make(map[string]entry),
		inflight:      make(map[string]uint64),
	}, nil
}

// SetErrorReporter installs the callback receiving non-fatal resolution errors.
func (c *Cache) SetErrorReporter(report func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report = report
}

// Resolve returns metadata for address. Concurrent callers for the same address share
// one fetch. The caller that starts the fetch waits for all of its attempts; callers
// joining it wait at most CacheLockCheckLimit × CacheLockCheckDelay.
func (c *Cache) Resolve(ctx context.Context, address string) model.TokenInfo {
	address = model.NormalizeAddress(address)

	if e, ok := c.get(address); ok && !c.expired(e) {
		c.metrics.ObserveLookup(OutcomeHit)
		return e.info
	}

	claim := c.claim(address)
	// The fetch outlives a caller that gives up waiting so the cache still gets filled.
	ch := c.group.DoChan(address, func() (any, error) {
		defer c.release(address, claim)
		return c.fetch(context.WithoutCancel(ctx), address), nil
	})

	var timeout <-chan time.Time
	if claim == 0 {
		timer := time.NewTimer(c.lockWait)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case res := <-ch:
		// A claim made while a finished fetch was still being delivered joined that fetch.
		c.release(address, claim)
		return res.Val.(model.TokenInfo)
	case <-timeout:
		c.metrics.ObserveLookup(OutcomeTimeout)
		info := c.fallback(address)
		c.reportError(&model.TokenResolutionDegradedError{Address: address, Reason: "lock wait timeout"})
		return info
	case <-ctx.Done():
		c.metrics.ObserveLookup(OutcomeTimeout)
		info := c.fallback(address)
		c.reportError(&model.TokenResolutionDegradedError{Address: address, Reason: "canceled", Err: ctx.Err()})
		return info
	}
}

// claim marks a fetch for address as in flight. It returns 0 when another caller
// already holds the claim, otherwise the id of the new claim.
func (c *Cache) claim(address string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.inflight[address]; ok {
		return 0
	}
	c.claims++
	c.inflight[address] = c.claims
	return c.claims
}

// release drops the claim on address if it is still the one identified by id.
func (c *Cache) release(address string, id uint64) {
	if id == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[address] == id {
		delete(c.inflight, address)
	}
}

// Len returns the number of cached addresses.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) fetch(ctx context.Context, address string) model.TokenInfo {
	var (
		info     model.TokenInfo
		notToken bool
		attempt  int
	)
	op := func() error {
		attempt++
		started := time.Now()
		got, err := c.source.GetTokenInfo(ctx, address)
		c.metrics.ObserveFetch(err, started)
		if err == nil {
			info = got
			return nil
		}
		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.Code == model.APIErrorNotToken {
			notToken = true
			return backoff.Permanent(err)
		}
		c.logger.Warn("token fetch failed", zap.String("address", address), zap.Int("attempt", attempt), zap.Error(err))
		c.reportError(&model.TokenResolutionDegradedError{Address: address, Reason: "fetch attempt failed", Err: err})
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryDelay), uint64(c.retryAttempts-1)),
		ctx,
	)
	err := backoff.Retry(op, policy)

	switch {
	case notToken:
		c.logger.Debug("address is not a token contract", zap.String("address", address))
		info = model.UnknownToken(address)
		c.put(address, info)
		c.metrics.ObserveLookup(OutcomeFetched)
		return info
	case err == nil:
		info.Address = address
		c.put(address, info)
		c.metrics.ObserveLookup(OutcomeFetched)
		return info
	}

	c.metrics.ObserveLookup(OutcomeFallback)
	c.reportError(&model.TokenResolutionDegradedError{Address: address, Reason: "retries exhausted", Err: err})

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.entries[address]; ok {
		prev.fetchedAt = c.clock.Now()
		c.entries[address] = prev
		return prev.info
	}
	info = model.UnknownToken(address)
	c.entries[address] = entry{info: info, fetchedAt: c.clock.Now()}
	return info
}

func (c *Cache) fallback(address string) model.TokenInfo {
	if e, ok := c.get(address); ok {
		return e.info
	}
	return model.UnknownToken(address)
}

func (c *Cache) get(address string) (entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[address]
	return e, ok
}

func (c *Cache) put(address string, info model.TokenInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[address] = entry{info: info, fetchedAt: c.clock.Now()}
}

func (c *Cache) expired(e entry) bool {
	return c.clock.Now().Sub(e.fetchedAt) > c.ttl
}

func (c *Cache) reportError(err error) {
	c.mu.RLock()
	report := c.report
	c.mu.RUnlock()
	if report != nil {
		report(err)
	}
}
