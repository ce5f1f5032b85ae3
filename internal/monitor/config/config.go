// Package config holds the pool monitor settings and the known network endpoints.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
)

// Network names a set of default service endpoints.
type Network string

const (
	Mainnet Network = "mainnet"
	Kovan   Network = "kovan"
	Custom  Network = "custom"
)

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("no api key specified")

// Endpoints are the base URIs of the token API and the Bulk API monitor.
type Endpoints struct {
	API     string
	Monitor string
}

// DefaultNetworks returns a fresh copy of the known network table.
// The custom network has no defaults and must be configured explicitly.
func DefaultNetworks() map[Network]Endpoints {
	return map[Network]Endpoints{
		Mainnet: {API: "https://api.ethplorer.io", Monitor: "https://api-mon.ethplorer.io"},
		Kovan:   {API: "https://kovan-api.ethplorer.io", Monitor: "https://kovan-api-mon.ethplorer.io"},
		Custom:  {},
	}
}

// Config enumerates every recognised monitor option. Zero values are replaced by
// the documented defaults in Resolve.
type Config struct {
	// Network selects default endpoints: mainnet (default), kovan or custom.
	Network Network
	// APIURL and MonitorURL override the network endpoints; both are required for custom.
	APIURL     string
	MonitorURL string

	APIKey string
	PoolID string

	// Period is the minimum lookback window requested per fetch (default 300s).
	Period time.Duration
	// PeriodCeiling caps the lookback window (default 360000s).
	PeriodCeiling time.Duration
	// Interval separates two polling cycles (default 60s).
	Interval time.Duration
	// MaxErrorCount stops watching after this many consecutive failed cycles; 0 never stops.
	MaxErrorCount int

	// CacheLockCheckLimit and CacheLockCheckDelay bound how long a caller waits for an
	// in-flight token fetch (default 100 × 100ms).
	CacheLockCheckLimit int
	CacheLockCheckDelay time.Duration
	// TokensCacheLifeTime is the token metadata TTL (default 600000ms).
	TokensCacheLifeTime time.Duration
	// TokenRetryAttempts and TokenRetryDelay control token fetch retries (default 3 × 1s).
	TokenRetryAttempts int
	TokenRetryDelay    time.Duration

	// RequestTimeout bounds every outbound request (default 30000ms).
	RequestTimeout time.Duration
	// RequestsPerSecond throttles outbound requests; 0 is unlimited.
	RequestsPerSecond int

	// WatchFailed includes unsuccessful transactions.
	WatchFailed bool
	// ResolveWorkers bounds concurrent token resolutions within a cycle (default 8).
	ResolveWorkers int
}

// Default returns a mainnet configuration with every default filled in.
func Default() Config {
	return Config{
		Network:             Mainnet,
		Period:              defaultPeriod,
		PeriodCeiling:       defaultPeriodCeiling,
		Interval:            defaultInterval,
		CacheLockCheckLimit: defaultCacheLockCheckLimit,
		CacheLockCheckDelay: defaultCacheLockCheckDelay,
		TokensCacheLifeTime: defaultTokensCacheLifeTime,
		TokenRetryAttempts:  defaultTokenRetryAttempts,
		TokenRetryDelay:     defaultTokenRetryDelay,
		RequestTimeout:      defaultRequestTimeout,
		ResolveWorkers:      defaultResolveWorkers,
	}
}

// LockWait is the longest a caller waits for an in-flight token fetch.
func (c Config) LockWait() time.Duration {
	return time.Duration(c.CacheLockCheckLimit) * c.CacheLockCheckDelay
}

// Resolve fills defaults, resolves the network endpoints against networks and validates the result.
// A nil networks table means DefaultNetworks.
func (c Config) Resolve(networks map[Network]Endpoints) (Config, error) {
	if networks == nil {
		networks = DefaultNetworks()
	}
	d := Default()

	if c.Network == "" {
		c.Network = d.Network
	}
	if c.Period <= 0 {
		c.Period = d.Period
	}
	if c.PeriodCeiling <= 0 {
		c.PeriodCeiling = d.PeriodCeiling
	}
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
	if c.MaxErrorCount < 0 {
		c.MaxErrorCount = 0
	}
	if c.CacheLockCheckLimit <= 0 {
		c.CacheLockCheckLimit = d.CacheLockCheckLimit
	}
	if c.CacheLockCheckDelay <= 0 {
		c.CacheLockCheckDelay = d.CacheLockCheckDelay
	}
	if c.TokensCacheLifeTime <= 0 {
		c.TokensCacheLifeTime = d.TokensCacheLifeTime
	}
	if c.TokenRetryAttempts <= 0 {
		c.TokenRetryAttempts = d.TokenRetryAttempts
	}
	if c.TokenRetryDelay < 0 {
		c.TokenRetryDelay = 0
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = d.RequestTimeout
	}
	if c.RequestsPerSecond < 0 {
		c.RequestsPerSecond = 0
	}
	if c.ResolveWorkers <= 0 {
		c.ResolveWorkers = d.ResolveWorkers
	}

	if c.APIKey == "" {
		return Config{}, ErrMissingAPIKey
	}

	endpoints, ok := networks[c.Network]
	if !ok {
		return Config{}, fmt.Errorf("%w %q", model.ErrUnknownNetwork, c.Network)
	}
	if c.Network != Custom {
		c.APIURL = endpoints.API
		c.MonitorURL = endpoints.Monitor
	}
	if c.APIURL == "" {
		return Config{}, fmt.Errorf("%w: api uri is not set", model.ErrMissingCustomURI)
	}
	if c.MonitorURL == "" {
		return Config{}, fmt.Errorf("%w: monitor uri is not set", model.ErrMissingCustomURI)
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	c.MonitorURL = strings.TrimRight(c.MonitorURL, "/")

	return c, nil
}

// Validate resolves c against DefaultNetworks.
func (c Config) Validate() (Config, error) {
	return c.Resolve(nil)
}
