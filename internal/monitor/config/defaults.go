package config

import "time"

const (
	defaultPeriod              = 300 * time.Second
	defaultPeriodCeiling       = 360000 * time.Second
	defaultInterval            = 60 * time.Second
	defaultCacheLockCheckLimit = 100
	defaultCacheLockCheckDelay = 100 * time.Millisecond
	defaultTokensCacheLifeTime = 600000 * time.Millisecond
	defaultTokenRetryAttempts  = 3
	defaultTokenRetryDelay     = 1 * time.Second
	defaultRequestTimeout      = 30000 * time.Millisecond
	defaultResolveWorkers      = 8
)
