package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPoolConfigured is returned when an operation needs a pool id and none is set.
	ErrNoPoolConfigured = errors.New("no pool id configured: set the pool id or create a new pool")
	// ErrAlreadyWatching is returned by Watch while a watch session is active.
	ErrAlreadyWatching = errors.New("watching is already started, unwatch first")
	// ErrInvalidCheckpoint is returned when a checkpoint blob cannot be restored.
	ErrInvalidCheckpoint = errors.New("invalid checkpoint")
	// ErrUnknownNetwork is returned for a network name missing from the network table.
	ErrUnknownNetwork = errors.New("unknown network")
	// ErrMissingCustomURI is returned when the custom network lacks an api or monitor uri.
	ErrMissingCustomURI = errors.New("custom network requires api and monitor uri")
	// ErrUnknownMethod is returned for Bulk API methods the client does not support.
	ErrUnknownMethod = errors.New("unknown api method")
)

// FetchError wraps a transport failure together with the (redacted) request URL.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("request failed: %v (%s)", e.Err, e.URL)
}

func (e *FetchError) Unwrap() error { return e.Err }

// APIError is an error object returned in a Bulk API or token API response body.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// APIErrorNotToken is the token API code for an address that is not a token contract.
const APIErrorNotToken = 150

// TokenResolutionDegradedError reports that token metadata was served from a fallback.
type TokenResolutionDegradedError struct {
	Address string
	Reason  string
	Err     error
}

func (e *TokenResolutionDegradedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token %s degraded: %s: %v", e.Address, e.Reason, e.Err)
	}
	return fmt.Sprintf("token %s degraded: %s", e.Address, e.Reason)
}

func (e *TokenResolutionDegradedError) Unwrap() error { return e.Err }
