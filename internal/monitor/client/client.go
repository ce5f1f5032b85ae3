// Package client talks to the Bulk API monitor and the token API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/config"
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const (
	MethodGetPoolUpdates          = "getPoolUpdates"
	MethodGetPoolLastTransactions = "getPoolLastTransactions"
	MethodGetPoolLastOperations   = "getPoolLastOperations"
	MethodGetPoolAddresses        = "getPoolAddresses"
	MethodGetTokenInfo            = "getTokenInfo"
	MethodCreatePool              = "createPool"
	MethodDeletePool              = "deletePool"
	MethodAddPoolAddresses        = "addPoolAddresses"
	MethodDeletePoolAddresses     = "deletePoolAddresses"
	MethodClearPoolAddresses      = "clearPoolAddresses"
)

var updateMethods = map[string]struct{}{
	MethodGetPoolUpdates:          {},
	MethodGetPoolLastTransactions: {},
	MethodGetPoolLastOperations:   {},
}

var postMethods = map[string]struct{}{
	MethodCreatePool:          {},
	MethodDeletePool:          {},
	MethodAddPoolAddresses:    {},
	MethodDeletePoolAddresses: {},
	MethodClearPoolAddresses:  {},
}

const redactedKey = "xxx"

// Client is an instrumented Bulk API and token API client.
type Client struct {
	logger     *zap.Logger
	httpClient *http.Client
	limiter    ratelimit.Limiter
	metrics    Metrics
	apiURL     string
	monitorURL string
	apiKey     string

	mu     sync.RWMutex
	poolID string
}

// New builds a client for a resolved configuration.
func New(cfg config.Config, metrics Metrics, logger *zap.Logger) (*Client, error) {
	if metrics == nil {
		return nil, errors.New("monitor client metrics is required")
	}
	limiter := ratelimit.NewUnlimited()
	if cfg.RequestsPerSecond > 0 {
		limiter = ratelimit.New(cfg.RequestsPerSecond)
	}
	return &Client{
		logger:     logger.Named("monitorClient"),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		limiter:    limiter,
		metrics:    metrics,
		apiURL:     cfg.APIURL,
		monitorURL: cfg.MonitorURL,
		apiKey:     cfg.APIKey,
		poolID:     cfg.PoolID,
	}, nil
}

// PoolID returns the pool the client operates on.
func (c *Client) PoolID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.poolID
}

// SetPoolID switches the pool the client operates on.
func (c *Client) SetPoolID(poolID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.poolID = poolID
}

// GetPoolUpdates returns transactions, operations and the last solid block for the period (seconds).
// An empty or null body yields a nil update.
func (c *Client) GetPoolUpdates(ctx context.Context, period int64) (*model.RawUpdate, error) {
	var out *model.RawUpdate
	if err := c.getUpdates(ctx, MethodGetPoolUpdates, period, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPoolLastTransactions returns the pool transactions for the period (seconds).
func (c *Client) GetPoolLastTransactions(ctx context.Context, period int64) (map[string][]model.RawTransaction, error) {
	out := map[string][]model.RawTransaction{}
	if err := c.getUpdates(ctx, MethodGetPoolLastTransactions, period, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPoolLastOperations returns the pool operations for the period (seconds).
func (c *Client) GetPoolLastOperations(ctx context.Context, period int64) (map[string][]model.RawOperation, error) {
	out := map[string][]model.RawOperation{}
	if err := c.getUpdates(ctx, MethodGetPoolLastOperations, period, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUpdates calls one of the pool update methods by name.
func (c *Client) GetUpdates(ctx context.Context, method string, period int64) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.getUpdates(ctx, method, period, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getUpdates(ctx context.Context, method string, period int64, out any) error {
	if _, ok := updateMethods[method]; !ok {
		return fmt.Errorf("%w %s", model.ErrUnknownMethod, method)
	}
	poolID := c.PoolID()
	if poolID == "" {
		return model.ErrNoPoolConfigured
	}
	u := c.endpoint(c.monitorURL, method, poolID)
	q := u.Query()
	q.Set("apiKey", c.apiKey)
	q.Set("period", fmt.Sprint(period))
	u.RawQuery = q.Encode()

	return c.do(ctx, method, http.MethodGet, u, nil, "", out)
}

// GetTokenInfo loads token metadata. A non-token address yields an *model.APIError
// with code model.APIErrorNotToken wrapped in a *model.FetchError.
func (c *Client) GetTokenInfo(ctx context.Context, address string) (model.TokenInfo, error) {
	address = model.NormalizeAddress(address)
	u := c.endpoint(c.apiURL, MethodGetTokenInfo, address)
	q := u.Query()
	q.Set("apiKey", c.apiKey)
	u.RawQuery = q.Encode()

	var resp tokenInfoResponse
	if err := c.do(ctx, MethodGetTokenInfo, http.MethodGet, u, nil, "", &resp); err != nil {
		return model.TokenInfo{}, err
	}
	info, err := resp.toModel(address)
	if err != nil {
		return model.TokenInfo{}, &model.FetchError{URL: redact(u), Err: err}
	}
	return info, nil
}

// GetAddresses lists the addresses of the pool.
func (c *Client) GetAddresses(ctx context.Context) ([]string, error) {
	poolID := c.PoolID()
	if poolID == "" {
		return nil, model.ErrNoPoolConfigured
	}
	u := c.endpoint(c.monitorURL, MethodGetPoolAddresses, poolID)
	q := u.Query()
	q.Set("apiKey", c.apiKey)
	u.RawQuery = q.Encode()

	var resp struct {
		Addresses []string `json:"addresses"`
	}
	if err := c.do(ctx, MethodGetPoolAddresses, http.MethodGet, u, nil, "", &resp); err != nil {
		return nil, err
	}
	if resp.Addresses == nil {
		return []string{}, nil
	}
	return resp.Addresses, nil
}

// CreatePool creates a pool holding addresses, switches the client to it and returns its id.
func (c *Client) CreatePool(ctx context.Context, addresses []string) (string, error) {
	var resp struct {
		PoolID string `json:"poolId"`
	}
	if err := c.post(ctx, MethodCreatePool, addresses, &resp); err != nil {
		return "", err
	}
	if resp.PoolID == "" {
		return "", fmt.Errorf("%s: empty pool id in response", MethodCreatePool)
	}
	c.SetPoolID(resp.PoolID)
	return resp.PoolID, nil
}

// DeletePool deletes the current pool.
func (c *Client) DeletePool(ctx context.Context) error {
	return c.post(ctx, MethodDeletePool, nil, nil)
}

// AddAddresses adds addresses to the pool. An empty list is a no-op returning false.
func (c *Client) AddAddresses(ctx context.Context, addresses []string) (bool, error) {
	if len(addresses) == 0 {
		return false, nil
	}
	if err := c.post(ctx, MethodAddPoolAddresses, addresses, nil); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveAddresses removes addresses from the pool. An empty list is a no-op returning false.
func (c *Client) RemoveAddresses(ctx context.Context, addresses []string) (bool, error) {
	if len(addresses) == 0 {
		return false, nil
	}
	if err := c.post(ctx, MethodDeletePoolAddresses, addresses, nil); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveAllAddresses empties the pool.
func (c *Client) RemoveAllAddresses(ctx context.Context) error {
	return c.post(ctx, MethodClearPoolAddresses, nil, nil)
}

// Post calls one of the pool management methods by name.
func (c *Client) Post(ctx context.Context, method string, addresses []string) error {
	return c.post(ctx, method, addresses, nil)
}

func (c *Client) post(ctx context.Context, method string, addresses []string, out any) error {
	if _, ok := postMethods[method]; !ok {
		return fmt.Errorf("%w %s", model.ErrUnknownMethod, method)
	}
	poolID := c.PoolID()
	if method != MethodCreatePool && poolID == "" {
		return model.ErrNoPoolConfigured
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fields := [][2]string{{"apiKey", c.apiKey}}
	if method != MethodCreatePool {
		fields = append(fields, [2]string{"poolId", poolID})
	}
	if addresses != nil {
		fields = append(fields, [2]string{"addresses", strings.Join(addresses, ",")})
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return fmt.Errorf("%s: write form: %w", method, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: close form: %w", method, err)
	}

	u := c.endpoint(c.monitorURL, method)
	return c.do(ctx, method, http.MethodPost, u, &body, w.FormDataContentType(), out)
}

func (c *Client) endpoint(base string, parts ...string) *url.URL {
	u, err := url.Parse(base)
	if err != nil {
		u = &url.URL{Path: base}
	}
	for _, p := range parts {
		u = u.JoinPath(p)
	}
	return u
}

func (c *Client) do(ctx context.Context, method, httpMethod string, u *url.URL, body io.Reader, contentType string, out any) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe(method, err, started)
	}()

	safeURL := redact(u)
	c.limiter.Take()

	req, err := http.NewRequestWithContext(ctx, httpMethod, u.String(), body)
	if err != nil {
		return &model.FetchError{URL: safeURL, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &model.FetchError{URL: safeURL, Err: scrubURLError(err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &model.FetchError{URL: safeURL, Err: fmt.Errorf("read body: %w", err)}
	}
	c.logger.Debug("request finished",
		zap.String("method", method),
		zap.String("url", safeURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(started)),
	)

	if apiErr := parseAPIError(data); apiErr != nil {
		return &model.FetchError{URL: safeURL, Err: apiErr}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &model.FetchError{URL: safeURL, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &model.FetchError{URL: safeURL, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func parseAPIError(data []byte) *model.APIError {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || len(envelope.Error) == 0 {
		return nil
	}
	var apiErr model.APIError
	if err := json.Unmarshal(envelope.Error, &apiErr); err != nil {
		var msg string
		if json.Unmarshal(envelope.Error, &msg) == nil && msg != "" {
			return &model.APIError{Message: msg}
		}
		return nil
	}
	if apiErr.Code == 0 && apiErr.Message == "" {
		return nil
	}
	return &apiErr
}

func redact(u *url.URL) string {
	cp := *u
	q := cp.Query()
	if q.Has("apiKey") {
		q.Set("apiKey", redactedKey)
		cp.RawQuery = q.Encode()
	}
	return cp.String()
}

// scrubURLError drops the request URL from *url.Error so the api key never leaks into logs.
func scrubURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
