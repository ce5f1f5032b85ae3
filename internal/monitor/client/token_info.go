package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
	"github.com/goodnatureofminers/poolmonitor-backend/pkg/safe"
)

// tokenInfoResponse mirrors getTokenInfo. decimals may come as a string and
// price is either an object or false.
type tokenInfoResponse struct {
	Address  string          `json:"address"`
	Name     string          `json:"name"`
	Symbol   string          `json:"symbol"`
	Decimals model.Amount    `json:"decimals"`
	Price    json.RawMessage `json:"price"`
}

func (r tokenInfoResponse) toModel(address string) (model.TokenInfo, error) {
	info := model.TokenInfo{
		Address: address,
		Name:    r.Name,
		Symbol:  r.Symbol,
	}
	if r.Decimals != "" {
		d, err := safe.ParseUint8(string(r.Decimals))
		if err != nil {
			return model.TokenInfo{}, fmt.Errorf("token decimals %q: %w", r.Decimals, err)
		}
		info.Decimals = d
	}
	rate, err := parseRate(r.Price)
	if err != nil {
		return model.TokenInfo{}, err
	}
	info.Rate = rate
	return info, nil
}

func parseRate(raw json.RawMessage) (*float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, nil
	}
	var price struct {
		Rate json.RawMessage `json:"rate"`
	}
	if err := json.Unmarshal(raw, &price); err != nil {
		return nil, fmt.Errorf("token price: %w", err)
	}
	var rate model.Amount
	if len(price.Rate) == 0 || bytes.Equal(price.Rate, []byte("false")) {
		return nil, nil
	}
	if err := json.Unmarshal(price.Rate, &rate); err != nil {
		return nil, fmt.Errorf("token rate: %w", err)
	}
	if rate == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(string(rate), 64)
	if err != nil {
		return nil, fmt.Errorf("token rate %q: %w", rate, err)
	}
	if v == 0 {
		return nil, nil
	}
	return &v, nil
}
