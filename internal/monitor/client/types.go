package client

import "time"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics records the outcome of every outbound request.
	Metrics interface {
		Observe(method string, err error, started time.Time)
	}
)
