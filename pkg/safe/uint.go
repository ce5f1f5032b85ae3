// Package safe provides checked integer conversions for values decoded from remote payloads.
package safe

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Integer lists the integer kinds accepted by the conversions.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Uint64 converts an integer to uint64, rejecting negatives.
func Uint64[T Integer](v T) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("value %d out of uint64 range", v)
	}
	return uint64(v), nil
}

// Uint8 converts an integer to uint8 with range validation.
func Uint8[T Integer](v T) (uint8, error) {
	if v < 0 || uint64(v) > math.MaxUint8 {
		return 0, fmt.Errorf("value %d out of uint8 range", v)
	}
	return uint8(v), nil
}

// ParseUint8 parses a decimal string such as token decimals ("18") into uint8.
func ParseUint8(s string) (uint8, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	return Uint8(n)
}
