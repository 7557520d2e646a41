package auth

import (
	"strconv"
	"strings"
	"time"
)

// FallbackTTL is used when a TTL string cannot be parsed.
const FallbackTTL = 15 * time.Minute

// ParseTTL reads lifetimes like "30s", "15m", "1h" or "7d". A bare number is
// seconds. Anything else, including non-positive values, yields FallbackTTL.
func ParseTTL(s string) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return FallbackTTL
	}

	unit := time.Second
	num := s
	switch s[len(s)-1] {
	case 's':
		num = s[:len(s)-1]
	case 'm':
		unit, num = time.Minute, s[:len(s)-1]
	case 'h':
		unit, num = time.Hour, s[:len(s)-1]
	case 'd':
		unit, num = 24*time.Hour, s[:len(s)-1]
	}

	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil || n <= 0 {
		return FallbackTTL
	}
	return time.Duration(n) * unit
}
