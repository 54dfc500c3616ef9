package id

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewReference returns a human-readable reference such as "AC-20261019-7F3A9C",
// printed on application receipts and quoted by farmers over the phone.
func NewReference(prefix string, at time.Time) string {
	b := make([]byte, 3)
	_, _ = rand.Read(b)
	return prefix + "-" + at.UTC().Format("20060102") + "-" + strings.ToUpper(hex.EncodeToString(b))
}
