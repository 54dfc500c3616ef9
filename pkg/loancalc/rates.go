package loancalc

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxRate caps every percentage the service stores (rates, effort ratios, fees).
var MaxRate = decimal.NewFromInt(100)

// RateTable maps a project type to its annual interest rate in percent.
type RateTable map[string]decimal.Decimal

// DefaultRates: corn and cattle are the lower-risk value chains.
func DefaultRates() RateTable {
	return RateTable{
		"corn":         decimal.NewFromInt(12),
		"cattle":       decimal.NewFromInt(12),
		"cassava":      decimal.NewFromInt(15),
		"poultry":      decimal.NewFromInt(15),
		"horticulture": decimal.NewFromInt(16),
		"other":        decimal.NewFromInt(18),
	}
}

func (t RateTable) Rate(projectType string) (decimal.Decimal, bool) {
	r, ok := t[strings.ToLower(projectType)]
	return r, ok
}

// ParseRateTable overlays "type=rate" pairs (comma separated) on top of base.
// An empty string returns a copy of base.
func ParseRateTable(raw string, base RateTable) (RateTable, error) {
	out := make(RateTable, len(base))
	for k, v := range base {
		out[k] = v
	}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("rate entry %q: want type=rate", pair)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("rate entry %q: %w", pair, err)
		}
		if rate.IsNegative() {
			return nil, fmt.Errorf("rate entry %q: negative rate", pair)
		}
		if rate.GreaterThan(MaxRate) {
			return nil, fmt.Errorf("rate entry %q: rate above %s", pair, MaxRate)
		}
		out[strings.ToLower(strings.TrimSpace(k))] = rate
	}
	return out, nil
}
