// Package quote provides current prices for the instruments of a portfolio.
package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// Source returns the current price of tickers.
//
// A Source is best effort: tickers it has no price for are missing from the
// result. The error reports the tickers that failed, possibly along with a
// partial result.
type Source interface {
	Quotes(ctx context.Context, tickers []string) (map[string]decimal.Decimal, error)
}

// Static is a Source from a fixed set of prices.
type Static map[string]decimal.Decimal

// Quotes implements Source.
func (s Static) Quotes(_ context.Context, tickers []string) (map[string]decimal.Decimal, error) {
	quotes := make(map[string]decimal.Decimal)
	for _, t := range tickers {
		if p, ok := s[t]; ok {
			quotes[t] = p
		}
	}
	return quotes, nil
}

// Chain queries sources in order; each ticker is priced by the first source
// that has it.
type Chain []Source

// Quotes implements Source.
func (c Chain) Quotes(ctx context.Context, tickers []string) (map[string]decimal.Decimal, error) {
	quotes := make(map[string]decimal.Decimal)
	var errs []error
	missing := tickers
	for _, s := range c {
		if len(missing) == 0 {
			break
		}
		q, err := s.Quotes(ctx, missing)
		if err != nil {
			errs = append(errs, err)
		}
		maps.Copy(quotes, q)
		var next []string
		for _, t := range missing {
			if _, ok := quotes[t]; !ok {
				next = append(next, t)
			}
		}
		missing = next
	}
	return quotes, errors.Join(errs...)
}

// LoadPrices reads manual prices from a JSON file: an object of ticker to
// price. A missing file has no prices.
func LoadPrices(path string) (map[string]decimal.Decimal, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]decimal.Decimal{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read prices: %w", err)
	}
	prices := make(map[string]decimal.Decimal)
	if err := json.Unmarshal(data, &prices); err != nil {
		return nil, fmt.Errorf("cannot decode prices %q: %w", path, err)
	}
	normalized := make(map[string]decimal.Decimal, len(prices))
	for t, p := range prices {
		if p.IsNegative() {
			return nil, fmt.Errorf("invalid price %s for %s in %q", p, t, path)
		}
		normalized[strings.ToUpper(t)] = p
	}
	return normalized, nil
}

// SavePrices writes manual prices to a JSON file.
func SavePrices(path string, prices map[string]decimal.Decimal) error {
	data, err := json.MarshalIndent(prices, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode prices: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot save prices: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("cannot save prices: %w", err)
	}
	return nil
}
