package quote

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failing struct{}

func (failing) Quotes(context.Context, []string) (map[string]decimal.Decimal, error) {
	return nil, errors.New("offline")
}

func TestChain(t *testing.T) {
	chain := Chain{
		Static{"ABC": decimal.NewFromInt(10)},
		failing{},
		Static{"ABC": decimal.NewFromInt(99), "XYZ": decimal.NewFromInt(20)},
	}
	quotes, err := chain.Quotes(context.Background(), []string{"ABC", "XYZ", "NONE"})
	assert.ErrorContains(t, err, "offline")
	require.Len(t, quotes, 2)
	assert.True(t, quotes["ABC"].Equal(decimal.NewFromInt(10)), "first source wins, got %v", quotes["ABC"])
	assert.True(t, quotes["XYZ"].Equal(decimal.NewFromInt(20)))
}

func TestPrices_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.json")

	prices, err := LoadPrices(path)
	require.NoError(t, err, "a missing file has no prices")
	assert.Empty(t, prices)

	want := map[string]decimal.Decimal{"ABC": decimal.RequireFromString("12.34"), "XYZ": decimal.NewFromInt(5)}
	require.NoError(t, SavePrices(path, want))

	got, err := LoadPrices(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for ticker, p := range want {
		assert.True(t, got[ticker].Equal(p), "LoadPrices()[%s] = %v, want %v", ticker, got[ticker], p)
	}
}
