package portfolio

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsxjacky/RiskParity-backtest/internal/strategy"
	"github.com/opsxjacky/RiskParity-backtest/pkg/types"
)

func buildTable(symbols []string, rows [][]float64) *types.Table {
	dates := make([]time.Time, len(rows))
	base := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range dates {
		dates[i] = base.AddDate(0, 0, i)
	}
	table := types.NewTable(dates, symbols)
	for i := range rows {
		copy(table.Values[i], rows[i])
	}
	return table
}

func TestApplyExcludesBenchmark(t *testing.T) {
	weights := buildTable([]string{"A", "B", "SPY"}, [][]float64{
		{0.5, 0.5, 0},
	})
	returns := buildTable([]string{"A", "B", "SPY"}, [][]float64{
		{0.02, -0.01, 0.10},
	})

	got := NewManager("SPY").Apply(weights, returns)
	require.Len(t, got, 1)
	// SPY 列不参与: 0.5×0.02 + 0.5×(-0.01)
	assert.InDelta(t, 0.005, got[0], 1e-12)
}

func TestApplySkipsNaN(t *testing.T) {
	weights := buildTable([]string{"A", "B", "SPY"}, [][]float64{
		{math.NaN(), 0.5, 0},
	})
	returns := buildTable([]string{"A", "B", "SPY"}, [][]float64{
		{0.02, 0.01, 0},
	})

	got := NewManager("SPY").Apply(weights, returns)
	assert.InDelta(t, 0.005, got[0], 1e-12)
}

func TestRunWithEqualWeight(t *testing.T) {
	prices := buildTable([]string{"A", "B", "SPY"}, [][]float64{
		{100, 100, 100},
		{102, 101, 100.5},
		{104.04, 99.99, 101},
	})

	result := NewManager("SPY").Run(prices, strategy.NewEqualWeight(types.StrategyConfig{}))
	require.NotNil(t, result.Weights)
	require.NotNil(t, result.Returns)
	require.Len(t, result.PortfolioReturns, 3)

	// 首行收益为0
	assert.Equal(t, 0.0, result.PortfolioReturns[0])
	// 第1行: 0.5×0.02 + 0.5×0.01
	assert.InDelta(t, 0.015, result.PortfolioReturns[1], 1e-12)
	// 第2行: 0.5×0.02 + 0.5×(-0.01)
	assert.InDelta(t, 0.005, result.PortfolioReturns[2], 1e-9)
}
