package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSharpe(t *testing.T) {
	// mean=0.02, 样本标准差=0.01 → 2×√252
	returns := []float64{0.01, 0.02, 0.03}
	expected := 2 * math.Sqrt(252)
	assert.InDelta(t, expected, Sharpe(returns), 1e-9)
}

func TestSharpeZeroVolatility(t *testing.T) {
	assert.Equal(t, 0.0, Sharpe([]float64{0.01, 0.01, 0.01}))
	assert.Equal(t, 0.0, Sharpe(nil))
	assert.Equal(t, 0.0, Sharpe([]float64{0.01}))
}

func TestSortino(t *testing.T) {
	returns := []float64{0.02, -0.01, 0.03, -0.02}
	// 下行偏差只计负收益: √((0.0001+0.0004)/4)
	downside := math.Sqrt(0.000125)
	expected := 0.005 / downside * math.Sqrt(252)
	assert.InDelta(t, expected, Sortino(returns), 1e-9)

	// 无下行收益时返回0
	assert.Equal(t, 0.0, Sortino([]float64{0.01, 0.02, 0.03}))
}

func TestCumulativeCurve(t *testing.T) {
	curve := CumulativeCurve([]float64{0.1, -0.5})
	assert.InDelta(t, 1.1, curve[0], 1e-12)
	assert.InDelta(t, 0.55, curve[1], 1e-12)
}

func TestTotalReturn(t *testing.T) {
	assert.InDelta(t, -0.45, TotalReturn([]float64{0.1, -0.5}), 1e-12)
	assert.Equal(t, 0.0, TotalReturn(nil))
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name     string
		returns  []float64
		expected float64
	}{
		{"no drawdown", []float64{0.01, 0.02, 0.03}, 0},
		{"half from peak", []float64{0.1, -0.5, 0.1}, 0.5},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, MaxDrawdown(tt.returns), 1e-12)
		})
	}
}

func TestCAGR(t *testing.T) {
	// 252天翻倍 → 年化100%
	returns := make([]float64, 252)
	daily := math.Pow(2, 1.0/252) - 1
	for i := range returns {
		returns[i] = daily
	}
	assert.InDelta(t, 1.0, CAGR(returns), 1e-9)
}

func TestAnnualization(t *testing.T) {
	returns := []float64{0.01, 0.02, 0.03}
	assert.InDelta(t, 0.02*252, AnnualReturn(returns), 1e-12)
	assert.InDelta(t, 0.01*math.Sqrt(252), AnnualVolatility(returns), 1e-12)
}

func TestBestWorstWinRate(t *testing.T) {
	returns := []float64{0.02, -0.01, 0.03, -0.02}
	assert.Equal(t, 0.03, BestDay(returns))
	assert.Equal(t, -0.02, WorstDay(returns))
	assert.Equal(t, 0.5, WinRate(returns))
	assert.Equal(t, 0.0, WinRate(nil))
}
