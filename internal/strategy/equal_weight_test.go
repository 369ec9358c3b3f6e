package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsxjacky/RiskParity-backtest/pkg/types"
)

func TestEqualWeightAllRows(t *testing.T) {
	prices := makeTable([]string{"AAA", "BBB", "SPY"}, threeAssetPrices())
	weights := NewEqualWeight(types.StrategyConfig{}).CalculateWeights(prices, "SPY")

	for i := 0; i < weights.NumRows(); i++ {
		assert.Equal(t, 0.5, weights.Values[i][0])
		assert.Equal(t, 0.5, weights.Values[i][1])
		assert.Equal(t, 0.0, weights.Values[i][2])
	}
}

func TestEqualWeightName(t *testing.T) {
	assert.Equal(t, "EqualWeight", NewEqualWeight(types.StrategyConfig{}).Name())
	assert.Equal(t, "Baseline", NewEqualWeight(types.StrategyConfig{Name: "Baseline"}).Name())
}
