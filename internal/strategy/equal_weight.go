package strategy

import (
	"github.com/opsxjacky/RiskParity-backtest/pkg/types"
)

// EqualWeight 等权策略
// 全程按 1/N 分配，作为混合策略的对照基准
type EqualWeight struct {
	name string
}

// NewEqualWeight 创建等权策略
func NewEqualWeight(config types.StrategyConfig) *EqualWeight {
	return &EqualWeight{name: config.Name}
}

// Name 返回策略名称
func (s *EqualWeight) Name() string {
	if s.name != "" {
		return s.name
	}
	return "EqualWeight"
}

// CalculateWeights 计算逐日权重表，每行等权
func (s *EqualWeight) CalculateWeights(prices *types.Table, exclude string) *types.Table {
	weights := types.NewTable(prices.Dates, prices.Symbols)

	excludeIdx, hasExclude := prices.SymbolIndex(exclude)
	numAssets := prices.NumCols()
	if hasExclude {
		numAssets--
	}
	if numAssets <= 0 {
		fillZero(weights)
		return weights
	}

	equalWeight := 1.0 / float64(numAssets)
	for i := range weights.Values {
		for j := range weights.Values[i] {
			if hasExclude && j == excludeIdx {
				weights.Values[i][j] = 0
				continue
			}
			weights.Values[i][j] = equalWeight
		}
	}
	return weights
}
