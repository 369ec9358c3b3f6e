package portfolio

import (
	"math"

	"github.com/opsxjacky/RiskParity-backtest/internal/strategy"
	"github.com/opsxjacky/RiskParity-backtest/pkg/types"
)

// Manager 组合收益计算器
// 把策略产出的权重表作用到资产收益表上，得到组合日收益序列
type Manager struct {
	exclude string
}

// NewManager 创建组合收益计算器，exclude 为基准列
func NewManager(exclude string) *Manager {
	return &Manager{exclude: exclude}
}

// Run 对整段价格历史执行策略并计算组合收益
func (m *Manager) Run(prices *types.Table, s strategy.WeightStrategy) *types.StrategyResult {
	weights := s.CalculateWeights(prices, m.exclude)
	returns := prices.PctChange()

	return &types.StrategyResult{
		Weights:          weights,
		Returns:          returns,
		PortfolioReturns: m.Apply(weights, returns),
	}
}

// Apply 逐行计算 Σ 权重×收益 (排除基准列)
func (m *Manager) Apply(weights, returns *types.Table) []float64 {
	excludeIdx, hasExclude := returns.SymbolIndex(m.exclude)

	portfolio := make([]float64, returns.NumRows())
	for i := range returns.Values {
		sum := 0.0
		for j := range returns.Values[i] {
			if hasExclude && j == excludeIdx {
				continue
			}
			w := weights.Values[i][j]
			r := returns.Values[i][j]
			if math.IsNaN(w) || math.IsNaN(r) {
				continue
			}
			sum += w * r
		}
		portfolio[i] = sum
	}
	return portfolio
}
