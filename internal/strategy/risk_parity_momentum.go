package strategy

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/opsxjacky/RiskParity-backtest/pkg/types"
)

const (
	tradingDays = 252  // 年化基数
	volFloor    = 1e-6 // 波动率下限，防止倒数爆炸
	minMaxEps   = 1e-6 // 动量min-max归一化的分母保护
)

// RiskParityMomentum 风险平价+动量混合策略
// 逐日滚动计算: 回看窗口内波动率倒数做风险平价权重，
// 动量窗口内平均收益做动量权重，按混合系数加权后归一化
type RiskParityMomentum struct {
	name           string
	lookback       int
	momentumWindow int
	momentumWeight float64
}

// NewRiskParityMomentum 创建风险平价+动量策略
func NewRiskParityMomentum(config types.StrategyConfig) *RiskParityMomentum {
	lookback := config.Lookback
	if lookback <= 0 {
		lookback = 50
	}
	momentumWindow := config.MomentumWindow
	if momentumWindow <= 0 {
		momentumWindow = 20
	}
	momentumWeight := config.MomentumWeight
	if momentumWeight < 0 {
		momentumWeight = 0
	}
	if momentumWeight > 1 {
		momentumWeight = 1
	}

	return &RiskParityMomentum{
		name:           config.Name,
		lookback:       lookback,
		momentumWindow: momentumWindow,
		momentumWeight: momentumWeight,
	}
}

// Name 返回策略名称
func (s *RiskParityMomentum) Name() string {
	if s.name != "" {
		return s.name
	}
	return "RiskParityMomentum"
}

// CalculateWeights 计算逐日权重表
// 暖机期 (不足最大窗口长度) 按等权分配，之后进入滚动计算
func (s *RiskParityMomentum) CalculateWeights(prices *types.Table, exclude string) *types.Table {
	returns := prices.PctChange()
	weights := types.NewTable(prices.Dates, prices.Symbols)

	excludeIdx, hasExclude := prices.SymbolIndex(exclude)

	// 资产列 = 除基准外的所有列
	assetCols := make([]int, 0, prices.NumCols())
	for j := range prices.Symbols {
		if hasExclude && j == excludeIdx {
			continue
		}
		assetCols = append(assetCols, j)
	}

	numAssets := len(assetCols)
	rows := prices.NumRows()
	if numAssets == 0 {
		fillForward(weights)
		fillZero(weights)
		return weights
	}

	// 预提取各资产的收益列，滚动窗口直接切片
	cols := make([][]float64, numAssets)
	for k, j := range assetCols {
		col := make([]float64, rows)
		for i := 0; i < rows; i++ {
			col[i] = returns.Values[i][j]
		}
		cols[k] = col
	}

	warmup := s.lookback
	if s.momentumWindow > warmup {
		warmup = s.momentumWindow
	}

	// 暖机期: 等权
	equalWeight := 1.0 / float64(numAssets)
	for i := 0; i < warmup && i < rows; i++ {
		for _, j := range assetCols {
			weights.Values[i][j] = equalWeight
		}
		if hasExclude {
			weights.Values[i][excludeIdx] = 0
		}
	}

	for i := warmup; i < rows; i++ {
		// 风险平价成分: 年化波动率倒数归一化
		invVol := make([]float64, numAssets)
		invVolSum := 0.0
		for k := range assetCols {
			vol := stat.StdDev(cols[k][i-s.lookback:i], nil) * math.Sqrt(tradingDays)
			if vol < volFloor {
				vol = volFloor
			}
			invVol[k] = 1 / vol
			invVolSum += invVol[k]
		}

		// 动量成分: 年化平均收益做min-max归一化
		momentum := make([]float64, numAssets)
		momMin, momMax := math.Inf(1), math.Inf(-1)
		for k := range assetCols {
			momentum[k] = stat.Mean(cols[k][i-s.momentumWindow:i], nil) * tradingDays
			if momentum[k] < momMin {
				momMin = momentum[k]
			}
			if momentum[k] > momMax {
				momMax = momentum[k]
			}
		}
		momSum := 0.0
		for k := range momentum {
			momentum[k] = (momentum[k] - momMin) / (momMax - momMin + minMaxEps)
			momSum += momentum[k]
		}

		// 混合并归一化; momSum 为 0 时产生 NaN 行，交给后面的向前填充处理
		blended := make([]float64, numAssets)
		blendedSum := 0.0
		for k := range assetCols {
			rp := invVol[k] / invVolSum
			mom := momentum[k] / momSum
			blended[k] = (1-s.momentumWeight)*rp + s.momentumWeight*mom
			blendedSum += blended[k]
		}

		for k, j := range assetCols {
			weights.Values[i][j] = blended[k] / blendedSum
		}
		if hasExclude {
			weights.Values[i][excludeIdx] = 0
		}
	}

	// 先按列向前填充缺口，剩余空白补 0
	fillForward(weights)
	fillZero(weights)
	return weights
}

// fillForward 按列向前填充 NaN
func fillForward(t *types.Table) {
	for j := range t.Symbols {
		last := math.NaN()
		for i := range t.Values {
			if math.IsNaN(t.Values[i][j]) {
				t.Values[i][j] = last
			} else {
				last = t.Values[i][j]
			}
		}
	}
}

// fillZero 将剩余 NaN 置 0
func fillZero(t *types.Table) {
	for i := range t.Values {
		for j := range t.Values[i] {
			if math.IsNaN(t.Values[i][j]) {
				t.Values[i][j] = 0
			}
		}
	}
}
