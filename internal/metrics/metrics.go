package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear 年化基数 (美股交易日)
const TradingDaysPerYear = 252

// Mean 日收益均值
func Mean(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	return stat.Mean(returns, nil)
}

// StdDev 日收益样本标准差
func StdDev(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	return stat.StdDev(returns, nil)
}

// AnnualReturn 年化收益率 (日均值 × 252)
func AnnualReturn(returns []float64) float64 {
	return Mean(returns) * TradingDaysPerYear
}

// AnnualVolatility 年化波动率 (日标准差 × √252)
func AnnualVolatility(returns []float64) float64 {
	return StdDev(returns) * math.Sqrt(TradingDaysPerYear)
}

// Sharpe 年化夏普比率，无风险利率按 0 处理
// Sharpe = mean / std × √252
func Sharpe(returns []float64) float64 {
	sd := StdDev(returns)
	if sd == 0 {
		return 0
	}
	return Mean(returns) / sd * math.Sqrt(TradingDaysPerYear)
}

// Sortino 年化索提诺比率，只对低于 0 的日收益计下行偏差
func Sortino(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	var downSquared float64
	for _, r := range returns {
		if r < 0 {
			downSquared += r * r
		}
	}
	downside := math.Sqrt(downSquared / float64(len(returns)))
	if downside == 0 {
		return 0
	}
	return Mean(returns) / downside * math.Sqrt(TradingDaysPerYear)
}

// CumulativeCurve 累计净值曲线 Π(1+r)，起点为第一日的 1+r
func CumulativeCurve(returns []float64) []float64 {
	curve := make([]float64, len(returns))
	acc := 1.0
	for i, r := range returns {
		acc *= 1 + r
		curve[i] = acc
	}
	return curve
}

// TotalReturn 区间累计收益率
func TotalReturn(returns []float64) float64 {
	curve := CumulativeCurve(returns)
	if len(curve) == 0 {
		return 0
	}
	return curve[len(curve)-1] - 1
}

// CAGR 复合年化增长率
func CAGR(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	final := TotalReturn(returns) + 1
	if final <= 0 {
		return -1
	}
	years := float64(len(returns)) / TradingDaysPerYear
	if years == 0 {
		return 0
	}
	return math.Pow(final, 1/years) - 1
}

// MaxDrawdown 最大回撤 (正数表示，0.25 = 从峰值回落25%)
func MaxDrawdown(returns []float64) float64 {
	curve := CumulativeCurve(returns)
	if len(curve) == 0 {
		return 0
	}
	maxDD := 0.0
	peak := curve[0]
	for _, v := range curve {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			dd := (peak - v) / peak
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// BestDay 最佳单日收益
func BestDay(returns []float64) float64 {
	best := 0.0
	for i, r := range returns {
		if i == 0 || r > best {
			best = r
		}
	}
	return best
}

// WorstDay 最差单日收益
func WorstDay(returns []float64) float64 {
	worst := 0.0
	for i, r := range returns {
		if i == 0 || r < worst {
			worst = r
		}
	}
	return worst
}

// WinRate 上涨交易日占比
func WinRate(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	wins := 0
	for _, r := range returns {
		if r > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(returns))
}
