package judge

import (
	"fmt"

	"github.com/opsxjacky/RiskParity-backtest/internal/metrics"
	"github.com/opsxjacky/RiskParity-backtest/pkg/types"
)

// Judge 作业评分器
// 对策略结果执行仓位检查和夏普比率阈值检查，按固定分值计分
type Judge struct {
	config    types.ScoringConfig
	benchmark string
	mp        *types.StrategyResult // 策略区间结果
	bmp       *types.StrategyResult // 全区间结果
}

// New 创建评分器
func New(config types.ScoringConfig, benchmark string, mp, bmp *types.StrategyResult) *Judge {
	return &Judge{
		config:    config,
		benchmark: benchmark,
		mp:        mp,
		bmp:       bmp,
	}
}

// CheckPortfolioPosition 无杠杆检查: 每行权重合计不超过容差
func (j *Judge) CheckPortfolioPosition(weights *types.Table) bool {
	for i := 0; i < weights.NumRows(); i++ {
		if weights.RowSum(i) > j.config.PositionTolerance {
			fmt.Println("Portfolio Position Exceeds 1. No Leverage.")
			return false
		}
	}
	return true
}

// CheckSharpeAboveThreshold 问题4.1: 策略区间夏普比率超过阈值
func (j *Judge) CheckSharpeAboveThreshold() int {
	if !j.CheckPortfolioPosition(j.mp.Weights) {
		return 0
	}
	if metrics.Sharpe(j.mp.PortfolioReturns) > j.config.SharpeThreshold {
		fmt.Printf("Problem 4.1 Success - Get %d points\n", j.config.Points)
		return j.config.Points
	}
	fmt.Println("Problem 4.1 Fail")
	return 0
}

// CheckSharpeBeatsBenchmark 问题4.2: 全区间策略夏普比率超过基准买入持有
func (j *Judge) CheckSharpeBeatsBenchmark() int {
	if !j.CheckPortfolioPosition(j.mp.Weights) {
		return 0
	}
	benchReturns := j.bmp.Returns.Column(j.benchmark)
	if metrics.Sharpe(j.bmp.PortfolioReturns) > metrics.Sharpe(benchReturns) {
		fmt.Printf("Problem 4.2 Success - Get %d points\n", j.config.Points)
		return j.config.Points
	}
	fmt.Println("Problem 4.2 Fail")
	return 0
}

// CheckAll 汇总所有问题的得分
func (j *Judge) CheckAll() int {
	score := 0
	score += j.CheckSharpeAboveThreshold()
	score += j.CheckSharpeBeatsBenchmark()
	return score
}
