package types

import (
	"math"
	"time"
)

// Table 日期×标的 的二维数据表
// 价格表、收益表、权重表共用同一结构，行对应日期，列对应标的
type Table struct {
	Dates   []time.Time
	Symbols []string
	Values  [][]float64
}

// NewTable 创建数据表，所有单元格初始化为 NaN (表示缺失)
func NewTable(dates []time.Time, symbols []string) *Table {
	values := make([][]float64, len(dates))
	for i := range values {
		row := make([]float64, len(symbols))
		for j := range row {
			row[j] = math.NaN()
		}
		values[i] = row
	}
	return &Table{
		Dates:   dates,
		Symbols: symbols,
		Values:  values,
	}
}

// NumRows 行数 (交易日数量)
func (t *Table) NumRows() int {
	return len(t.Dates)
}

// NumCols 列数 (标的数量)
func (t *Table) NumCols() int {
	return len(t.Symbols)
}

// SymbolIndex 查找标的所在列
func (t *Table) SymbolIndex(symbol string) (int, bool) {
	for j, s := range t.Symbols {
		if s == symbol {
			return j, true
		}
	}
	return 0, false
}

// Column 提取单个标的的整列数据
func (t *Table) Column(symbol string) []float64 {
	j, ok := t.SymbolIndex(symbol)
	if !ok {
		return nil
	}
	col := make([]float64, len(t.Values))
	for i, row := range t.Values {
		col[i] = row[j]
	}
	return col
}

// SliceFrom 截取指定日期 (含) 之后的子表，底层数据共享
func (t *Table) SliceFrom(start time.Time) *Table {
	idx := len(t.Dates)
	for i, d := range t.Dates {
		if !d.Before(start) {
			idx = i
			break
		}
	}
	return &Table{
		Dates:   t.Dates[idx:],
		Symbols: t.Symbols,
		Values:  t.Values[idx:],
	}
}

// PctChange 计算逐日简单收益率表，首行填 0
func (t *Table) PctChange() *Table {
	out := NewTable(t.Dates, t.Symbols)
	for i := range t.Values {
		for j := range t.Values[i] {
			if i == 0 {
				out.Values[i][j] = 0
				continue
			}
			prev := t.Values[i-1][j]
			if prev == 0 {
				out.Values[i][j] = 0
				continue
			}
			out.Values[i][j] = (t.Values[i][j] - prev) / prev
		}
	}
	return out
}

// RowSum 指定行所有列的合计，NaN 按 0 处理
func (t *Table) RowSum(i int) float64 {
	sum := 0.0
	for _, v := range t.Values[i] {
		if !math.IsNaN(v) {
			sum += v
		}
	}
	return sum
}

// BacktestConfig 回测配置
type BacktestConfig struct {
	FullStart     time.Time // 基准全区间起点
	FullEnd       time.Time
	StrategyStart time.Time // 策略区间起点 (全区间的子区间)
	Symbols       []string
	Benchmark     string
}

// StrategyConfig 策略配置
type StrategyConfig struct {
	Name           string
	Type           string
	Lookback       int     // 波动率回看窗口 (交易日)
	MomentumWindow int     // 动量回看窗口 (交易日)
	MomentumWeight float64 // 动量成分混合权重 [0,1]
}

// ScoringConfig 评分配置
type ScoringConfig struct {
	SharpeThreshold   float64 // 问题4.1的夏普比率阈值
	Points            int     // 每个问题的分值
	PositionTolerance float64 // 无杠杆检查的容差 (参考实现为1.01)
}

// StrategyResult 策略计算结果: 权重表 + 组合日收益序列
type StrategyResult struct {
	Weights          *Table
	Returns          *Table    // 资产日收益表
	PortfolioReturns []float64 // 组合日收益 (权重×收益 按行求和)
}

// RunSummary 单次运行摘要 (用于JSON导出)
type RunSummary struct {
	StrategyName    string    `json:"strategy_name"`
	Benchmark       string    `json:"benchmark"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	TradingDays     int       `json:"trading_days"`
	SharpeStrategy  float64   `json:"sharpe_strategy"`
	SharpeBenchmark float64   `json:"sharpe_benchmark"`
}
