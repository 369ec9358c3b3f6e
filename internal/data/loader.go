package data

import (
	"sort"
	"time"

	"github.com/opsxjacky/RiskParity-backtest/pkg/types"
)

// Loader 数据加载器接口
type Loader interface {
	// LoadPrices 加载调整后收盘价并对齐成价格表
	LoadPrices(symbols []string, start, end time.Time) (*types.Table, error)

	// SourceType 支持的数据源类型
	SourceType() string
}

// pricePoint 单日价格
type pricePoint struct {
	date  time.Time
	price float64
}

// dateKey 归一化到UTC零点的日期键
func dateKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// alignTable 取所有标的共有的交易日构建价格表
// 任一标的缺失的日期整行丢弃 (对应参考流程的 dropna)
func alignTable(symbols []string, series map[string][]pricePoint) *types.Table {
	bySymbol := make(map[string]map[time.Time]float64, len(symbols))
	for _, symbol := range symbols {
		prices := make(map[time.Time]float64, len(series[symbol]))
		for _, p := range series[symbol] {
			if p.price > 0 {
				prices[dateKey(p.date)] = p.price
			}
		}
		bySymbol[symbol] = prices
	}

	// 交集日期
	var dates []time.Time
	if len(symbols) > 0 {
		for d := range bySymbol[symbols[0]] {
			common := true
			for _, symbol := range symbols[1:] {
				if _, ok := bySymbol[symbol][d]; !ok {
					common = false
					break
				}
			}
			if common {
				dates = append(dates, d)
			}
		}
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	table := types.NewTable(dates, symbols)
	for i, d := range dates {
		for j, symbol := range symbols {
			table.Values[i][j] = bySymbol[symbol][d]
		}
	}
	return table
}
