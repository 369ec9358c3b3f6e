package strategy

import (
	"github.com/opsxjacky/RiskParity-backtest/pkg/types"
)

// WeightStrategy 权重策略接口
type WeightStrategy interface {
	// Name 策略名称
	Name() string

	// CalculateWeights 为整段价格历史计算逐日权重表
	// 排除列 (基准) 的权重恒为 0，其余列每行合计为 1
	CalculateWeights(prices *types.Table, exclude string) *types.Table
}
