package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/opsxjacky/RiskParity-backtest/internal/data"
	"github.com/opsxjacky/RiskParity-backtest/internal/metrics"
	"github.com/opsxjacky/RiskParity-backtest/internal/portfolio"
	"github.com/opsxjacky/RiskParity-backtest/internal/strategy"
	"github.com/opsxjacky/RiskParity-backtest/pkg/types"
)

// Engine 评分流水线
// 加载价格 → 在全区间和策略区间分别执行策略 → 产出两套结果供评分/报告/绘图使用
type Engine struct {
	config   types.BacktestConfig
	loader   data.Loader
	strategy strategy.WeightStrategy

	fullPrices     *types.Table
	strategyPrices *types.Table
	mp             *types.StrategyResult // 策略区间结果
	bmp            *types.StrategyResult // 全区间结果
}

// New 创建评分流水线
func New(config types.BacktestConfig) *Engine {
	return &Engine{config: config}
}

// SetDataLoader 设置数据加载器
func (e *Engine) SetDataLoader(loader data.Loader) {
	e.loader = loader
}

// SetStrategy 设置策略
func (e *Engine) SetStrategy(s strategy.WeightStrategy) {
	e.strategy = s
}

// Run 执行完整流水线
func (e *Engine) Run() error {
	// 验证配置
	if err := e.validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// 加载数据
	fmt.Printf("Loading data for symbols: %v\n", e.config.Symbols)
	fullPrices, err := e.loader.LoadPrices(e.config.Symbols, e.config.FullStart, e.config.FullEnd)
	if err != nil {
		return fmt.Errorf("failed to load prices: %w", err)
	}
	if fullPrices.NumRows() == 0 {
		return fmt.Errorf("no trading dates found")
	}

	e.fullPrices = fullPrices
	e.strategyPrices = fullPrices.SliceFrom(e.config.StrategyStart)

	fmt.Printf("Running backtest from %s to %s (%d trading days)\n",
		fullPrices.Dates[0].Format("2006-01-02"),
		fullPrices.Dates[fullPrices.NumRows()-1].Format("2006-01-02"),
		fullPrices.NumRows())

	// 两个区间分别执行策略
	manager := portfolio.NewManager(e.config.Benchmark)
	e.mp = manager.Run(e.strategyPrices, e.strategy)
	e.bmp = manager.Run(e.fullPrices, e.strategy)

	return nil
}

// validate 验证配置
func (e *Engine) validate() error {
	if e.loader == nil {
		return fmt.Errorf("data loader not set")
	}
	if e.strategy == nil {
		return fmt.Errorf("strategy not set")
	}
	if len(e.config.Symbols) == 0 {
		return fmt.Errorf("no symbols specified")
	}
	found := false
	for _, s := range e.config.Symbols {
		if s == e.config.Benchmark {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("benchmark %s not in symbol list", e.config.Benchmark)
	}
	return nil
}

// FullPrices 全区间价格表
func (e *Engine) FullPrices() *types.Table {
	return e.fullPrices
}

// StrategyPrices 策略区间价格表
func (e *Engine) StrategyPrices() *types.Table {
	return e.strategyPrices
}

// MP 策略区间结果
func (e *Engine) MP() *types.StrategyResult {
	return e.mp
}

// BMP 全区间结果
func (e *Engine) BMP() *types.StrategyResult {
	return e.bmp
}

// Summary 生成运行摘要
func (e *Engine) Summary() types.RunSummary {
	benchReturns := e.bmp.Returns.Column(e.config.Benchmark)
	return types.RunSummary{
		StrategyName:    e.strategy.Name(),
		Benchmark:       e.config.Benchmark,
		StartDate:       e.fullPrices.Dates[0],
		EndDate:         e.fullPrices.Dates[e.fullPrices.NumRows()-1],
		TradingDays:     e.fullPrices.NumRows(),
		SharpeStrategy:  metrics.Sharpe(e.bmp.PortfolioReturns),
		SharpeBenchmark: metrics.Sharpe(benchReturns),
	}
}

// ExportResults 导出运行摘要到JSON文件
func (e *Engine) ExportResults(filepath string) error {
	if e.mp == nil || e.bmp == nil {
		return fmt.Errorf("no results to export, run backtest first")
	}

	output, err := json.MarshalIndent(e.Summary(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.WriteFile(filepath, output, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("Results exported to: %s\n", filepath)
	return nil
}

// PrintSummary 打印运行摘要
func (e *Engine) PrintSummary() {
	if e.mp == nil || e.bmp == nil {
		fmt.Println("No results available")
		return
	}

	benchFull := e.bmp.Returns.Column(e.config.Benchmark)
	benchStrat := e.mp.Returns.Column(e.config.Benchmark)

	fmt.Println("\n========== Backtest Summary ==========")
	fmt.Printf("Strategy: %s\n", e.strategy.Name())
	fmt.Printf("Benchmark: %s\n", e.config.Benchmark)
	fmt.Printf("Full Period: %s to %s (%d trading days)\n",
		e.fullPrices.Dates[0].Format("2006-01-02"),
		e.fullPrices.Dates[e.fullPrices.NumRows()-1].Format("2006-01-02"),
		e.fullPrices.NumRows())
	if e.strategyPrices.NumRows() > 0 {
		fmt.Printf("Strategy Period: %s onwards (%d trading days)\n",
			e.strategyPrices.Dates[0].Format("2006-01-02"),
			e.strategyPrices.NumRows())
	}
	fmt.Printf("Sharpe (strategy period): %.2f vs %s %.2f\n",
		metrics.Sharpe(e.mp.PortfolioReturns), e.config.Benchmark, metrics.Sharpe(benchStrat))
	fmt.Printf("Sharpe (full period): %.2f vs %s %.2f\n",
		metrics.Sharpe(e.bmp.PortfolioReturns), e.config.Benchmark, metrics.Sharpe(benchFull))
	fmt.Println("========================================")
}
