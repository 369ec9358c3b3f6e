package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/opsxjacky/RiskParity-backtest/pkg/types"
)

// Config 配置文件结构
type Config struct {
	Backtest BacktestSection `yaml:"backtest"`
	Assets   []AssetConfig   `yaml:"assets"`
	Strategy StrategySection `yaml:"strategy"`
	Scoring  ScoringSection  `yaml:"scoring"`
	Output   OutputSection   `yaml:"output"`
}

// BacktestSection 回测配置
type BacktestSection struct {
	FullStart     string `yaml:"full_start"`
	FullEnd       string `yaml:"full_end"`
	StrategyStart string `yaml:"strategy_start"`
	Benchmark     string `yaml:"benchmark"`
	Source        string `yaml:"source"` // yahoo | csv
	DataDir       string `yaml:"data_dir"`
}

// AssetConfig 资产配置
type AssetConfig struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
}

// StrategySection 策略配置
type StrategySection struct {
	Type   string         `yaml:"type"`
	Name   string         `yaml:"name"`
	Params StrategyParams `yaml:"params"`
}

// StrategyParams 策略参数
type StrategyParams struct {
	Lookback       int      `yaml:"lookback"`
	MomentumWindow int      `yaml:"momentum_window"`
	MomentumWeight *float64 `yaml:"momentum_weight"` // 缺省为0.5，指针区分未配置与显式0
}

// ScoringSection 评分配置
type ScoringSection struct {
	SharpeThreshold   float64 `yaml:"sharpe_threshold"`
	Points            int     `yaml:"points"`
	PositionTolerance float64 `yaml:"position_tolerance"`
}

// OutputSection 输出配置
type OutputSection struct {
	Path       string `yaml:"path"`
	ExportJSON bool   `yaml:"export_json"`
	ExportPath string `yaml:"export_path"`
}

// Default 内置默认配置: SPY基准 + 11个行业ETF
func Default() *Config {
	momentumWeight := 0.5
	return &Config{
		Backtest: BacktestSection{
			FullStart:     "2012-01-01",
			FullEnd:       "2024-04-01",
			StrategyStart: "2019-01-01",
			Benchmark:     "SPY",
			Source:        "yahoo",
		},
		Assets: []AssetConfig{
			{Symbol: "SPY", Name: "S&P 500"},
			{Symbol: "XLB", Name: "Materials"},
			{Symbol: "XLC", Name: "Communication Services"},
			{Symbol: "XLE", Name: "Energy"},
			{Symbol: "XLF", Name: "Financials"},
			{Symbol: "XLI", Name: "Industrials"},
			{Symbol: "XLK", Name: "Technology"},
			{Symbol: "XLP", Name: "Consumer Staples"},
			{Symbol: "XLRE", Name: "Real Estate"},
			{Symbol: "XLU", Name: "Utilities"},
			{Symbol: "XLV", Name: "Health Care"},
			{Symbol: "XLY", Name: "Consumer Discretionary"},
		},
		Strategy: StrategySection{
			Type: "risk_parity_momentum",
			Name: "MyPortfolio",
			Params: StrategyParams{
				Lookback:       50,
				MomentumWindow: 20,
				MomentumWeight: &momentumWeight,
			},
		},
		Scoring: ScoringSection{
			SharpeThreshold:   1.0,
			Points:            15,
			PositionTolerance: 1.01,
		},
		Output: OutputSection{
			Path: "output",
		},
	}
}

// LoadConfig 从文件加载配置
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// ToBacktestConfig 转换为回测配置
func (c *Config) ToBacktestConfig() (types.BacktestConfig, error) {
	fullStart, err := time.Parse("2006-01-02", c.Backtest.FullStart)
	if err != nil {
		return types.BacktestConfig{}, fmt.Errorf("invalid full_start: %w", err)
	}

	fullEnd, err := time.Parse("2006-01-02", c.Backtest.FullEnd)
	if err != nil {
		return types.BacktestConfig{}, fmt.Errorf("invalid full_end: %w", err)
	}

	strategyStart := fullStart
	if c.Backtest.StrategyStart != "" {
		strategyStart, err = time.Parse("2006-01-02", c.Backtest.StrategyStart)
		if err != nil {
			return types.BacktestConfig{}, fmt.Errorf("invalid strategy_start: %w", err)
		}
	}

	symbols := make([]string, len(c.Assets))
	for i, asset := range c.Assets {
		symbols[i] = asset.Symbol
	}

	return types.BacktestConfig{
		FullStart:     fullStart,
		FullEnd:       fullEnd,
		StrategyStart: strategyStart,
		Symbols:       symbols,
		Benchmark:     c.Backtest.Benchmark,
	}, nil
}

// ToStrategyConfig 转换为策略配置
func (c *Config) ToStrategyConfig() types.StrategyConfig {
	momentumWeight := 0.5
	if c.Strategy.Params.MomentumWeight != nil {
		momentumWeight = *c.Strategy.Params.MomentumWeight
	}

	return types.StrategyConfig{
		Name:           c.Strategy.Name,
		Type:           c.Strategy.Type,
		Lookback:       c.Strategy.Params.Lookback,
		MomentumWindow: c.Strategy.Params.MomentumWindow,
		MomentumWeight: momentumWeight,
	}
}

// ToScoringConfig 转换为评分配置
func (c *Config) ToScoringConfig() types.ScoringConfig {
	scoring := types.ScoringConfig{
		SharpeThreshold:   c.Scoring.SharpeThreshold,
		Points:            c.Scoring.Points,
		PositionTolerance: c.Scoring.PositionTolerance,
	}
	if scoring.SharpeThreshold == 0 {
		scoring.SharpeThreshold = 1.0
	}
	if scoring.Points == 0 {
		scoring.Points = 15
	}
	if scoring.PositionTolerance == 0 {
		scoring.PositionTolerance = 1.01
	}
	return scoring
}

// GetDataDir 获取数据目录
func (c *Config) GetDataDir() string {
	if c.Backtest.DataDir != "" {
		return c.Backtest.DataDir
	}
	return "data"
}

// GetOutputPath 获取输出路径
func (c *Config) GetOutputPath() string {
	if c.Output.Path != "" {
		return c.Output.Path
	}
	return "output"
}
