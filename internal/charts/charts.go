package charts

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/vicanso/go-charts/v2"

	"github.com/opsxjacky/RiskParity-backtest/internal/metrics"
	"github.com/opsxjacky/RiskParity-backtest/pkg/types"
)

// Renderer 图表渲染器，渲染成PNG并写入输出目录
type Renderer struct {
	outputDir string
}

// NewRenderer 创建图表渲染器
func NewRenderer(outputDir string) *Renderer {
	return &Renderer{outputDir: outputDir}
}

// Performance 基准与策略的累计收益对比曲线
func (r *Renderer) Performance(benchLabel string, bench []float64, portLabel string, port []float64, dates []time.Time) ([]byte, error) {
	values := [][]float64{
		metrics.CumulativeCurve(bench),
		metrics.CumulativeCurve(port),
	}
	seriesList := charts.NewSeriesListDataFromValues(values, charts.ChartTypeLine)

	painter, err := charts.Render(
		charts.ChartOption{SeriesList: seriesList, Width: 800, Height: 400},
		charts.TitleTextOptionFunc("Cumulative Returns"),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        dateLabels(dates),
			BoundaryGap: charts.FalseFlag(),
			SplitNumber: splitNumber(len(dates)),
		}),
		charts.LegendOptionFunc(charts.LegendOption{Data: []string{benchLabel, portLabel}}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return painter.Bytes()
}

// Allocation 权重堆叠面积图
// 负权重按0处理 (只做多)，各列逐层累加后以填充折线表现堆叠效果
func (r *Renderer) Allocation(weights *types.Table) ([]byte, error) {
	rows := weights.NumRows()
	cols := weights.NumCols()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("empty weight table")
	}

	stacked := make([][]float64, cols)
	for j := 0; j < cols; j++ {
		stacked[j] = make([]float64, rows)
	}
	for i := 0; i < rows; i++ {
		acc := 0.0
		for j := 0; j < cols; j++ {
			w := weights.Values[i][j]
			if math.IsNaN(w) || w < 0 {
				w = 0
			}
			acc += w
			stacked[j][i] = acc
		}
	}

	seriesList := charts.NewSeriesListDataFromValues(stacked, charts.ChartTypeLine)
	painter, err := charts.Render(
		charts.ChartOption{SeriesList: seriesList, FillArea: true, Width: 800, Height: 400},
		charts.TitleTextOptionFunc("Asset Allocation Over Time"),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        dateLabels(weights.Dates),
			BoundaryGap: charts.FalseFlag(),
			SplitNumber: splitNumber(rows),
		}),
		charts.LegendOptionFunc(charts.LegendOption{Data: weights.Symbols}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return painter.Bytes()
}

// Cumulative 各标的的累计净值曲线
func (r *Renderer) Cumulative(prices *types.Table) ([]byte, error) {
	if prices.NumRows() == 0 {
		return nil, fmt.Errorf("empty price table")
	}

	returns := prices.PctChange()
	values := make([][]float64, prices.NumCols())
	for j, symbol := range prices.Symbols {
		values[j] = metrics.CumulativeCurve(returns.Column(symbol))
	}

	seriesList := charts.NewSeriesListDataFromValues(values, charts.ChartTypeLine)
	painter, err := charts.Render(
		charts.ChartOption{SeriesList: seriesList, Width: 800, Height: 400},
		charts.TitleTextOptionFunc("Cumulative Product"),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        dateLabels(prices.Dates),
			BoundaryGap: charts.FalseFlag(),
			SplitNumber: splitNumber(prices.NumRows()),
		}),
		charts.LegendOptionFunc(charts.LegendOption{Data: prices.Symbols}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return painter.Bytes()
}

// WriteFile 把渲染结果写入输出目录
func (r *Renderer) WriteFile(name string, img []byte) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	path := filepath.Join(r.outputDir, name)
	if err := os.WriteFile(path, img, 0644); err != nil {
		return "", fmt.Errorf("failed to write chart: %w", err)
	}
	return path, nil
}

// dateLabels 日期轴标签
func dateLabels(dates []time.Time) []string {
	labels := make([]string, len(dates))
	for i, d := range dates {
		if len(dates) > 120 {
			labels[i] = d.Format("2006-01")
		} else {
			labels[i] = d.Format("2006-01-02")
		}
	}
	return labels
}

// splitNumber X轴刻度数量
func splitNumber(n int) int {
	if n <= 30 {
		split := n / 3
		if split < 3 {
			split = 3
		}
		return split
	}
	return 8
}
