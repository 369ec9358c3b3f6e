package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/opsxjacky/RiskParity-backtest/pkg/types"
)

// CSVLoader CSV数据加载器
// 每个标的对应数据目录下的一个 <symbol>.csv 文件
type CSVLoader struct {
	dataDir string
}

// NewCSVLoader 创建CSV加载器
func NewCSVLoader(dataDir string) *CSVLoader {
	return &CSVLoader{dataDir: dataDir}
}

// SourceType 返回数据源类型
func (l *CSVLoader) SourceType() string {
	return "csv"
}

// LoadPrices 加载价格数据并对齐成价格表
func (l *CSVLoader) LoadPrices(symbols []string, start, end time.Time) (*types.Table, error) {
	series := make(map[string][]pricePoint, len(symbols))
	for _, symbol := range symbols {
		points, err := l.loadSymbol(symbol, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to load data for %s: %w", symbol, err)
		}
		series[symbol] = points
	}
	return alignTable(symbols, series), nil
}

// loadSymbol 加载单个标的数据
func (l *CSVLoader) loadSymbol(symbol string, start, end time.Time) ([]pricePoint, error) {
	filePath := filepath.Join(l.dataDir, symbol+".csv")
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("CSV file has no data rows")
	}

	// 解析表头，找到日期列和价格列; 优先使用复权收盘价
	colIndex := parseHeader(records[0])
	dateIdx, ok := colIndex["date"]
	if !ok {
		return nil, fmt.Errorf("CSV file has no date column")
	}
	priceIdx, ok := colIndex["adj_close"]
	if !ok {
		priceIdx, ok = colIndex["close"]
	}
	if !ok {
		return nil, fmt.Errorf("CSV file has no close column")
	}

	var points []pricePoint
	for i := 1; i < len(records); i++ {
		row := records[i]
		if dateIdx >= len(row) || priceIdx >= len(row) {
			continue
		}
		date, err := parseDate(row[dateIdx])
		if err != nil {
			continue // 跳过解析错误的行
		}
		price, err := strconv.ParseFloat(row[priceIdx], 64)
		if err != nil {
			continue
		}

		// 过滤日期范围
		if !date.Before(start) && !date.After(end) {
			points = append(points, pricePoint{date: date, price: price})
		}
	}

	return points, nil
}

// parseHeader 解析CSV表头
func parseHeader(header []string) map[string]int {
	colIndex := make(map[string]int)
	for i, col := range header {
		switch col {
		case "Date", "date", "DATE", "Timestamp", "timestamp":
			colIndex["date"] = i
		case "Close", "close", "CLOSE":
			colIndex["close"] = i
		case "Adj Close", "adj_close", "AdjClose", "Adj_Close":
			colIndex["adj_close"] = i
		}
	}
	return colIndex
}

// parseDate 解析日期字符串
func parseDate(dateStr string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
		"2006-01-02 15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}
