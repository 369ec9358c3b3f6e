package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/opsxjacky/RiskParity-backtest/pkg/types"
)

// YahooLoader 雅虎财经数据加载器
// 通过 v8 chart 接口按日拉取复权收盘价
type YahooLoader struct {
	client  *http.Client
	log     zerolog.Logger
	baseURL string
}

// NewYahooLoader 创建雅虎财经加载器
func NewYahooLoader(log zerolog.Logger) *YahooLoader {
	return &YahooLoader{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log:     log.With().Str("loader", "yahoo").Logger(),
		baseURL: "https://query1.finance.yahoo.com",
	}
}

// SourceType 返回数据源类型
func (l *YahooLoader) SourceType() string {
	return "yahoo"
}

// SetBaseURL 覆盖接口地址 (测试用)
func (l *YahooLoader) SetBaseURL(base string) {
	l.baseURL = base
}

// chartResponse v8 chart 接口响应
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
				Adjclose []struct {
					Adjclose []float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// LoadPrices 逐标的下载并对齐成价格表
func (l *YahooLoader) LoadPrices(symbols []string, start, end time.Time) (*types.Table, error) {
	series := make(map[string][]pricePoint, len(symbols))
	for _, symbol := range symbols {
		l.log.Info().Str("symbol", symbol).Msg("downloading price history")
		points, err := l.fetchSymbol(symbol, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to download %s: %w", symbol, err)
		}
		series[symbol] = points
	}
	return alignTable(symbols, series), nil
}

// fetchSymbol 拉取单个标的的日线历史
func (l *YahooLoader) fetchSymbol(symbol string, start, end time.Time) ([]pricePoint, error) {
	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=div%%2Csplit",
		l.baseURL, url.PathEscape(symbol), start.Unix(), end.Unix())

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "curl/8")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var cr chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(cr.Chart.Result) == 0 {
		return nil, fmt.Errorf("no data returned")
	}

	result := cr.Chart.Result[0]

	// 优先复权收盘价，缺失时退回普通收盘价
	var closes []float64
	if len(result.Indicators.Adjclose) > 0 && len(result.Indicators.Adjclose[0].Adjclose) > 0 {
		closes = result.Indicators.Adjclose[0].Adjclose
	} else if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}
	if len(result.Timestamp) == 0 || len(closes) == 0 {
		return nil, fmt.Errorf("empty bars")
	}

	points := make([]pricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] <= 0 {
			continue
		}
		points = append(points, pricePoint{
			date:  time.Unix(ts, 0).UTC(),
			price: closes[i],
		})
	}

	l.log.Debug().Str("symbol", symbol).Int("bars", len(points)).Msg("download complete")
	return points, nil
}
