package data

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartJSON(timestamps []int64, adjcloses []float64) string {
	ts := make([]string, len(timestamps))
	for i, t := range timestamps {
		ts[i] = fmt.Sprintf("%d", t)
	}
	ac := make([]string, len(adjcloses))
	for i, c := range adjcloses {
		ac[i] = fmt.Sprintf("%g", c)
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],"indicators":{"quote":[{"close":[%s]}],"adjclose":[{"adjclose":[%s]}]}}],"error":null}}`,
		strings.Join(ts, ","), strings.Join(ac, ","), strings.Join(ac, ","))
}

func newTestLoader(t *testing.T, handler http.HandlerFunc) *YahooLoader {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	loader := NewYahooLoader(zerolog.Nop())
	loader.SetBaseURL(server.URL)
	return loader
}

func TestYahooLoaderLoadPrices(t *testing.T) {
	// 两个连续交易日
	t1 := day(2023, 1, 2).Unix()
	t2 := day(2023, 1, 3).Unix()

	loader := newTestLoader(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v8/finance/chart/")
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.NotEmpty(t, r.URL.Query().Get("period1"))

		if strings.HasSuffix(r.URL.Path, "/AAA") {
			fmt.Fprint(w, chartJSON([]int64{t1, t2}, []float64{100, 102}))
			return
		}
		fmt.Fprint(w, chartJSON([]int64{t1, t2}, []float64{400, 402}))
	})

	table, err := loader.LoadPrices([]string{"AAA", "SPY"},
		day(2023, 1, 1), day(2023, 1, 10))
	require.NoError(t, err)
	require.Equal(t, 2, table.NumRows())
	assert.Equal(t, 100.0, table.Values[0][0])
	assert.Equal(t, 402.0, table.Values[1][1])
}

func TestYahooLoaderSkipsNonPositiveCloses(t *testing.T) {
	t1 := day(2023, 1, 2).Unix()
	t2 := day(2023, 1, 3).Unix()
	t3 := day(2023, 1, 4).Unix()

	loader := newTestLoader(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartJSON([]int64{t1, t2, t3}, []float64{100, 0, 104}))
	})

	table, err := loader.LoadPrices([]string{"AAA"},
		day(2023, 1, 1), day(2023, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 2, table.NumRows())
}

func TestYahooLoaderHTTPError(t *testing.T) {
	loader := newTestLoader(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := loader.LoadPrices([]string{"AAA"}, day(2023, 1, 1), day(2023, 1, 10))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestYahooLoaderEmptyResult(t *testing.T) {
	loader := newTestLoader(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[],"error":null}}`)
	})

	_, err := loader.LoadPrices([]string{"AAA"}, day(2023, 1, 1), day(2023, 1, 10))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data returned")
}

func TestYahooLoaderFallsBackToClose(t *testing.T) {
	t1 := day(2023, 1, 2).Unix()

	loader := newTestLoader(t, func(w http.ResponseWriter, r *http.Request) {
		// 无 adjclose 指标时退回普通收盘价
		fmt.Fprintf(w, `{"chart":{"result":[{"timestamp":[%d],"indicators":{"quote":[{"close":[123.45]}]}}],"error":null}}`, t1)
	})

	table, err := loader.LoadPrices([]string{"AAA"}, day(2023, 1, 1), day(2023, 1, 10))
	require.NoError(t, err)
	require.Equal(t, 1, table.NumRows())
	assert.Equal(t, 123.45, table.Values[0][0])
}

func TestYahooLoaderSetsUserAgent(t *testing.T) {
	t1 := day(2023, 1, 2).Unix()
	var gotUA string

	loader := newTestLoader(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, chartJSON([]int64{t1}, []float64{100}))
	})

	_, err := loader.LoadPrices([]string{"AAA"}, day(2023, 1, 1), day(2023, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, "curl/8", gotUA)
}

func TestAlignTableIntersection(t *testing.T) {
	series := map[string][]pricePoint{
		"AAA": {
			{date: day(2023, 1, 2), price: 100},
			{date: day(2023, 1, 3), price: 102},
		},
		"BBB": {
			{date: day(2023, 1, 3), price: 50},
			{date: day(2023, 1, 4), price: 51},
		},
	}

	table := alignTable([]string{"AAA", "BBB"}, series)
	require.Equal(t, 1, table.NumRows())
	assert.Equal(t, day(2023, 1, 3), table.Dates[0])
	assert.Equal(t, 102.0, table.Values[0][0])
	assert.Equal(t, 50.0, table.Values[0][1])
}
