package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/opsxjacky/RiskParity-backtest/internal/metrics"
)

// PrintMetrics 打印基准与策略的风险指标对照表
func PrintMetrics(w io.Writer, benchLabel, portLabel string, bench, port []float64) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Metric\t%s\t%s\n", benchLabel, portLabel)
	fmt.Fprintf(tw, "------\t---\t---\n")
	printPct(tw, "Total Return", metrics.TotalReturn(bench), metrics.TotalReturn(port))
	printPct(tw, "CAGR", metrics.CAGR(bench), metrics.CAGR(port))
	printPct(tw, "Annual Return", metrics.AnnualReturn(bench), metrics.AnnualReturn(port))
	printPct(tw, "Annual Volatility", metrics.AnnualVolatility(bench), metrics.AnnualVolatility(port))
	printNum(tw, "Sharpe", metrics.Sharpe(bench), metrics.Sharpe(port))
	printNum(tw, "Sortino", metrics.Sortino(bench), metrics.Sortino(port))
	printPct(tw, "Max Drawdown", -metrics.MaxDrawdown(bench), -metrics.MaxDrawdown(port))
	printPct(tw, "Best Day", metrics.BestDay(bench), metrics.BestDay(port))
	printPct(tw, "Worst Day", metrics.WorstDay(bench), metrics.WorstDay(port))
	printPct(tw, "Win Rate", metrics.WinRate(bench), metrics.WinRate(port))
	fmt.Fprintf(tw, "Trading Days\t%d\t%d\n", len(bench), len(port))

	tw.Flush()
}

func printPct(w io.Writer, name string, bench, port float64) {
	fmt.Fprintf(w, "%s\t%.2f%%\t%.2f%%\n", name, bench*100, port*100)
}

func printNum(w io.Writer, name string, bench, port float64) {
	fmt.Fprintf(w, "%s\t%.2f\t%.2f\n", name, bench, port)
}
