// Package metrics exposes the valuation of the portfolio as Prometheus
// metrics.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/etnz/tradingpost"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics of the portfolio watcher.
type Metrics struct {
	ItemProfit      *prometheus.GaugeVec // labels: item
	ItemMarketValue *prometheus.GaugeVec // labels: item
	ItemCostBasis   *prometheus.GaugeVec // labels: item
	Profit          prometheus.Gauge
	MarketValue     prometheus.Gauge
	CostBasis       prometheus.Gauge

	PollsTotal       prometheus.Counter
	QuoteErrorsTotal prometheus.Counter
	PollDuration     prometheus.Histogram
}

// New creates the metrics and registers them into reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ItemProfit: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tp_item_profit_gold",
			Help: "Profit of an item, in gold, net of the trading post fee",
		}, []string{"item"}),
		ItemMarketValue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tp_item_market_value_gold",
			Help: "Market value of an item held, in gold, net of the trading post fee",
		}, []string{"item"}),
		ItemCostBasis: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tp_item_cost_basis_gold",
			Help: "Total paid for an item held, in gold",
		}, []string{"item"}),
		Profit: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tp_portfolio_profit_gold",
			Help: "Profit of every valued item, in gold",
		}),
		MarketValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tp_portfolio_market_value_gold",
			Help: "Market value of every valued item, in gold",
		}),
		CostBasis: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tp_portfolio_cost_basis_gold",
			Help: "Cost basis of every valued item, in gold",
		}),
		PollsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tp_polls_total",
			Help: "Total price polls",
		}),
		QuoteErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tp_quote_errors_total",
			Help: "Total quotes that could not be fetched",
		}),
		PollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tp_poll_duration_seconds",
			Help:    "Time to fetch the quotes of a poll",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.ItemProfit,
		m.ItemMarketValue,
		m.ItemCostBasis,
		m.Profit,
		m.MarketValue,
		m.CostBasis,
		m.PollsTotal,
		m.QuoteErrorsTotal,
		m.PollDuration,
	)
	return m
}

// Observe records a poll: its duration, its quote errors and the resulting
// report. Items no longer in the report are removed from the item gauges.
func (m *Metrics) Observe(r *tradingpost.Report, elapsed time.Duration, err error) {
	m.PollsTotal.Inc()
	m.PollDuration.Observe(elapsed.Seconds())
	m.QuoteErrorsTotal.Add(float64(countQuoteErrors(err)))

	m.ItemProfit.Reset()
	m.ItemMarketValue.Reset()
	m.ItemCostBasis.Reset()
	for _, s := range r.Items {
		item := s.Item.String()
		m.ItemProfit.WithLabelValues(item).Set(s.Profit.Float64())
		m.ItemMarketValue.WithLabelValues(item).Set(s.MarketValue.Float64())
		m.ItemCostBasis.WithLabelValues(item).Set(s.CostBasis.Float64())
	}
	m.Profit.Set(r.Profit.Float64())
	m.MarketValue.Set(r.MarketValue.Float64())
	m.CostBasis.Set(r.CostBasis.Float64())
}

// countQuoteErrors counts the *tradingpost.QuoteError joined in err.
func countQuoteErrors(err error) int {
	if err == nil {
		return 0
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		n := 0
		for _, e := range joined.Unwrap() {
			n += countQuoteErrors(e)
		}
		return n
	}
	var qerr *tradingpost.QuoteError
	if errors.As(err, &qerr) {
		return 1
	}
	return 0
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
