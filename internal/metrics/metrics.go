// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ミドルウェアやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
	RecordListingsCreated()
	RecordRequestsCreated()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus      *prometheus.CounterVec
	requestLatency  prometheus.Histogram
	listingsCreated prometheus.Counter
	requestsCreated prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "foodshare_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "foodshare_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		listingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "foodshare_listings_created_total",
			Help: "作成された食品リスティングの合計数",
		}),
		requestsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "foodshare_food_requests_created_total",
			Help: "受け付けられた食品リクエストの合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestLatency,
		c.listingsCreated,
		c.requestsCreated,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// RecordListingsCreated はリスティング作成を記録する。
func (c *Collector) RecordListingsCreated() {
	c.listingsCreated.Inc()
}

// RecordRequestsCreated はリクエスト受付を記録する。
func (c *Collector) RecordRequestsCreated() {
	c.requestsCreated.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
