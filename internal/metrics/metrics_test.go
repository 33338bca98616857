package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// counterValue は指定名のカウンタ値を取得する。
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() == name {
			if len(mf.GetMetric()) != 1 {
				t.Fatalf("expected 1 metric for %s, got %d", name, len(mf.GetMetric()))
			}
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("%s metric not found", name)
	return 0
}

// TestNewCollector_ReturnsNonNil はCollectorが正常に生成されることを検証する。
func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

// TestCollector_ImplementsInterface はCollectorがMetricsCollectorを満たすことを検証する。
func TestCollector_ImplementsInterface(t *testing.T) {
	var _ MetricsCollector = (*Collector)(nil)
}

// TestRecordListingsCreated_IncrementsCounter はリスティング作成カウンタが増加することを検証する。
func TestRecordListingsCreated_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordListingsCreated()
	c.RecordListingsCreated()

	if val := counterValue(t, reg, "foodshare_listings_created_total"); val != 2 {
		t.Errorf("listings_created_total = %v, want 2", val)
	}
}

// TestRecordRequestsCreated_IncrementsCounter はリクエスト受付カウンタが増加することを検証する。
func TestRecordRequestsCreated_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequestsCreated()

	if val := counterValue(t, reg, "foodshare_food_requests_created_total"); val != 1 {
		t.Errorf("food_requests_created_total = %v, want 1", val)
	}
}

// TestRecordHTTPStatus_LabelsByCode はステータスコード別にラベル付けされることを検証する。
func TestRecordHTTPStatus_LabelsByCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(404)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	counts := map[string]float64{}
	for _, mf := range metrics {
		if mf.GetName() != "foodshare_http_status_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "status_code" {
					counts[label.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}

	if counts["200"] != 2 {
		t.Errorf("status 200 count = %v, want 2", counts["200"])
	}
	if counts["404"] != 1 {
		t.Errorf("status 404 count = %v, want 1", counts["404"])
	}
}

// TestRecordRequestLatency_Observes はレイテンシが記録されることを検証する。
func TestRecordRequestLatency_Observes(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequestLatency(150 * time.Millisecond)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "foodshare_request_latency_seconds" {
			found = true
			count := mf.GetMetric()[0].GetHistogram().GetSampleCount()
			if count != 1 {
				t.Errorf("latency sample count = %d, want 1", count)
			}
		}
	}
	if !found {
		t.Error("foodshare_request_latency_seconds metric not found")
	}
}

// TestHandler_ServesMetrics は/metricsハンドラーが登録済みメトリクスを出力することを検証する。
func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordListingsCreated()

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("failed to scrape metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !strings.Contains(string(body), "foodshare_listings_created_total 1") {
		t.Errorf("scrape output should contain listings counter, got:\n%s", body)
	}
}
