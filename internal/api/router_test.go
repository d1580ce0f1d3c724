package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostdev-ops/sales-insights-go/internal/api/handlers"
	"github.com/frostdev-ops/sales-insights-go/internal/config"
	"github.com/frostdev-ops/sales-insights-go/internal/core/dashboard"
	"github.com/frostdev-ops/sales-insights-go/internal/core/dataset"
	"github.com/frostdev-ops/sales-insights-go/internal/core/export"
	"github.com/frostdev-ops/sales-insights-go/internal/core/insights"
	"github.com/frostdev-ops/sales-insights-go/internal/core/metrics"
	"github.com/frostdev-ops/sales-insights-go/internal/core/system"
)

const ordersCSV = `Order ID,Date,Status,Fulfilment,Category,Qty,Amount,ship-state
1,04-30-22,Shipped,Amazon,Kurta,2,100,MAHARASHTRA
2,04-30-22,Shipped,Amazon,Set,1,250,KARNATAKA
3,05-01-22,Cancelled,Merchant,Kurta,1,120,MAHARASHTRA
4,05-01-22,Shipped,Amazon,Western Dress,3,300,DELHI
5,05-02-22,Shipped,Merchant,Set,1,,KARNATAKA
6,05-02-22,Shipped,Amazon,Kurta,2,80,MAHARASHTRA
`

// Prometheus series register once per process, so every test shares one
// disabled collector.
var testCollector = metrics.NewCollector(false)

func testConfig(dataPath string) *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: 8080, Host: "127.0.0.1", Mode: gin.TestMode},
		Data:      config.DataConfig{Path: dataPath, PreviewLimit: 3},
		Logging:   config.LoggingConfig{Level: "info", Format: "json"},
		Metrics:   config.MetricsConfig{Enabled: false, SampleSchedule: "0 */30 * * * *"},
		Dashboard: config.DashboardConfig{Title: "Sales Insights", Theme: "westeros"},
		Export:    config.ExportConfig{HistoryLimit: 10, Compress: false},
	}
}

func newTestRouter(t *testing.T, csvContent string) (*gin.Engine, *config.Config) {
	t.Helper()

	dataPath := filepath.Join(t.TempDir(), "sales.csv")
	if csvContent != "" {
		require.NoError(t, os.WriteFile(dataPath, []byte(csvContent), 0o644))
	}

	log := logrus.New()
	cfg := testConfig(dataPath)

	store := dataset.NewStore()
	if csvContent != "" {
		snap, err := dataset.Load(dataPath, log)
		require.NoError(t, err)
		store.Set(snap)
	}

	engine := insights.NewEngine(log)
	exporter := export.NewManager(log, cfg.Export.HistoryLimit)
	renderer := dashboard.NewRenderer(engine, log, cfg.Dashboard.Title, cfg.Dashboard.Theme)
	sys := system.NewService(log)

	h := handlers.New(cfg, store, engine, exporter, renderer, testCollector, sys, log)
	return NewRouter(cfg, h, testCollector, log), cfg
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := decodeBody(t, w)
	require.Equal(t, true, body["success"], "body: %s", w.Body.String())
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "data is not an object: %s", w.Body.String())
	return data
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, ordersCSV)
	w := doRequest(router, http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["dataset_loaded"])
	assert.Equal(t, float64(6), body["dataset_rows"])
	assert.NotEmpty(t, body["version"])
	assert.Contains(t, body, "uptime_seconds")
}

func TestHealthEndpoint_WithoutDataset(t *testing.T) {
	router, _ := newTestRouter(t, "")
	w := doRequest(router, http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, false, body["dataset_loaded"])
}

func TestInsightEndpoints_AllRespond(t *testing.T) {
	router, _ := newTestRouter(t, ordersCSV)

	paths := []string{
		"/api/v1/insights/key-metrics",
		"/api/v1/insights/trends",
		"/api/v1/insights/categories",
		"/api/v1/insights/shipping",
		"/api/v1/insights/products",
		"/api/v1/insights/revenue",
		"/api/v1/insights/customers",
		"/api/v1/insights/advanced",
		"/api/v1/insights/summary-report",
		"/api/v1/insights/executive-summary",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, path)
			require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

			body := decodeBody(t, w)
			assert.Equal(t, true, body["success"])
			assert.NotEmpty(t, body["timestamp"])

			meta, ok := body["meta"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, float64(6), meta["rows"])
		})
	}
}

func TestInsightEndpoints_DatasetNotLoaded(t *testing.T) {
	router, _ := newTestRouter(t, "")
	w := doRequest(router, http.MethodGet, "/api/v1/insights/key-metrics")

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "dataset not loaded", body["error"])
	assert.Equal(t, float64(http.StatusServiceUnavailable), body["code"])

	request, ok := body["request"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/api/v1/insights/key-metrics", request["path"])
}

func TestKeyMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, ordersCSV)
	w := doRequest(router, http.MethodGet, "/api/v1/insights/key-metrics")

	require.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, float64(6), data["total_orders"])
	assert.Equal(t, float64(850), data["total_revenue"])
	assert.Equal(t, "Kurta", data["top_category"])
}

func TestInsightEndpoints_Filtered(t *testing.T) {
	router, _ := newTestRouter(t, ordersCSV)
	w := doRequest(router, http.MethodGet, "/api/v1/insights/key-metrics?status=Shipped")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(5), meta["rows"])

	data := body["data"].(map[string]any)
	assert.Equal(t, float64(5), data["total_orders"])
	assert.Equal(t, float64(100), data["shipped_percentage"])
}

func TestInsightEndpoints_MultiValueFilter(t *testing.T) {
	router, _ := newTestRouter(t, ordersCSV)
	w := doRequest(router, http.MethodGet, "/api/v1/insights/key-metrics?category=Set,Western%20Dress")

	require.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, float64(3), data["total_orders"])
}

func TestInsightEndpoints_FilterOnMissingColumn(t *testing.T) {
	router, _ := newTestRouter(t, "Order ID,Amount\n1,100\n")
	w := doRequest(router, http.MethodGet, "/api/v1/insights/key-metrics?sales_channel=Amazon")

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "Sales Channel")
}

func TestTrendsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, ordersCSV)
	w := doRequest(router, http.MethodGet, "/api/v1/insights/trends")

	require.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)

	daily, ok := data["daily_sales"].([]any)
	require.True(t, ok)
	assert.Len(t, daily, 3)

	first := daily[0].(map[string]any)
	assert.Equal(t, "2022-04-30", first["Date"])
	assert.Equal(t, float64(350), first["Amount"])
}

func TestDatasetInfoEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, ordersCSV)
	w := doRequest(router, http.MethodGet, "/api/v1/dataset/info")

	require.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, float64(6), data["rows"])
	assert.Equal(t, float64(6), data["total_rows"])
	assert.Equal(t, float64(8), data["columns"])
	assert.Equal(t, "2022-04-30 to 2022-05-02", data["date_range"])

	w = doRequest(router, http.MethodGet, "/api/v1/dataset/info?status=Cancelled")
	data = dataOf(t, w)
	assert.Equal(t, float64(1), data["rows"])
	assert.Equal(t, float64(6), data["total_rows"])
}

func TestColumnsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, ordersCSV)
	w := doRequest(router, http.MethodGet, "/api/v1/dataset/columns")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	columns, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Len(t, columns, 8)

	first := columns[0].(map[string]any)
	assert.Equal(t, "Order ID", first["name"])
	assert.Contains(t, first, "type")
	assert.Contains(t, first, "non_null")
	assert.Contains(t, first, "unique")
}

func TestPreviewEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, ordersCSV)

	t.Run("default limit from config", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/dataset/preview")
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		records := body["data"].([]any)
		assert.Len(t, records, 3)

		meta := body["meta"].(map[string]any)
		assert.Equal(t, float64(3), meta["limit"])
		assert.Equal(t, float64(6), meta["rows"])
	})

	t.Run("explicit limit", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/dataset/preview?limit=1")
		body := decodeBody(t, w)
		records := body["data"].([]any)
		require.Len(t, records, 1)

		row := records[0].(map[string]any)
		assert.Equal(t, "1", row["Order ID"])
		assert.Equal(t, "Kurta", row["Category"])
	})

	t.Run("invalid limit", func(t *testing.T) {
		for _, raw := range []string{"0", "-3", "abc"} {
			w := doRequest(router, http.MethodGet, "/api/v1/dataset/preview?limit="+raw)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	})
}

func TestFilterOptionsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, ordersCSV)
	w := doRequest(router, http.MethodGet, "/api/v1/dataset/filters")

	require.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)

	status, ok := data["status"].([]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"Shipped", "Cancelled"}, status)

	assert.Contains(t, data, "category")
	assert.Contains(t, data, "state")
	assert.NotContains(t, data, "sales_channel")
}

func TestReloadEndpoint(t *testing.T) {
	router, cfg := newTestRouter(t, "")

	// Nothing on disk yet; insights are unavailable and reload fails.
	w := doRequest(router, http.MethodGet, "/api/v1/insights/key-metrics")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/dataset/reload")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	require.NoError(t, os.WriteFile(cfg.Data.Path, []byte(ordersCSV), 0o644))

	w = doRequest(router, http.MethodPost, "/api/v1/dataset/reload")
	require.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, float64(6), data["rows"])

	w = doRequest(router, http.MethodGet, "/api/v1/insights/key-metrics")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExportEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, ordersCSV)

	t.Run("plain csv", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/export/csv")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "filtered_sales_")

		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		assert.Len(t, lines, 7)
	})

	t.Run("filtered", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/export/csv?status=Cancelled")
		require.Equal(t, http.StatusOK, w.Code)

		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		assert.Len(t, lines, 2)
		assert.Contains(t, lines[1], "Cancelled")
	})

	t.Run("compressed", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/export/csv?compress=true")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/gzip", w.Header().Get("Content-Type"))

		raw := w.Body.Bytes()
		require.GreaterOrEqual(t, len(raw), 2)
		assert.Equal(t, byte(0x1f), raw[0])
		assert.Equal(t, byte(0x8b), raw[1])
	})

	t.Run("invalid compress flag", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/export/csv?compress=definitely")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("history newest first", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/export/history")
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		jobs, ok := body["data"].([]any)
		require.True(t, ok)
		require.Len(t, jobs, 3)

		newest := jobs[0].(map[string]any)
		assert.Equal(t, true, newest["compressed"])
		assert.Equal(t, float64(6), newest["rows"])
	})
}

func TestDashboardEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, ordersCSV)
	w := doRequest(router, http.MethodGet, "/dashboard")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "echarts")
	assert.Contains(t, w.Body.String(), "Revenue by Category")
}

func TestDashboardEndpoint_DatasetNotLoaded(t *testing.T) {
	router, _ := newTestRouter(t, "")
	w := doRequest(router, http.MethodGet, "/dashboard")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSystemStatusEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, ordersCSV)
	w := doRequest(router, http.MethodGet, "/api/v1/system/status")

	require.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)

	service, ok := data["service"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "sales-insights", service["name"])
	assert.NotEmpty(t, service["go_version"])

	ds, ok := data["dataset"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, ds["loaded"])
	assert.Equal(t, float64(6), ds["rows"])

	assert.Contains(t, data, "host")
}

func TestNotFoundSuggestions(t *testing.T) {
	router, _ := newTestRouter(t, ordersCSV)
	w := doRequest(router, http.MethodGet, "/api/v1/insights/nonsense")

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "endpoint not found", body["error"])

	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	suggestions, ok := details["suggestions"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, suggestions)
	assert.Contains(t, suggestions, "/api/v1/insights/key-metrics")
}

func TestMetricsEndpointGatedByConfig(t *testing.T) {
	router, _ := newTestRouter(t, ordersCSV)
	w := doRequest(router, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSHeaders(t *testing.T) {
	router, _ := newTestRouter(t, ordersCSV)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
