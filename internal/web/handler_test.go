package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BetterCallFirewall/Certscope/internal/config"
	"github.com/BetterCallFirewall/Certscope/internal/models"
	"github.com/BetterCallFirewall/Certscope/internal/storage"
	"github.com/BetterCallFirewall/Certscope/internal/websocket"
	"github.com/BetterCallFirewall/Certscope/internal/workflow"
)

type fakeSummarizer struct {
	report *models.SummaryReport
	err    error
}

func (f *fakeSummarizer) Summarize(_ context.Context, asset models.AssetRecord, assetType models.AssetType) (*models.SummaryReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	report := *f.report
	report.AssetID = asset.ID
	report.AssetType = assetType
	return &report, nil
}

func newTestServer(summarizer summarizerI) (*Server, *storage.MemoryStorage) {
	store := storage.NewMemoryStorage()
	hub := websocket.NewHub()
	go hub.Run()

	cfg := config.Defaults()
	return NewServer(cfg, store, summarizer, hub), store
}

func validReport() *models.SummaryReport {
	return &models.SummaryReport{
		ID:       "report-1",
		Attempts: 1,
		Summary: &models.SummaryRecord{
			ID:              "test.example.com",
			Summary:         "Cert expires in 10 days, critical risk.",
			Severity:        models.SeverityCritical,
			Findings:        []string{"expiry<30d"},
			Recommendations: []string{"renew cert"},
		},
	}
}

func TestHandleSummarize(t *testing.T) {
	server, store := newTestServer(&fakeSummarizer{report: validReport()})
	handler := server.Handler()

	body, _ := json.Marshal(SummarizeRequest{
		Asset:     models.AssetRecord{ID: "test.example.com"},
		AssetType: models.AssetTypeWeb,
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/summarize", bytes.NewReader(body))
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var report models.SummaryReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if report.AssetID != "test.example.com" {
		t.Errorf("AssetID = %q", report.AssetID)
	}

	if _, ok := store.Get(report.ID); !ok {
		t.Error("report was not stored")
	}
}

func TestHandleSummarizeRejectsBadInput(t *testing.T) {
	server, _ := newTestServer(&fakeSummarizer{report: validReport()})
	handler := server.Handler()

	tests := []struct {
		name     string
		method   string
		body     string
		wantCode int
	}{
		{"неверный метод", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"битый JSON", http.MethodPost, "{not json", http.StatusBadRequest},
		{"нет id актива", http.MethodPost, `{"asset":{},"asset_type":"web"}`, http.StatusBadRequest},
		{"неизвестный тип", http.MethodPost, `{"asset":{"id":"a"},"asset_type":"cloud"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/api/summarize", bytes.NewReader([]byte(tt.body)))
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestHandleSummarizeExhausted(t *testing.T) {
	server, _ := newTestServer(&fakeSummarizer{
		err: &workflow.ExhaustedError{Attempts: 3, LastFeedback: "Summary text too short"},
	})
	handler := server.Handler()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/summarize",
		bytes.NewReader([]byte(`{"asset":{"id":"a"},"asset_type":"web"}`)))
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestHandleSummarizeGenerationFailure(t *testing.T) {
	server, _ := newTestServer(&fakeSummarizer{err: fmt.Errorf("model unreachable")})
	handler := server.Handler()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/summarize",
		bytes.NewReader([]byte(`{"asset":{"id":"a"},"asset_type":"web"}`)))
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestHandleGetReports(t *testing.T) {
	server, store := newTestServer(&fakeSummarizer{report: validReport()})
	store.Store(validReport())
	handler := server.Handler()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var reports []*models.SummaryReport
	if err := json.Unmarshal(rec.Body.Bytes(), &reports); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(reports) != 1 || reports[0].ID != "report-1" {
		t.Errorf("reports = %+v", reports)
	}
}

func TestHandleGetReportByID(t *testing.T) {
	server, store := newTestServer(&fakeSummarizer{report: validReport()})
	store.Store(validReport())
	handler := server.Handler()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/report-1", nil)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/reports/missing", nil)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status for missing = %d, want 404", rec.Code)
	}
}

func TestHandleStatsAndHealth(t *testing.T) {
	server, store := newTestServer(&fakeSummarizer{report: validReport()})
	store.Store(validReport())
	handler := server.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("stats status = %d", rec.Code)
	}

	var stats storage.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalReports != 1 || stats.HighRisk != 1 {
		t.Errorf("stats = %+v", stats)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	server, _ := newTestServer(&fakeSummarizer{report: validReport()})
	handler := server.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/summarize", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}
