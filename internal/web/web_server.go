package web

import (
	"context"
	"net/http"
	"time"

	"github.com/BetterCallFirewall/Certscope/internal/config"
	"github.com/BetterCallFirewall/Certscope/internal/middlewares"
	"github.com/BetterCallFirewall/Certscope/internal/models"
	"github.com/BetterCallFirewall/Certscope/internal/storage"
	"github.com/BetterCallFirewall/Certscope/internal/websocket"
)

type storageI interface {
	Store(report *models.SummaryReport)
	Get(id string) (*models.SummaryReport, bool)
	GetAll() []*models.SummaryReport
	GetHighRisk() []*models.SummaryReport
	Stats() storage.Stats
}

type summarizerI interface {
	Summarize(ctx context.Context, asset models.AssetRecord, assetType models.AssetType) (*models.SummaryReport, error)
}

type Server struct {
	config     *config.Config
	storage    storageI
	summarizer summarizerI
	server     *http.Server
	hub        *websocket.Hub
}

func NewServer(cfg *config.Config, store storageI, summarizer summarizerI, hub *websocket.Hub) *Server {
	return &Server{
		config:     cfg,
		storage:    store,
		summarizer: summarizer,
		hub:        hub,
	}
}

// Handler собирает маршруты; отдельно от Start ради httptest
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/summarize", s.handleSummarize)
	mux.HandleFunc("/api/reports", s.handleGetReports)
	mux.HandleFunc("/api/reports/", s.handleGetReport)
	mux.HandleFunc("/api/high-risk", s.handleGetHighRisk)
	mux.HandleFunc("/api/stats", s.handleGetStats)

	// WebSocket endpoint
	mux.HandleFunc("/ws", s.hub.ServeWS)

	// Health check
	mux.HandleFunc(
		"/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		},
	)

	return middlewares.CORS(mux)
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:        s.config.Web.ListenAddr,
		Handler:     s.Handler(),
		ReadTimeout: 10 * time.Second,
		// Запись держится дольше обычного: POST /api/summarize ждет
		// завершения всего workflow вместе с LLM вызовами
		WriteTimeout: 5 * time.Minute,
	}

	return s.server.ListenAndServe()
}

func (s *Server) Stop() error {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) Broadcast(data interface{}) {
	s.hub.BroadcastEvent("report", data)
}
