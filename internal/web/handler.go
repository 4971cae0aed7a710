package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/BetterCallFirewall/Certscope/internal/models"
	"github.com/BetterCallFirewall/Certscope/internal/workflow"
)

// SummarizeRequest - тело POST /api/summarize
type SummarizeRequest struct {
	Asset     models.AssetRecord `json:"asset"`
	AssetType models.AssetType   `json:"asset_type"`
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.AssetType == "" {
		req.AssetType = models.AssetTypeWeb
	}
	if !req.AssetType.Valid() {
		http.Error(w, "Unknown asset_type (expected web|host)", http.StatusBadRequest)
		return
	}
	if req.Asset.ID == "" {
		http.Error(w, "Asset id is required", http.StatusBadRequest)
		return
	}

	report, err := s.summarizer.Summarize(r.Context(), req.Asset, req.AssetType)
	if err != nil {
		var exhausted *workflow.ExhaustedError
		if errors.As(err, &exhausted) {
			// Бюджет попыток исчерпан - это не сбой сервера
			http.Error(w, exhausted.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "Summary generation failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	s.storage.Store(report)
	s.hub.BroadcastEvent("report", report)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func (s *Server) handleGetReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reports := s.storage.GetAll()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reports)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Path[len("/api/reports/"):]
	report, ok := s.storage.Get(id)
	if !ok {
		http.Error(w, "Report not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func (s *Server) handleGetHighRisk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reports := s.storage.GetHighRisk()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reports)
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.storage.Stats())
}
