package models

import "time"

// SummaryReport - завершённый прогон workflow вместе с метаданными.
// Хранится в памяти и отдаётся через web API.
type SummaryReport struct {
	ID             string         `json:"id"`
	AssetID        string         `json:"asset_id"`
	AssetType      AssetType      `json:"asset_type"`
	Attempts       int            `json:"attempts"`
	ModelUsed      string         `json:"model_used"`
	ProcessingTime time.Duration  `json:"processing_time"`
	Timestamp      time.Time      `json:"timestamp"`
	Summary        *SummaryRecord `json:"summary"`
}
