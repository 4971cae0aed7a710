package workflow

import (
	"context"
	"time"

	"github.com/BetterCallFirewall/Certscope/internal/models"
	"github.com/google/uuid"
)

// ReportRunner wraps a Controller and packages finished runs as
// SummaryReport records ready for storage and the web API.
type ReportRunner struct {
	controller *Controller
	modelUsed  string
}

func NewReportRunner(controller *Controller, modelUsed string) *ReportRunner {
	return &ReportRunner{
		controller: controller,
		modelUsed:  modelUsed,
	}
}

// Summarize runs one workflow and returns the report with run metadata
func (r *ReportRunner) Summarize(ctx context.Context, asset models.AssetRecord, assetType models.AssetType) (*models.SummaryReport, error) {
	start := time.Now()

	st, err := r.controller.RunState(ctx, asset, assetType)
	if err != nil {
		return nil, err
	}

	return &models.SummaryReport{
		ID:             uuid.NewString(),
		AssetID:        asset.ID,
		AssetType:      assetType,
		Attempts:       st.AttemptCount,
		ModelUsed:      r.modelUsed,
		ProcessingTime: time.Since(start),
		Timestamp:      time.Now(),
		Summary:        st.Summary,
	}, nil
}
