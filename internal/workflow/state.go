package workflow

import "github.com/BetterCallFirewall/Certscope/internal/models"

// State - состояние конечного автомата одного прогона workflow
type State int

const (
	StateGenerating State = iota
	StateValidating
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateGenerating:
		return "generating"
	case StateValidating:
		return "validating"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// WorkflowState - бегущее состояние одного прогона.
// Принадлежит контроллеру на время прогона и выбрасывается после него.
// AttemptCount монотонно растет и ограничен maxAttempts;
// IsValid истинно тогда и только тогда, когда последняя запись
// прошла все проверки валидатора.
type WorkflowState struct {
	Asset              models.AssetRecord
	AssetType          models.AssetType
	Summary            *models.SummaryRecord
	ValidationFeedback string
	AttemptCount       int
	IsValid            bool
}
