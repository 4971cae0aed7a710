package llm

import (
	"context"

	"github.com/BetterCallFirewall/Certscope/internal/models"
)

// Provider - интерфейс для любого LLM провайдера
// Это простая абстракция, которая позволяет легко переключаться между разными моделями
type Provider interface {
	// GenerateSummary - одна попытка генерации резюме актива.
	// Принимает запрос (с опциональным feedback от валидатора),
	// возвращает структурированную запись или ошибку.
	// Повторы на уровне workflow здесь не делаются - это задача контроллера.
	GenerateSummary(ctx context.Context, req *models.SummaryRequest) (*models.SummaryRecord, error)

	// GetName возвращает название провайдера (для логирования)
	GetName() string

	// GetModel возвращает используемую модель
	GetModel() string
}
