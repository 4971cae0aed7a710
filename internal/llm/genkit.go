package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/BetterCallFirewall/Certscope/internal/config"
	"github.com/BetterCallFirewall/Certscope/internal/models"
	"github.com/firebase/genkit/go/ai"
	genkitcore "github.com/firebase/genkit/go/core"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
)

// InitGenkitApp создает и инициализирует Genkit с нужными плагинами
func InitGenkitApp(ctx context.Context, cfg config.LLMConfig) (*genkit.Genkit, error) {
	switch cfg.Provider {
	case "gemini":
		return genkit.Init(
			ctx, genkit.WithPlugins(
				&googlegenai.GoogleAI{
					APIKey: cfg.ApiKey,
				},
			),
		), nil

	case "openai", "ollama", "localai", "lm-studio":
		return genkit.Init(
			ctx, genkit.WithPlugins(
				&compat_oai.OpenAICompatible{
					Provider: cfg.Provider,
					APIKey:   cfg.ApiKey,
					BaseURL:  cfg.BaseURL,
				},
			),
		), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

// SummaryProvider - универсальный провайдер генерации резюме через Genkit.
// Genkit валидирует JSON schema ответа через generic type, поэтому
// severity вне закрытого набора или неразбираемый процент покрытия
// превращаются в ошибку генерации, а не в мусорную запись.
type SummaryProvider struct {
	genkitApp *genkit.Genkit
	provider  string
	model     string
	modelName string
	timeout   time.Duration
	flow      *genkitcore.Flow[*models.SummaryRequest, *models.SummaryRecord, struct{}]
}

// NewSummaryProvider создает провайдер с уже инициализированным GenkitApp
func NewSummaryProvider(genkitApp *genkit.Genkit, cfg config.LLMConfig) (*SummaryProvider, error) {
	if genkitApp == nil {
		return nil, fmt.Errorf("genkitApp cannot be nil")
	}

	p := &SummaryProvider{
		genkitApp: genkitApp,
		provider:  cfg.Provider,
		model:     cfg.Model,
		modelName: cfg.Provider + "/" + cfg.Model,
		timeout:   cfg.RequestTimeout,
	}

	temperature := cfg.Temperature
	middlewares := []ai.ModelMiddleware{
		// cfg.MaxRetries - число повторов, middleware считает попытки
		RetryMiddleware(cfg.MaxRetries+1, 1*time.Second),
	}

	// Атомарный flow: один LLM вызов со структурированным выводом.
	// Виден в Genkit DevUI как отдельный trace на каждую попытку.
	p.flow = genkit.DefineFlow(
		genkitApp,
		"assetSummaryFlow",
		func(ctx context.Context, req *models.SummaryRequest) (*models.SummaryRecord, error) {
			log.Printf("🤖 Calling LLM for asset summary: asset=%s type=%s", req.Asset.ID, req.AssetType)

			result, _, err := genkit.GenerateData[models.SummaryRecord](
				ctx,
				genkitApp,
				ai.WithModelName(p.modelName),
				ai.WithSystem(BuildSummaryPrompt(req)),
				ai.WithPrompt(BuildAssetContent(req)),
				ai.WithConfig(map[string]any{"temperature": temperature}),
				ai.WithMiddleware(middlewares...),
			)
			if err != nil {
				return nil, fmt.Errorf("LLM generation failed: %w", err)
			}

			checked, err := checkRecord(result, req)
			if err != nil {
				return nil, err
			}

			log.Printf("✅ Summary generated: severity=%s, findings_count=%d",
				checked.Severity, len(checked.Findings))

			return checked, nil
		},
	)

	return p, nil
}

// checkRecord проверяет, что ответ модели укладывается в контракт схемы.
// Это НЕ workflow-валидация (та в пакете workflow) - здесь отсекается
// только то, что вообще нельзя считать SummaryRecord.
// Сгенерированная запись не мутируется: пустой id подставляется в копии.
func checkRecord(rec *models.SummaryRecord, req *models.SummaryRequest) (*models.SummaryRecord, error) {
	if !rec.Severity.Valid() {
		return nil, fmt.Errorf("model returned severity outside the fixed set: %q", rec.Severity)
	}
	pct := rec.DataCoverage.FieldsPresentPct
	if pct < 0 || pct > 100 {
		return nil, fmt.Errorf("model returned fields_present_pct out of range: %d", pct)
	}
	if rec.ID == "" {
		filled := *rec
		filled.ID = req.Asset.ID
		return &filled, nil
	}
	return rec, nil
}

// GenerateSummary выполняет одну попытку генерации с таймаутом запроса
func (p *SummaryProvider) GenerateSummary(
	ctx context.Context,
	req *models.SummaryRequest,
) (*models.SummaryRecord, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	result, err := p.flow.Run(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("asset summary failed: %w", err)
	}

	return result, nil
}

func (p *SummaryProvider) GetName() string {
	return p.provider
}

func (p *SummaryProvider) GetModel() string {
	return p.model
}
