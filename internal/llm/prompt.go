package llm

import (
	"encoding/json"
	"fmt"

	"github.com/BetterCallFirewall/Certscope/internal/models"
)

// summaryPromptTemplate - фиксированная инструкция с детерминированной
// шкалой severity. Правила упорядочены: побеждает самое строгое.
const summaryPromptTemplate = `# MISSION
You are a security analyst specializing in monitoring digital assets for risks and volatility.

Your task is to return a concise, evidence-based summary with a deterministic severity score.
No invented facts! Use only the provided asset data.

# SCORING BASIS (deterministic; highest rule wins)
- critical: expired cert OR <=30 days to expiry OR self-signed on public web OR SHA-1/MD5 signature OR RSA<2048
- high: 31-60 days to expiry OR >100 SANs (likely shared/reused) OR CN/SAN mismatch with primary domain
- medium: 61-90 days to expiry OR wildcard cert with >=25 SANs OR missing HTTPS redirects/security headers
- low: none of the above issues detected

# CONSTRAINTS
- Use only ASSET_JSON data. Do not invent facts.
- Be brief and specific. No filler, no marketing tone.
- Unknown/absent fields -> list them under missing_fields
- Keep summary <=4 sentences; findings <=5 bullets; recommendations <=4 bullets
- Asset type: %s`

// formatJSON форматирует структуру в красивый JSON для промпта
func formatJSON(data interface{}) string {
	result, _ := json.MarshalIndent(data, "", "  ")
	return string(result)
}

// BuildSummaryPrompt создаёт системную инструкцию для генерации резюме.
// Feedback от валидатора (если есть) добавляется в конец verbatim -
// это единственный корректирующий механизм между попытками.
func BuildSummaryPrompt(req *models.SummaryRequest) string {
	prompt := fmt.Sprintf(summaryPromptTemplate, req.AssetType)
	if req.ValidationFeedback != "" {
		prompt += fmt.Sprintf("\n\nPREVIOUS VALIDATION FEEDBACK:\n%s", req.ValidationFeedback)
	}
	return prompt
}

// BuildAssetContent сериализует запись актива в user-сообщение
func BuildAssetContent(req *models.SummaryRequest) string {
	return fmt.Sprintf("ASSET_JSON:\n%s", formatJSON(req.Asset))
}
