package models

import (
	"encoding/json"
	"fmt"
)

// Severity - уровень риска, закрытый упорядоченный набор значений
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// Valid проверяет, что значение входит в закрытый набор
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// AtLeast сравнивает уровни риска по порядку low < medium < high < critical
func (s Severity) AtLeast(other Severity) bool {
	return severityRank[s] >= severityRank[other]
}

// UnmarshalJSON отклоняет значения вне закрытого набора,
// чтобы LLM не мог вернуть произвольную строку вместо severity
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed := Severity(raw)
	if !parsed.Valid() {
		return fmt.Errorf("unknown severity %q (expected low|medium|high|critical)", raw)
	}
	*s = parsed
	return nil
}

// DataCoverage - сколько ожидаемых полей актива реально присутствовало
type DataCoverage struct {
	FieldsPresentPct int      `json:"fields_present_pct" jsonschema:"minimum=0,maximum=100" jsonschema_description:"Percentage of expected fields present"`
	MissingFields    []string `json:"missing_fields" jsonschema_description:"List of missing data fields"`
}

// SummaryRecord - структурированный результат генерации.
// Неизменяем после создания; при retry заменяется целиком новой записью.
type SummaryRecord struct {
	ID              string       `json:"id" jsonschema_description:"Asset identifier"`
	Summary         string       `json:"summary" jsonschema_description:"2-4 sentence security summary"`
	Severity        Severity     `json:"severity" jsonschema:"enum=low,enum=medium,enum=high,enum=critical" jsonschema_description:"Risk severity level"`
	Findings        []string     `json:"findings" jsonschema_description:"List of security findings"`
	Recommendations []string     `json:"recommendations" jsonschema_description:"List of actionable recommendations"`
	Assumptions     []string     `json:"assumptions" jsonschema_description:"List of assumptions made"`
	EvidenceExtras  string       `json:"evidence_extras,omitempty" jsonschema_description:"Additional evidence notes"`
	DataCoverage    DataCoverage `json:"data_coverage"`
}

// SummaryRequest - запрос на генерацию резюме актива.
// ValidationFeedback заполняется контроллером при повторной попытке.
type SummaryRequest struct {
	Asset              AssetRecord `json:"asset"`
	AssetType          AssetType   `json:"asset_type"`
	ValidationFeedback string      `json:"validation_feedback,omitempty"`
}
