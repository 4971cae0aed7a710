package llm

import (
	"encoding/json"
	"testing"

	"github.com/BetterCallFirewall/Certscope/internal/models"
	"github.com/invopop/jsonschema"
)

// TestSummaryRecordSchema проверяет, что схема SummaryRecord не допускает
// дополнительных полей - именно её genkit передает модели как контракт
func TestSummaryRecordSchema(t *testing.T) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
	}
	schema := reflector.Reflect(&models.SummaryRecord{})

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal schema: %v", err)
	}
	t.Logf("Generated schema:\n%s", string(schemaBytes))

	validJSON := `{
		"id": "test.example.com",
		"summary": "Certificate is valid for a year, RSA 2048, trusted issuer.",
		"severity": "low",
		"findings": ["no issues detected"],
		"recommendations": ["schedule renewal before 2025-01-01"],
		"assumptions": ["public web endpoint"],
		"evidence_extras": "",
		"data_coverage": {
			"fields_present_pct": 100,
			"missing_fields": []
		}
	}`

	var record models.SummaryRecord
	if err := json.Unmarshal([]byte(validJSON), &record); err != nil {
		t.Fatalf("Failed to unmarshal valid JSON: %v", err)
	}
	if record.Severity != models.SeverityLow {
		t.Errorf("severity = %q, want low", record.Severity)
	}
}

// TestSummaryRecordNoExtraFields проверяет, что лишние поля не переживают
// round-trip через структуру
func TestSummaryRecordNoExtraFields(t *testing.T) {
	invalidJSON := `{
		"id": "test.example.com",
		"summary": "Short lived certificate close to expiry.",
		"severity": "high",
		"findings": ["expiry<60d"],
		"recommendations": ["renew"],
		"assumptions": [],
		"data_coverage": {"fields_present_pct": 80, "missing_fields": ["key_info"]},
		"confidence_score": 0.9,
		"marketing_blurb": "best cert ever"
	}`

	var record models.SummaryRecord
	if err := json.Unmarshal([]byte(invalidJSON), &record); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	reMarshaled, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var remarshaled map[string]interface{}
	if err := json.Unmarshal(reMarshaled, &remarshaled); err != nil {
		t.Fatalf("Unmarshal remarshaled failed: %v", err)
	}

	if _, ok := remarshaled["confidence_score"]; ok {
		t.Error("confidence_score should not be present after marshaling")
	}
	if _, ok := remarshaled["marketing_blurb"]; ok {
		t.Error("marketing_blurb should not be present after marshaling")
	}
}
