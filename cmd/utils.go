package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BetterCallFirewall/Certscope/internal/models"
)

func loadAsset(path string) (models.AssetRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.AssetRecord{}, fmt.Errorf("read asset file: %w", err)
	}

	var record models.AssetRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return models.AssetRecord{}, fmt.Errorf("parse asset file %s: %w", path, err)
	}
	if record.ID == "" {
		return models.AssetRecord{}, fmt.Errorf("asset file %s has no id", path)
	}
	return record, nil
}

// sampleWebAsset - встроенный пример для запуска без аргументов
func sampleWebAsset() models.AssetRecord {
	return models.AssetRecord{
		ID:                "test.example.com",
		FingerprintSHA256: "a1b2c3d4e5f6789012345678901234567890123456789012345678901234567890",
		Domains:           []string{"test.example.com", "www.test.example.com"},
		Subject: &models.CertName{
			CommonName:   "test.example.com",
			Organization: "Test Organization",
		},
		Issuer: &models.CertName{
			CommonName:   "Test CA",
			Organization: "Test Certificate Authority",
		},
		ValidityPeriod: &models.ValidityPeriod{
			NotBefore: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			NotAfter:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		KeyInfo: &models.KeyInfo{
			Algorithm: "RSA",
			Size:      2048,
		},
	}
}

func printSummary(summary *models.SummaryRecord) {
	banner := strings.Repeat("=", 60)

	fmt.Println("\n" + banner)
	fmt.Println("🎯 GENERATED SUMMARY")
	fmt.Println(banner)
	fmt.Printf("Asset ID: %s\n", summary.ID)
	fmt.Printf("Severity: %s\n", strings.ToUpper(string(summary.Severity)))
	fmt.Printf("\nSummary:\n%s\n", summary.Summary)

	fmt.Printf("\nFindings (%d):\n", len(summary.Findings))
	for i, finding := range summary.Findings {
		fmt.Printf("  %d. %s\n", i+1, finding)
	}

	fmt.Printf("\nRecommendations (%d):\n", len(summary.Recommendations))
	for i, rec := range summary.Recommendations {
		fmt.Printf("  %d. %s\n", i+1, rec)
	}

	if len(summary.Assumptions) > 0 {
		fmt.Printf("\nAssumptions (%d):\n", len(summary.Assumptions))
		for i, assumption := range summary.Assumptions {
			fmt.Printf("  %d. %s\n", i+1, assumption)
		}
	}

	if summary.EvidenceExtras != "" {
		fmt.Printf("\nEvidence notes: %s\n", summary.EvidenceExtras)
	}

	fmt.Printf("\nData Coverage: %d%%\n", summary.DataCoverage.FieldsPresentPct)
	if len(summary.DataCoverage.MissingFields) > 0 {
		fmt.Printf("Missing fields: %s\n", strings.Join(summary.DataCoverage.MissingFields, ", "))
	}
	fmt.Println(banner)
}
