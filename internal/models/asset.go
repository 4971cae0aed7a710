package models

import "time"

// AssetType - тип анализируемого актива
type AssetType string

const (
	AssetTypeWeb  AssetType = "web"
	AssetTypeHost AssetType = "host"
)

// Valid проверяет, что тип входит в закрытый набор
func (t AssetType) Valid() bool {
	return t == AssetTypeWeb || t == AssetTypeHost
}

// CertName - subject/issuer сертификата
type CertName struct {
	CommonName   string `json:"common_name"`
	Organization string `json:"organization,omitempty"`
}

// ValidityPeriod - срок действия сертификата
type ValidityPeriod struct {
	NotBefore time.Time `json:"not_before"`
	NotAfter  time.Time `json:"not_after"`
}

// KeyInfo - алгоритм и размер ключа
type KeyInfo struct {
	Algorithm string `json:"algorithm"`
	Size      int    `json:"size"`
}

// AssetRecord - входная запись о сертификате/цифровом активе.
// Read-only вход для генерации, сериализуется в промпт как ASSET_JSON.
type AssetRecord struct {
	ID                string          `json:"id"`
	FingerprintSHA256 string          `json:"fingerprint_sha256,omitempty"`
	Domains           []string        `json:"domains,omitempty"`
	Subject           *CertName       `json:"subject,omitempty"`
	Issuer            *CertName       `json:"issuer,omitempty"`
	ValidityPeriod    *ValidityPeriod `json:"validity_period,omitempty"`
	KeyInfo           *KeyInfo        `json:"key_info,omitempty"`
}
