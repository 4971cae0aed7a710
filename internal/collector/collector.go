package collector

import (
	"context"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"net"

	"github.com/BetterCallFirewall/Certscope/internal/models"
)

// Collect снимает leaf-сертификат с живого TLS endpoint и строит из него
// запись актива. Верификация цепочки отключена намеренно: просроченные и
// самоподписанные сертификаты - это именно то, что мы хотим увидеть.
func Collect(ctx context.Context, addr string) (*models.AssetRecord, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address %q (expected host:port): %w", addr, err)
	}

	dialer := &tls.Dialer{
		Config: &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         host,
		},
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("tls dial %s: %w", addr, err)
	}
	defer conn.Close()

	state := conn.(*tls.Conn).ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return nil, fmt.Errorf("no certificate presented by %s", addr)
	}

	return FromCertificate(host, state.PeerCertificates[0]), nil
}

// FromCertificate строит запись актива из распарсенного сертификата
func FromCertificate(id string, cert *x509.Certificate) *models.AssetRecord {
	fingerprint := sha256.Sum256(cert.Raw)
	algorithm, size := keyInfo(cert)

	record := &models.AssetRecord{
		ID:                id,
		FingerprintSHA256: hex.EncodeToString(fingerprint[:]),
		Domains:           cert.DNSNames,
		Subject: &models.CertName{
			CommonName:   cert.Subject.CommonName,
			Organization: firstOf(cert.Subject.Organization),
		},
		Issuer: &models.CertName{
			CommonName:   cert.Issuer.CommonName,
			Organization: firstOf(cert.Issuer.Organization),
		},
		ValidityPeriod: &models.ValidityPeriod{
			NotBefore: cert.NotBefore,
			NotAfter:  cert.NotAfter,
		},
	}

	if algorithm != "" {
		record.KeyInfo = &models.KeyInfo{
			Algorithm: algorithm,
			Size:      size,
		}
	}

	return record
}

func keyInfo(cert *x509.Certificate) (string, int) {
	switch pub := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		return "RSA", pub.N.BitLen()
	case *ecdsa.PublicKey:
		return "ECDSA", pub.Curve.Params().BitSize
	case ed25519.PublicKey:
		return "Ed25519", 256
	default:
		return "", 0
	}
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
