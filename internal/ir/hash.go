package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainTree   = "mcp-uipath/tree/v1"
	DomainReport = "mcp-uipath/report/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte (0x00) separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00}) // Null separator - CRITICAL for security
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint computes the content-addressed identity of an IR tree.
// Two trees fingerprint identically exactly when their canonical bytes
// match, so the value doubles as a determinism check: the same input
// converted twice must produce the same fingerprint.
func Fingerprint(v IRValue) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainTree, canonical), nil
}

// ReportFingerprint computes the content-addressed identity of a
// serialized validation report. Reports hash under their own domain so a
// report can never collide with the tree it describes.
func ReportFingerprint(data []byte) string {
	return hashWithDomain(DomainReport, data)
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustFingerprint(v IRValue) string {
	fp, err := Fingerprint(v)
	if err != nil {
		panic(err)
	}
	return fp
}
