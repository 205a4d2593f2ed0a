package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes where a document came from
type Metadata struct {
	Source    string `json:"source"`    // file path or URL
	Kind      string `json:"kind"`      // text, latex, pdf or html
	Timestamp string `json:"timestamp"` // RFC3339
	Hash      string `json:"hash"`      // SHA256 of the cleaned text
}

// NewMetadata stamps content with the current time and its hash.
func NewMetadata(content, source, kind string) *Metadata {
	return &Metadata{
		Source:    source,
		Kind:      kind,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
