package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCompanyName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"position at", "Exciting position at Acme Corp. Apply today.", "Acme_Corp"},
		{"role with", "A senior role with Globex in Berlin", "Globex"},
		{"plain at", "Backend Engineer at Stripe\nRemote", "Stripe"},
		{"at sign", "Data Engineer @ Initech", "Initech"},
		{"is hiring", "Umbrella Labs is hiring a platform engineer", "Umbrella_Labs"},
		{"ampersand", "Analyst position at Johnson & Johnson", "Johnson_&_Johnson"},
		{"nothing", "we need someone who knows go", DefaultCompanyName},
		{"empty", "", DefaultCompanyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCompanyName(tt.text))
		})
	}
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme", "Acme"},
		{"Acme Corp/Inc", "Acme_Corp_Inc"},
		{"../../etc/passwd", "etc_passwd"},
		{`C:\Windows`, "C_Windows"},
		{"Johnson & Johnson", "Johnson_&_Johnson"},
		{"", DefaultCompanyName},
		{"/..", DefaultCompanyName},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeName(tt.in))
		})
	}
}
