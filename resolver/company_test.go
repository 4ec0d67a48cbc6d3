package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCompanyName(t *testing.T) {
	known := []string{
		"ACE Corp",
		"Beta (formerly Gamma) LLC",
		"Delta Software",
	}

	tests := []struct {
		message string
		want    string
	}{
		// Exact stored name as substring.
		{"catch up with ACE Corp tomorrow", "ACE Corp"},
		{"notes from beta (formerly gamma) llc", "Beta (formerly Gamma) LLC"},
		// Base name with the parenthetical stripped.
		{"what did beta llc commit to", "Beta (formerly Gamma) LLC"},
		// Distinctive base-name token on a word boundary.
		{"tell me about beta", "Beta (formerly Gamma) LLC"},
		{"the delta account", "Delta Software"},
		// Short all-caps abbreviations match case-exactly.
		{"next steps from the ACE call", "ACE Corp"},
		// Former name inside the parenthetical.
		{"anything new on the Gamma project", "Beta (formerly Gamma) LLC"},
		// No match cases.
		{"in your face", ""},
		{"talk to the ace plumber", ""}, // lowercase never matches the abbreviation
		{"generic software question", ""},
		{"the corporation filed something", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractCompanyName(tt.message, known), "message: %s", tt.message)
	}
}

func TestExtractCompanyName_StopTokens(t *testing.T) {
	// Generic tokens shared by many company names never match on their own.
	known := []string{"Orbit Solutions Inc"}
	assert.Equal(t, "", extractCompanyName("we need better solutions", known))
	assert.Equal(t, "Orbit Solutions Inc", extractCompanyName("ping orbit about it", known))
}
