package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leverageai/dealdesk/core"
)

func TestNormalizeOwner(t *testing.T) {
	roster := []string{"Mike Chen", "Sarah Kim", "Randy Ortiz"}

	tests := []struct {
		owner string
		want  string
	}{
		// Exact matches canonicalize casing.
		{"Mike Chen", "Mike Chen"},
		{"mike chen", "Mike Chen"},
		// Unique first names resolve to the full canonical name.
		{"mike", "Mike Chen"},
		{"Sarah", "Sarah Kim"},
		// Multi-owner strings split and normalize each part.
		{"Sarah and Mike", "Sarah Kim and Mike Chen"},
		{"sarah, randy", "Sarah Kim and Randy Ortiz"},
		{"Mike & Sarah", "Mike Chen and Sarah Kim"},
		// Unknown names and the unassigned sentinel pass through unchanged.
		{"Bob", "Bob"},
		{"Unassigned", "Unassigned"},
		{"", ""},
		{"  Mike Chen  ", "Mike Chen"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeOwner(tt.owner, roster), "owner: %q", tt.owner)
	}
}

func TestNormalizeOwner_AmbiguousFirstName(t *testing.T) {
	roster := []string{"Mike Chen", "Mike Reyes"}

	// An ambiguous first name is never guessed at; the original survives.
	assert.Equal(t, "mike", NormalizeOwner("mike", roster))
	assert.Equal(t, "Mike Chen", NormalizeOwner("Mike Chen", roster))
}

func TestNormalizeDeadline(t *testing.T) {
	assert.Equal(t, core.DeadlineNotSpecified, normalizeDeadline(""))
	assert.Equal(t, core.DeadlineNotSpecified, normalizeDeadline("   "))
	assert.Equal(t, "by Friday", normalizeDeadline("by Friday"))
}
