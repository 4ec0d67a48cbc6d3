package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 8, 26, 12, 0, 0, 0, time.UTC)

func TestDetectTemporal_Classes(t *testing.T) {
	tests := []struct {
		message string
		class   temporalClass
	}{
		{"what did we discuss in the last meeting", temporalLastMeeting},
		{"summary of the most recent call please", temporalLastMeeting},
		{"the previous sync with them", temporalLastMeeting},
		{"any meetings last week?", temporalLastWeek},
		{"what happened last month", temporalLastMonth},
		{"what about the Aug 7 meeting", temporalOnDate},
		{"the 8/21 call", temporalOnDate},
		{"next steps from the ACE call", temporalNone},
		{"hello there", temporalNone},
	}
	for _, tt := range tests {
		signal := detectTemporal(tt.message, fixedNow)
		assert.Equal(t, tt.class, signal.class, "message: %s", tt.message)
	}
}

func TestDetectTemporal_DateBeatsPhrase(t *testing.T) {
	// A concrete date wins even when "last meeting" language is also present.
	signal := detectTemporal("was the last meeting on Aug 7?", fixedNow)
	require.NoError(t, signal.err)
	assert.Equal(t, temporalOnDate, signal.class)
	assert.Equal(t, time.Date(2025, 8, 7, 0, 0, 0, 0, time.UTC), signal.date)
}

func TestParseMessageDate(t *testing.T) {
	tests := []struct {
		message string
		want    time.Time
	}{
		// Month-name forms; missing year defaults to the current year.
		{"the Aug 7 meeting", time.Date(2025, 8, 7, 0, 0, 0, 0, time.UTC)},
		{"on August 7th, 2024", time.Date(2024, 8, 7, 0, 0, 0, 0, time.UTC)},
		{"back on dec 31 2024", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
		// Numeric forms; two-digit years are 2000-based.
		{"the 8/7 call", time.Date(2025, 8, 7, 0, 0, 0, 0, time.UTC)},
		{"on 8/7/24", time.Date(2024, 8, 7, 0, 0, 0, 0, time.UTC)},
		{"on 08-07-2024", time.Date(2024, 8, 7, 0, 0, 0, 0, time.UTC)},
		// Month-name form wins when both appear.
		{"Aug 7 or maybe 9/1", time.Date(2025, 8, 7, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseMessageDate(tt.message, fixedNow)
		require.NoError(t, err, "message: %s", tt.message)
		assert.Equal(t, tt.want, got, "message: %s", tt.message)
	}
}

func TestParseMessageDate_Invalid(t *testing.T) {
	invalid := []string{
		"the meeting on 13/45",
		"on 2/30",
		"on 0/10",
	}
	for _, message := range invalid {
		signal := detectTemporal(message, fixedNow)
		assert.Equal(t, temporalOnDate, signal.class, "message: %s", message)
		assert.Error(t, signal.err, "message: %s", message)
	}
}
