package common

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_IsValidUUID(t *testing.T) {
	id := NewID()
	assert.NoError(t, id.Validate())
}

func TestGenerateID_PreservesExisting(t *testing.T) {
	assert.Equal(t, ID("abc"), GenerateID("abc"))
	assert.NotEmpty(t, GenerateID(""))
}

func TestID_Validate_Invalid(t *testing.T) {
	assert.Error(t, ID("").Validate())
	assert.Error(t, ID("not-a-uuid").Validate())
}

func TestTimestamp_JSONRoundTrip(t *testing.T) {
	orig := Timestamp(time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC))
	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var decoded Timestamp
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, orig.UTC().Equal(decoded.UTC()))
}

func TestSeverity_Rank_Ordering(t *testing.T) {
	assert.Greater(t, SeverityCritical.Rank(), SeverityHigh.Rank())
	assert.Greater(t, SeverityHigh.Rank(), SeverityMedium.Rank())
	assert.Greater(t, SeverityMedium.Rank(), SeverityLow.Rank())
	assert.Equal(t, 0, Severity("unknown").Rank())
	assert.False(t, Severity("unknown").Valid())
}

func TestDaysBetween_IgnoresClockTime(t *testing.T) {
	a := time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2025, 1, 2, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(a, b))
	assert.Equal(t, -1, DaysBetween(b, a))
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	then := now.AddDate(0, 0, -45)
	assert.Equal(t, 45, DaysSince(then, now))
}
