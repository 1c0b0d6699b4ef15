package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/pkg/types/common"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	in := AnalysisRequestedPayload{
		CaseID:      common.ID("case-123"),
		RequestedBy: "cli",
		RequestedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	env, err := NewEnvelope(TopicAnalysisRequested, "litintel", in)
	require.NoError(t, err)
	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, TopicAnalysisRequested, env.EventType)
	assert.Equal(t, schemaVersion, env.SchemaVersion)
	assert.False(t, env.Timestamp.IsZero())

	data, err := json.Marshal(env)
	require.NoError(t, err)

	decoded, err := DecodeEnvelope(data)
	require.NoError(t, err)
	assert.Equal(t, env.EventID, decoded.EventID)

	var out AnalysisRequestedPayload
	require.NoError(t, decoded.DecodePayload(&out))
	assert.Equal(t, in, out)
}

func TestDecodeEnvelopeRejectsGarbage(t *testing.T) {
	_, err := DecodeEnvelope([]byte("{not json"))
	assert.Error(t, err)
}

func TestDecodeEnvelopeRejectsMissingEventType(t *testing.T) {
	_, err := DecodeEnvelope([]byte(`{"event_id":"x","payload":{}}`))
	assert.Error(t, err)
}

func TestDecodePayloadNamesEventType(t *testing.T) {
	env := &EventEnvelope{EventType: TopicCaseUpdated, Payload: []byte(`"not an object"`)}
	var out CaseUpdatedPayload
	err := env.DecodePayload(&out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), TopicCaseUpdated)
}

func TestCompletedPayloadFrom(t *testing.T) {
	generated := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	a := &insight.Analysis{
		CaseID:       common.ID("case-9"),
		PracticeArea: litigation.PracticeHousingDisrepair,
		Role:         insight.RoleResult{Role: litigation.RoleClaimant},
		LeveragePoints: []insight.LeveragePoint{
			{Rationale: "deadline missed"},
			{Rationale: "contradictory letters"},
		},
		WeakSpots: []insight.WeakSpot{{Rationale: "no repair records"}},
		Momentum: insight.CaseMomentum{
			State: insight.MomentumStrong,
			Score: 72,
		},
		DegradedSignals: []string{"opponent_activity"},
		GeneratedAt:     generated,
	}

	p := CompletedPayloadFrom(a)
	assert.Equal(t, common.ID("case-9"), p.CaseID)
	assert.Equal(t, "housing_disrepair", p.PracticeArea)
	assert.Equal(t, "claimant", p.Role)
	assert.Equal(t, insight.MomentumStrong, p.MomentumState)
	assert.Equal(t, 72, p.MomentumScore)
	assert.Equal(t, 2, p.LeverageCount)
	assert.Equal(t, 1, p.WeakSpotCount)
	assert.Equal(t, []string{"opponent_activity"}, p.DegradedSignals)
	assert.Equal(t, generated, p.GeneratedAt)
}
