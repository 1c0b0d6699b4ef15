package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/pkg/types/common"
)

func TestPredictWithoutHistoryIsMediumConfidence(t *testing.T) {
	in := housingInput(t, 10, 0)
	in.Activity = &litigation.OpponentActivity{SilenceDays: 0}

	preds := NewBehaviorPredictor().Predict(in)
	require.NotEmpty(t, preds)
	for _, p := range preds {
		assert.Equal(t, common.ConfidenceMedium, p.Confidence)
	}
}

func TestPredictWithHistoryIsHighConfidence(t *testing.T) {
	avg := 18.0
	in := housingInput(t, 10, 0)
	in.Activity = &litigation.OpponentActivity{SilenceDays: 5, AvgResponseDays: &avg}

	preds := NewBehaviorPredictor().Predict(in)
	require.Len(t, preds, 2)
	for _, p := range preds {
		assert.Equal(t, common.ConfidenceHigh, p.Confidence)
	}
	assert.Equal(t, 18, preds[0].ExpectedDays)
}

func TestPredictSilencePastAverageAddsEscalation(t *testing.T) {
	avg := 14.0
	in := housingInput(t, 10, 30)
	in.Activity.AvgResponseDays = &avg

	preds := NewBehaviorPredictor().Predict(in)
	require.Len(t, preds, 3)
	assert.Equal(t, "Escalate now rather than wait", preds[2].Action)
}

func TestPredictNilActivity(t *testing.T) {
	in := housingInput(t, 10, 0)
	in.Activity = nil
	preds := NewBehaviorPredictor().Predict(in)
	assert.NotEmpty(t, preds)
}
