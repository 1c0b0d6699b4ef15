// Package kafka carries analysis events between the API surface and the
// worker: analysis requests flow in, completed analyses flow out, and case
// updates fan out to cache invalidation.
package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/casefort/LitIntel/internal/domain/insight"
	apperrors "github.com/casefort/LitIntel/pkg/errors"
	"github.com/casefort/LitIntel/pkg/types/common"
)

const (
	// TopicAnalysisRequested asks the worker to analyse a case.
	TopicAnalysisRequested = "litintel.analysis.requested"

	// TopicAnalysisCompleted announces a finished analysis.
	TopicAnalysisCompleted = "litintel.analysis.completed"

	// TopicCaseUpdated announces a case-data change; consumers invalidate
	// cached analyses.
	TopicCaseUpdated = "litintel.case.updated"

	// TopicDeadLetter receives messages whose handler failed terminally.
	TopicDeadLetter = "litintel.analysis.deadletter"
)

const schemaVersion = "1.0"

// EventEnvelope is the wire format shared by all topics.
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	SchemaVersion string          `json:"schema_version"`
	Payload       json.RawMessage `json:"payload"`
}

// AnalysisRequestedPayload asks for one case analysis.
type AnalysisRequestedPayload struct {
	CaseID      common.ID `json:"case_id"`
	RequestedBy string    `json:"requested_by,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// AnalysisCompletedPayload summarizes a finished analysis.  The full result
// lives in the snapshot store; the event carries what subscribers need for
// routing and alerting.
type AnalysisCompletedPayload struct {
	CaseID          common.ID             `json:"case_id"`
	PracticeArea    string                `json:"practice_area"`
	Role            string                `json:"role"`
	MomentumState   insight.MomentumState `json:"momentum_state"`
	MomentumScore   int                   `json:"momentum_score"`
	LeverageCount   int                   `json:"leverage_count"`
	WeakSpotCount   int                   `json:"weak_spot_count"`
	DegradedSignals []string              `json:"degraded_signals,omitempty"`
	GeneratedAt     time.Time             `json:"generated_at"`
}

// CaseUpdatedPayload announces a case-data change.
type CaseUpdatedPayload struct {
	CaseID    common.ID `json:"case_id"`
	ChangedAt time.Time `json:"changed_at"`
}

// NewEnvelope wraps a payload for the wire.
func NewEnvelope(eventType, source string, payload interface{}) (*EventEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to encode event payload")
	}
	return &EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: schemaVersion,
		Payload:       data,
	}, nil
}

// DecodeEnvelope parses an envelope off the wire.
func DecodeEnvelope(data []byte) (*EventEnvelope, error) {
	var env EventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to decode event envelope")
	}
	if env.EventType == "" {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "event envelope has no event type")
	}
	return &env, nil
}

// DecodePayload unmarshals the envelope payload into dst.
func (e *EventEnvelope) DecodePayload(dst interface{}) error {
	if err := json.Unmarshal(e.Payload, dst); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to decode event payload").
			WithDetail(e.EventType)
	}
	return nil
}

// CompletedPayloadFrom builds the completion event payload for an analysis.
func CompletedPayloadFrom(a *insight.Analysis) AnalysisCompletedPayload {
	return AnalysisCompletedPayload{
		CaseID:          a.CaseID,
		PracticeArea:    string(a.PracticeArea),
		Role:            string(a.Role.Role),
		MomentumState:   a.Momentum.State,
		MomentumScore:   a.Momentum.Score,
		LeverageCount:   len(a.LeveragePoints),
		WeakSpotCount:   len(a.WeakSpots),
		DegradedSignals: a.DegradedSignals,
		GeneratedAt:     a.GeneratedAt,
	}
}
