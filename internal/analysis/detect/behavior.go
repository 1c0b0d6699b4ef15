package detect

import (
	"fmt"
	"math"

	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// BehaviorPredictor extrapolates likely opponent response patterns from
// their historical response statistics.
type BehaviorPredictor struct{}

// NewBehaviorPredictor builds a BehaviorPredictor.
func NewBehaviorPredictor() *BehaviorPredictor {
	return &BehaviorPredictor{}
}

// Predict returns action/response predictions.  Confidence is high only
// when a historical average response time is available; without history the
// predictions are generic and rated medium.
func (p *BehaviorPredictor) Predict(in *Input) []insight.BehaviorPrediction {
	if in.Activity != nil && in.Activity.AvgResponseDays != nil {
		return p.fromHistory(in, *in.Activity.AvgResponseDays)
	}
	return p.generic(in)
}

func (p *BehaviorPredictor) fromHistory(in *Input, avg float64) []insight.BehaviorPrediction {
	avgDays := int(math.Round(avg))
	if avgDays < 1 {
		avgDays = 1
	}
	preds := []insight.BehaviorPrediction{
		{
			Action:           "Send a substantive chasing letter",
			ExpectedResponse: "A reply in line with their established turnaround",
			ExpectedDays:     avgDays,
			Confidence:       common.ConfidenceHigh,
			Rationale:        fmt.Sprintf("The opponent's historical average response time is %d days", avgDays),
		},
		{
			Action:           "Threaten a court application with a fixed deadline",
			ExpectedResponse: "An accelerated response, typically within half their usual turnaround",
			ExpectedDays:     (avgDays + 1) / 2,
			Confidence:       common.ConfidenceHigh,
			Rationale:        "Opponents who respond routinely respond faster under an application threat",
		},
	}
	if silence := in.SilenceDays(); silence > avgDays {
		preds = append(preds, insight.BehaviorPrediction{
			Action:           "Escalate now rather than wait",
			ExpectedResponse: "The current silence already exceeds their norm; further waiting gains nothing",
			ExpectedDays:     0,
			Confidence:       common.ConfidenceHigh,
			Rationale: fmt.Sprintf("Silence of %d days is past their %d-day average, suggesting deliberate delay",
				silence, avgDays),
		})
	}
	return preds
}

func (p *BehaviorPredictor) generic(in *Input) []insight.BehaviorPrediction {
	return []insight.BehaviorPrediction{
		{
			Action:           "Send a substantive chasing letter",
			ExpectedResponse: "A reply within the usual protocol window",
			ExpectedDays:     21,
			Confidence:       common.ConfidenceMedium,
			Rationale:        "No response history for this opponent; protocol norms applied",
		},
		{
			Action:           "Threaten a court application with a fixed deadline",
			ExpectedResponse: "An accelerated response or instruction of solicitors",
			ExpectedDays:     14,
			Confidence:       common.ConfidenceMedium,
			Rationale:        "Application threats reliably shorten response times even without history",
		},
	}
}
