package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/pkg/types/common"
)

func TestAnnotateFillsEveryRecord(t *testing.T) {
	a := &insight.Analysis{
		LeveragePoints: []insight.LeveragePoint{
			{Type: insight.LeverageLateResponse, Severity: common.SeverityCritical, Evidence: []string{"45 days silent"}},
			{Type: insight.LeverageType("SOMETHING_NEW"), Severity: common.SeverityLow},
		},
		WeakSpots: []insight.WeakSpot{
			{Type: insight.WeakSpotContradiction, Evidence: []string{"dates conflict"}},
		},
		ComplianceIssues: []insight.ComplianceIssue{
			{Rule: insight.RuleLateDisclosure, Description: "disclosure 40 days late"},
		},
		TimePressure: []insight.TimePressurePoint{
			{Issue: insight.PressureIdealWindow, Evidence: []string{"silent 25 days"}},
		},
		Behavior: []insight.BehaviorPrediction{
			{Action: "chase", Rationale: "average response 14 days"},
		},
		Vulnerabilities: []insight.Vulnerability{
			{Type: insight.VulnLateResponse, Description: "late response"},
		},
		Strategies: []insight.StrategyPath{
			{Route: "A", Approach: "press liability"},
			{Route: "H", Approach: "combined", Hybrid: true},
			{Route: "S", Approach: "standard"},
		},
		Scenarios: []insight.ScenarioOutline{
			{Condition: "no remedy", Consequence: "application succeeds"},
		},
		Judicial: []insight.JudicialExpectation{
			{Stage: insight.StagePreAction, Met: false},
			{Stage: insight.StageIssue, Met: true},
		},
	}

	Annotate(a)

	for _, p := range a.LeveragePoints {
		require.NotNil(t, p.Meta, "every leverage point annotated, including unknown types")
		assert.NotEmpty(t, p.Meta.WhyRecommended)
		assert.NotEmpty(t, p.Meta.TriggeringSignals)
	}
	require.NotNil(t, a.WeakSpots[0].Meta)
	require.NotNil(t, a.ComplianceIssues[0].Meta)
	require.NotNil(t, a.TimePressure[0].Meta)
	require.NotNil(t, a.Behavior[0].Meta)
	require.NotNil(t, a.Vulnerabilities[0].Meta)
	for _, s := range a.Strategies {
		require.NotNil(t, s.Meta)
	}
	require.NotNil(t, a.Scenarios[0].Meta)
	for _, j := range a.Judicial {
		require.NotNil(t, j.Meta)
	}
}

func TestAnnotateTypeKeyedDispatch(t *testing.T) {
	a := &insight.Analysis{
		LeveragePoints: []insight.LeveragePoint{
			{Type: insight.LeverageLateResponse, Evidence: []string{"silence"}},
		},
		TimePressure: []insight.TimePressurePoint{
			{Issue: insight.PressureIdealWindow, Evidence: []string{"window open"}},
		},
	}
	Annotate(a)

	assert.Equal(t, insight.StagePreAction, a.LeveragePoints[0].Meta.BestStage)
	assert.Contains(t, a.TimePressure[0].Meta.WhyRecommended, "band")
}

func TestAnnotateJudicialMetFlag(t *testing.T) {
	a := &insight.Analysis{
		Judicial: []insight.JudicialExpectation{
			{Stage: insight.StageDisclosure, Met: false},
		},
	}
	Annotate(a)
	assert.Contains(t, a.Judicial[0].Meta.WhyRecommended, "does not show")
	assert.Equal(t, insight.StageDisclosure, a.Judicial[0].Meta.BestStage)
}

func TestAnnotatePreservesExistingMeta(t *testing.T) {
	custom := &insight.StrategicInsightMeta{WhyRecommended: "hand-written"}
	a := &insight.Analysis{
		LeveragePoints: []insight.LeveragePoint{
			{Type: insight.LeverageLateResponse, Meta: custom},
		},
	}
	Annotate(a)
	assert.Same(t, custom, a.LeveragePoints[0].Meta)
}

func TestAnnotateNil(t *testing.T) {
	Annotate(nil) // must not panic
}
