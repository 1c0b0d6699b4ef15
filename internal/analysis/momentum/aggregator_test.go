package momentum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefort/LitIntel/internal/analysis/detect"
	"github.com/casefort/LitIntel/internal/config"
	"github.com/casefort/LitIntel/internal/domain/evidence"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/internal/testutil"
	"github.com/casefort/LitIntel/pkg/types/common"
)

func clinNegInput(role litigation.CaseRole) *detect.Input {
	return &detect.Input{
		File: testutil.NewCaseFile(litigation.PracticeClinicalNegligence, "case papers"),
		Role: insight.RoleResult{Role: role, Basis: insight.RoleBasisScored},
		Now:  time.Now().UTC(),
	}
}

func TestAggregateStateBanding(t *testing.T) {
	a := NewAggregator(config.DefaultAnalysis())

	cases := []struct {
		name     string
		silence  int
		missing  int
		expected insight.MomentumState
	}{
		{"positive signals band strong", 45, 0, insight.MomentumStrong},
		{"no signals band balanced", 0, 0, insight.MomentumBalanced},
		{"negative signals band weak", 0, 2, insight.MomentumWeak},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := clinNegInput(litigation.RoleDefendant)
			in.Activity = &litigation.OpponentActivity{SilenceDays: tc.silence}
			for i := 0; i < tc.missing; i++ {
				in.Missing = append(in.Missing, evidence.MissingItem{
					Requirement: evidence.Requirement{Label: "expert report", Priority: common.SeverityCritical},
				})
			}
			m := a.Aggregate(in, nil)
			assert.Equal(t, tc.expected, m.State)
			// Banding invariant: strong iff score >= 10.
			assert.Equal(t, m.Score >= 10, m.State == insight.MomentumStrong)
			assert.GreaterOrEqual(t, m.Score, -100)
			assert.LessOrEqual(t, m.Score, 100)
		})
	}
}

func TestAggregateForcedStrongDespiteAdminGaps(t *testing.T) {
	a := NewAggregator(config.DefaultAnalysis())

	in := clinNegInput(litigation.RoleClaimant)
	in.Merits = &insight.MeritsScore{TotalScore: 55}
	in.Missing = []evidence.MissingItem{
		{Requirement: evidence.Requirement{Label: "Client ID", Priority: common.SeverityCritical, Administrative: true}},
		{Requirement: evidence.Requirement{Label: "Signed retainer", Priority: common.SeverityHigh, Administrative: true}},
		{Requirement: evidence.Requirement{Label: "Signed CFA", Priority: common.SeverityHigh, Administrative: true}},
	}

	m := a.Aggregate(in, nil)
	assert.Equal(t, insight.MomentumStrong, m.State,
		"paperwork gaps must not suppress substantive strength")

	// The admin shift is present but capped.
	var admin *insight.MomentumShift
	for i := range m.Shifts {
		if m.Shifts[i].Administrative {
			admin = &m.Shifts[i]
		}
	}
	require.NotNil(t, admin)
	assert.LessOrEqual(t, admin.Weight, 5)
	assert.False(t, admin.Positive)
}

func TestAggregateSubstantiveGapBlocksForcedStrong(t *testing.T) {
	a := NewAggregator(config.DefaultAnalysis())

	in := clinNegInput(litigation.RoleClaimant)
	in.Merits = &insight.MeritsScore{TotalScore: 55}
	in.Missing = []evidence.MissingItem{
		{Requirement: evidence.Requirement{Label: "Medical records", Priority: common.SeverityCritical}},
	}

	m := a.Aggregate(in, nil)
	// Not forced; bands on the arithmetic instead (40 merits - 10 gap = 30).
	assert.Equal(t, insight.MomentumStrong, m.State)
	assert.Equal(t, 30, m.Score)
}

func TestAggregateSubstantiveGapCap(t *testing.T) {
	a := NewAggregator(config.DefaultAnalysis())

	in := clinNegInput(litigation.RoleClaimant)
	for i := 0; i < 10; i++ {
		in.Missing = append(in.Missing, evidence.MissingItem{
			Requirement: evidence.Requirement{Label: "record", Priority: common.SeverityCritical},
		})
	}
	m := a.Aggregate(in, nil)
	assert.Equal(t, -30, m.Score, "substantive gaps cap at 30")
	assert.Equal(t, insight.MomentumWeak, m.State)
}

func TestAggregateConfidence(t *testing.T) {
	a := NewAggregator(config.DefaultAnalysis())

	// Single factor: low confidence regardless of score.
	one := clinNegInput(litigation.RoleClaimant)
	one.Merits = &insight.MeritsScore{TotalScore: 55}
	assert.Equal(t, common.ConfidenceLow, a.Aggregate(one, nil).Confidence)

	// Three factors and a score past 30: high confidence.
	three := clinNegInput(litigation.RoleClaimant)
	three.Merits = &insight.MeritsScore{TotalScore: 55}
	three.Activity = &litigation.OpponentActivity{SilenceDays: 45}
	three.Contradictions = []litigation.Contradiction{{Description: "dates conflict", Confidence: common.ConfidenceHigh}}
	m := a.Aggregate(three, nil)
	require.Len(t, m.Shifts, 3)
	assert.Equal(t, common.ConfidenceHigh, m.Confidence)
}

func TestAggregateLeverageAndExplanation(t *testing.T) {
	a := NewAggregator(config.DefaultAnalysis())

	in := clinNegInput(litigation.RoleDefendant)
	leverage := []insight.LeveragePoint{
		{Type: insight.LeverageLateResponse, Severity: common.SeverityCritical},
		{Type: insight.LeverageOverdueDeadline, Severity: common.SeverityHigh},
	}
	m := a.Aggregate(in, leverage)

	assert.Equal(t, 15, m.Score)
	assert.Equal(t, insight.MomentumStrong, m.State)
	assert.Contains(t, m.Explanation, "procedural leverage")
}

func TestAggregateHousingHazard(t *testing.T) {
	a := NewAggregator(config.DefaultAnalysis())

	in := &detect.Input{
		File: testutil.NewCaseFile(litigation.PracticeHousingDisrepair, "tenant reports damp and mould"),
		Role: insight.RoleResult{Role: litigation.RoleClaimant, Basis: insight.RoleBasisScored},
		Now:  time.Now().UTC(),
	}
	m := a.Aggregate(in, nil)

	var hazard *insight.MomentumShift
	for i := range m.Shifts {
		if m.Shifts[i].Factor == "housing_hazard" {
			hazard = &m.Shifts[i]
		}
	}
	require.NotNil(t, hazard)
	assert.True(t, hazard.Positive, "hazard evidence favours the tenant claimant")
}
