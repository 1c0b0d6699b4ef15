package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefort/LitIntel/internal/analysis/detect"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/internal/testutil"
	"github.com/casefort/LitIntel/pkg/types/common"
)

func baseInput(area litigation.PracticeArea, role litigation.CaseRole) *detect.Input {
	return &detect.Input{
		File: testutil.NewCaseFile(area, "case papers"),
		Role: insight.RoleResult{Role: role, Basis: insight.RoleBasisScored},
		Now:  time.Now().UTC(),
	}
}

func TestGenerateNeverEmpty(t *testing.T) {
	g := NewGenerator(50)
	routes := g.Generate(baseInput(litigation.PracticeOtherLitigation, litigation.RoleClaimant), nil, nil)

	require.Len(t, routes, 1)
	assert.Equal(t, "S", routes[0].Route)
	assert.Equal(t, "Standard pathway", routes[0].Title)
	assert.False(t, routes[0].Hybrid)
}

func TestGenerateClaimantClinNegMeritsLed(t *testing.T) {
	in := baseInput(litigation.PracticeClinicalNegligence, litigation.RoleClaimant)
	in.Merits = &insight.MeritsScore{
		GuidelineBreach:    insight.MeritsComponent{Detected: true, Score: 10},
		ExpertConfirmation: insight.MeritsComponent{Detected: true, Score: 12},
		SeriousHarm:        insight.MeritsComponent{Detected: true, Score: 25},
		DelayCausation:     insight.MeritsComponent{Detected: true, Score: 10},
		TotalScore:         57,
	}

	routes := NewGenerator(50).Generate(in, nil, nil)

	byRoute := map[string]insight.StrategyPath{}
	for _, r := range routes {
		byRoute[r.Route] = r
	}
	assert.Contains(t, byRoute, "A")
	assert.Contains(t, byRoute, "B", "unissued case keeps the protocol route open")
	assert.Contains(t, byRoute, "C", "total of 57 clears the litigate threshold")
	assert.Contains(t, byRoute, "D")
	require.Contains(t, byRoute, "H", "two or more routes synthesize a hybrid")

	assert.True(t, byRoute["H"].Hybrid)
	assert.Equal(t, insight.ProbabilityHigh, byRoute["A"].SuccessProbability)
	assert.Equal(t, insight.ProbabilityHigh, byRoute["H"].SuccessProbability,
		"hybrid inherits the best component probability")
}

func TestGenerateDefendantProcedural(t *testing.T) {
	in := baseInput(litigation.PracticeHousingDisrepair, litigation.RoleDefendant)
	vulns := []insight.Vulnerability{
		{Type: insight.VulnLateResponse, Severity: common.SeverityCritical, Source: insight.SourceLeverage},
		{Type: insight.VulnMissingRecords, Severity: common.SeverityHigh, Source: insight.SourceWeakSpot},
	}
	pressure := []insight.TimePressurePoint{
		{Issue: insight.PressureOpponentSilence, Severity: common.SeverityHigh},
	}

	routes := NewGenerator(50).Generate(in, vulns, pressure)
	require.Len(t, routes, 4, "three qualifying routes plus the hybrid")
	assert.Equal(t, "A", routes[0].Route)
	assert.Equal(t, insight.ProbabilityHigh, routes[0].SuccessProbability,
		"critical vulnerability grades the lead route high")
	assert.True(t, routes[3].Hybrid)
}

func TestGenerateSingleRouteNoHybrid(t *testing.T) {
	in := baseInput(litigation.PracticeOtherLitigation, litigation.RoleDefendant)
	vulns := []insight.Vulnerability{
		{Type: insight.VulnMissingParticulars, Severity: common.SeverityMedium, Source: insight.SourceCompliance},
	}

	routes := NewGenerator(50).Generate(in, vulns, nil)
	require.Len(t, routes, 1)
	assert.False(t, routes[0].Hybrid)
}

func TestGenerateClinNegWeakMeritsFallsBack(t *testing.T) {
	in := baseInput(litigation.PracticeClinicalNegligence, litigation.RoleClaimant)
	in.Merits = &insight.MeritsScore{}

	// Detected nothing and the case is issued: only the standard pathway.
	testutil.Issued(in.File, 10)
	routes := NewGenerator(50).Generate(in, nil, nil)
	require.Len(t, routes, 1)
	assert.Equal(t, "S", routes[0].Route)
}
