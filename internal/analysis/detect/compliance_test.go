package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefort/LitIntel/internal/config"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/internal/testutil"
)

func issuesByRule(issues []insight.ComplianceIssue) map[insight.ComplianceRule]insight.ComplianceIssue {
	out := map[insight.ComplianceRule]insight.ComplianceIssue{}
	for _, i := range issues {
		out[i.Rule] = i
	}
	return out
}

func TestComplianceLateDisclosureEscalation(t *testing.T) {
	c := NewComplianceChecker(config.DefaultAnalysis())

	in := housingInput(t, 5, 0)
	in.File.Case.PracticeArea = litigation.PracticeOtherLitigation
	testutil.Issued(in.File, 35)

	byRule := issuesByRule(c.Check(in))
	late, ok := byRule[insight.RuleLateDisclosure]
	require.True(t, ok)
	assert.Equal(t, insight.ApplicationDirection, late.SuggestedApplication)

	testutil.Issued(in.File, 70)
	byRule = issuesByRule(c.Check(in))
	late = byRule[insight.RuleLateDisclosure]
	assert.Equal(t, insight.ApplicationUnlessOrder, late.SuggestedApplication,
		"past the critical threshold the suggestion escalates to an unless order")
}

func TestComplianceMissingParticularsByRole(t *testing.T) {
	c := NewComplianceChecker(config.DefaultAnalysis())

	in := housingInput(t, 5, 0)
	in.File.Case.PracticeArea = litigation.PracticeOtherLitigation
	testutil.Issued(in.File, 10)

	byRule := issuesByRule(c.Check(in))
	require.Contains(t, byRule, insight.RuleMissingParticulars)
	assert.Equal(t, insight.ApplicationFurtherInformation,
		byRule[insight.RuleMissingParticulars].SuggestedApplication)

	in.Role = insight.RoleResult{Role: litigation.RoleDefendant, Basis: insight.RoleBasisScored}
	byRule = issuesByRule(c.Check(in))
	assert.Equal(t, insight.ApplicationStrikeOut,
		byRule[insight.RuleMissingParticulars].SuggestedApplication)

	in.File.Documents[0].ExtractedText = "particulars of claim served with the claim form"
	byRule = issuesByRule(c.Check(in))
	assert.NotContains(t, byRule, insight.RuleMissingParticulars)
}

func TestComplianceHousingRules(t *testing.T) {
	c := NewComplianceChecker(config.DefaultAnalysis())

	in := housingInput(t, 5, 0)
	in.File.Documents[0].ExtractedText = "tenant reports damp and mould in the property"

	byRule := issuesByRule(c.Check(in))
	assert.Contains(t, byRule, insight.RuleMissingTenancyAgreement)
	assert.Contains(t, byRule, insight.RuleMissingHazardAssessment)

	in.File.Documents[0].ExtractedText = "tenancy agreement attached; HHSRS hazard assessment completed for the damp"
	byRule = issuesByRule(c.Check(in))
	assert.NotContains(t, byRule, insight.RuleMissingTenancyAgreement)
	assert.NotContains(t, byRule, insight.RuleMissingHazardAssessment)
}

func TestComplianceMissingMedicalEvidence(t *testing.T) {
	c := NewComplianceChecker(config.DefaultAnalysis())

	in := housingInput(t, 5, 0)
	in.File.Case.PracticeArea = litigation.PracticePersonalInjury

	byRule := issuesByRule(c.Check(in))
	assert.Contains(t, byRule, insight.RuleMissingMedicalEvidence)

	// The rule is claimant-side only.
	in.Role = insight.RoleResult{Role: litigation.RoleDefendant, Basis: insight.RoleBasisScored}
	byRule = issuesByRule(c.Check(in))
	assert.NotContains(t, byRule, insight.RuleMissingMedicalEvidence)
}

func TestComplianceMissingChronology(t *testing.T) {
	c := NewComplianceChecker(config.DefaultAnalysis())

	in := housingInput(t, 5, 0)
	in.File.Case.PracticeArea = litigation.PracticeOtherLitigation
	for i := 0; i < 6; i++ {
		in.File.Timeline = append(in.File.Timeline, litigation.TimelineEvent{
			Date: in.Now.AddDate(0, 0, -i), Description: "step taken",
		})
	}

	byRule := issuesByRule(c.Check(in))
	assert.Contains(t, byRule, insight.RuleMissingChronology)

	in.File.Documents[0].ExtractedText = "case chronology prepared"
	byRule = issuesByRule(c.Check(in))
	assert.NotContains(t, byRule, insight.RuleMissingChronology)
}
