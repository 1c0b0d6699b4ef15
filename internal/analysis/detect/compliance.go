package detect

import (
	"fmt"
	"strings"

	"github.com/casefort/LitIntel/internal/config"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// ComplianceChecker runs the deterministic procedural-rule checks.  Every
// rule is a fixed threshold comparison; there is no scoring here, a rule
// either fires or it does not.
type ComplianceChecker struct {
	cfg config.AnalysisConfig
}

// NewComplianceChecker builds a ComplianceChecker with the given thresholds.
func NewComplianceChecker(cfg config.AnalysisConfig) *ComplianceChecker {
	return &ComplianceChecker{cfg: cfg}
}

// Check returns every procedural rule failure found on the case.
func (c *ComplianceChecker) Check(in *Input) []insight.ComplianceIssue {
	if in.File == nil {
		return nil
	}
	var issues []insight.ComplianceIssue
	add := func(i *insight.ComplianceIssue) {
		if i != nil {
			issues = append(issues, *i)
		}
	}

	add(c.lateDisclosure(in))
	add(c.missingParticulars(in))
	add(c.missingPreAction(in))
	add(c.missingChronology(in))

	switch in.PracticeArea() {
	case litigation.PracticeHousingDisrepair:
		add(c.missingTenancyAgreement(in))
		add(c.missingHazardAssessment(in))
	case litigation.PracticePersonalInjury, litigation.PracticeClinicalNegligence:
		add(c.missingMedicalEvidence(in))
	}
	return issues
}

func (c *ComplianceChecker) lateDisclosure(in *Input) *insight.ComplianceIssue {
	if !in.File.Case.Issued() || hasDisclosureMaterial(in) {
		return nil
	}
	days := in.File.Case.DaysSinceIssue(in.Now)
	if days <= c.cfg.DisclosureOverdueDays {
		return nil
	}
	sev := common.SeverityHigh
	app := insight.ApplicationDirection
	if days > c.cfg.DisclosureCriticalDays {
		sev = common.SeverityCritical
		app = insight.ApplicationUnlessOrder
	}
	return &insight.ComplianceIssue{
		Rule:     insight.RuleLateDisclosure,
		Severity: sev,
		Description: fmt.Sprintf("Disclosure outstanding %d days after issue (thresholds %d/%d)",
			days, c.cfg.DisclosureOverdueDays, c.cfg.DisclosureCriticalDays),
		Evidence:             []string{fmt.Sprintf("issued %d days ago, no disclosure on file", days)},
		SuggestedApplication: app,
	}
}

func (c *ComplianceChecker) missingParticulars(in *Input) *insight.ComplianceIssue {
	if !in.File.Case.Issued() {
		return nil
	}
	if containsText(in, "particulars of claim") {
		return nil
	}
	app := insight.ApplicationFurtherInformation
	if in.Role.Role == litigation.RoleDefendant {
		// A defendant facing an unparticularised claim can go further.
		app = insight.ApplicationStrikeOut
	}
	return &insight.ComplianceIssue{
		Rule:                 insight.RuleMissingParticulars,
		Severity:             common.SeverityHigh,
		Description:          "Proceedings issued but no particulars of claim on file",
		Evidence:             []string{"no document matching particulars of claim"},
		SuggestedApplication: app,
	}
}

func (c *ComplianceChecker) missingPreAction(in *Input) *insight.ComplianceIssue {
	for i := range in.File.Letters {
		if in.File.Letters[i].IsPreAction() {
			return nil
		}
	}
	age := in.CaseAgeDays()
	if age <= c.cfg.PreActionOverdueDays {
		return nil
	}
	return &insight.ComplianceIssue{
		Rule:     insight.RuleMissingPreAction,
		Severity: common.SeverityMedium,
		Description: fmt.Sprintf("No pre-action protocol letter after %d days (threshold %d)",
			age, c.cfg.PreActionOverdueDays),
		Evidence:             []string{fmt.Sprintf("case open %d days, no protocol letter", age)},
		SuggestedApplication: insight.ApplicationCosts,
	}
}

func (c *ComplianceChecker) missingChronology(in *Input) *insight.ComplianceIssue {
	if len(in.File.Timeline) <= c.cfg.ChronologyMinEvents {
		return nil
	}
	if containsText(in, "chronology") {
		return nil
	}
	return &insight.ComplianceIssue{
		Rule:     insight.RuleMissingChronology,
		Severity: common.SeverityMedium,
		Description: fmt.Sprintf("%d timeline events but no chronology document prepared",
			len(in.File.Timeline)),
		Evidence:             []string{"no document matching chronology"},
		SuggestedApplication: insight.ApplicationDirection,
	}
}

func (c *ComplianceChecker) missingTenancyAgreement(in *Input) *insight.ComplianceIssue {
	if containsText(in, "tenancy agreement") {
		return nil
	}
	return &insight.ComplianceIssue{
		Rule:                 insight.RuleMissingTenancyAgreement,
		Severity:             common.SeverityHigh,
		Description:          "No tenancy agreement on file for a housing disrepair matter",
		Evidence:             []string{"no document matching tenancy agreement"},
		SuggestedApplication: insight.ApplicationDirection,
	}
}

func (c *ComplianceChecker) missingHazardAssessment(in *Input) *insight.ComplianceIssue {
	lower := strings.ToLower(in.File.AllText())
	hazardLanguage := false
	for _, m := range []string{"damp", "mould", "hazard", "category 1", "excess cold"} {
		if strings.Contains(lower, m) {
			hazardLanguage = true
			break
		}
	}
	if !hazardLanguage {
		return nil
	}
	for _, m := range []string{"hazard assessment", "hhsrs"} {
		if strings.Contains(lower, m) {
			return nil
		}
	}
	return &insight.ComplianceIssue{
		Rule:                 insight.RuleMissingHazardAssessment,
		Severity:             common.SeverityHigh,
		Description:          "Hazard language present in the papers but no hazard assessment on file",
		Evidence:             []string{"hazard references without an HHSRS assessment"},
		SuggestedApplication: insight.ApplicationDirection,
	}
}

func (c *ComplianceChecker) missingMedicalEvidence(in *Input) *insight.ComplianceIssue {
	if in.Role.Role != litigation.RoleClaimant {
		return nil
	}
	for _, m := range []string{"medical report", "medical records", "expert report"} {
		if containsText(in, m) {
			return nil
		}
	}
	return &insight.ComplianceIssue{
		Rule:                 insight.RuleMissingMedicalEvidence,
		Severity:             common.SeverityHigh,
		Description:          "No medical or expert evidence on file for an injury claim",
		Evidence:             []string{"no medical report, medical records, or expert report"},
		SuggestedApplication: insight.ApplicationDirection,
	}
}

func containsText(in *Input, needle string) bool {
	return strings.Contains(strings.ToLower(in.File.AllText()), needle)
}
