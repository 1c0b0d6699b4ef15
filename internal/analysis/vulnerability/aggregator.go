// Package vulnerability merges leverage points, compliance issues, and
// weak spots into one normalized opponent-vulnerability list.
package vulnerability

import (
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// Aggregate remaps each source finding onto the vulnerability taxonomy and
// attaches the estimated cost to the opponent of being challenged on it.
// Findings with no taxonomy mapping are dropped; the taxonomy is the
// contract, not a catch-all.
func Aggregate(
	leverage []insight.LeveragePoint,
	compliance []insight.ComplianceIssue,
	weakSpots []insight.WeakSpot,
) []insight.Vulnerability {
	var out []insight.Vulnerability

	for _, p := range leverage {
		vt, ok := leverageTaxonomy[p.Type]
		if !ok {
			continue
		}
		out = append(out, insight.Vulnerability{
			Type:          vt,
			Severity:      p.Severity,
			Description:   p.Rationale,
			Evidence:      p.Evidence,
			EstimatedCost: estimatedCost(vt, p.Severity),
			Source:        insight.SourceLeverage,
		})
	}
	for _, c := range compliance {
		vt, ok := complianceTaxonomy[c.Rule]
		if !ok {
			continue
		}
		out = append(out, insight.Vulnerability{
			Type:          vt,
			Severity:      c.Severity,
			Description:   c.Description,
			Evidence:      c.Evidence,
			EstimatedCost: estimatedCost(vt, c.Severity),
			Source:        insight.SourceCompliance,
		})
	}
	for _, w := range weakSpots {
		vt, ok := weakSpotTaxonomy[w.Type]
		if !ok {
			continue
		}
		out = append(out, insight.Vulnerability{
			Type:          vt,
			Severity:      w.Severity,
			Description:   w.Rationale,
			Evidence:      w.Evidence,
			EstimatedCost: estimatedCost(vt, w.Severity),
			Source:        insight.SourceWeakSpot,
		})
	}
	return out
}

var leverageTaxonomy = map[insight.LeverageType]insight.VulnerabilityType{
	insight.LeverageLateResponse:      insight.VulnLateResponse,
	insight.LeverageMissingPreAction:  insight.VulnMissingPreAction,
	insight.LeverageMissingEvidence:   insight.VulnMissingRecords,
	insight.LeverageOverdueDeadline:   insight.VulnIncompleteDisclosure,
	insight.LeverageMissingDisclosure: insight.VulnIncompleteDisclosure,
	// Substantive merit points are case strengths, not opponent process
	// failures; they carry no taxonomy entry on purpose.
}

var complianceTaxonomy = map[insight.ComplianceRule]insight.VulnerabilityType{
	insight.RuleLateDisclosure:          insight.VulnIncompleteDisclosure,
	insight.RuleMissingParticulars:      insight.VulnMissingParticulars,
	insight.RuleMissingPreAction:        insight.VulnMissingPreAction,
	insight.RuleMissingTenancyAgreement: insight.VulnDefectiveNotice,
	insight.RuleMissingMedicalEvidence:  insight.VulnExpertNonCompliance,
	insight.RuleMissingChronology:       insight.VulnMissingRecords,
	insight.RuleMissingHazardAssessment: insight.VulnExpertNonCompliance,
}

var weakSpotTaxonomy = map[insight.WeakSpotType]insight.VulnerabilityType{
	insight.WeakSpotContradiction:       insight.VulnMissingParticulars,
	insight.WeakSpotMissingEvidence:     insight.VulnMissingRecords,
	insight.WeakSpotTimelineGap:         insight.VulnMissingRecords,
	insight.WeakSpotDateInversion:       insight.VulnDefectiveNotice,
	insight.WeakSpotMissingRepairRecord: insight.VulnMissingRecords,
	insight.WeakSpotUnansweredComplaint: insight.VulnLateResponse,
}

// estimatedCost is a coarse narrative estimate of what the vulnerability
// costs the opponent if pressed.
func estimatedCost(vt insight.VulnerabilityType, sev common.Severity) string {
	base := map[insight.VulnerabilityType]string{
		insight.VulnIncompleteDisclosure: "adverse inference and the costs of a disclosure application",
		insight.VulnDefectiveNotice:      "loss of the procedural point and costs of regularising",
		insight.VulnMissingRecords:       "inability to evidence their account at trial",
		insight.VulnExpertNonCompliance:  "exclusion or discounting of their expert position",
		insight.VulnLateResponse:         "conduct-based costs sanctions and judicial criticism",
		insight.VulnMissingParticulars:   "strike-out exposure or a further-information order",
		insight.VulnIncorrectService:     "invalidity of the step served and repeat costs",
		insight.VulnMissingPreAction:     "pre-action conduct costs sanctions",
	}[vt]
	if sev == common.SeverityCritical {
		return base + ", with the court likely to penalise on the standard applications"
	}
	return base
}
