package detect

import (
	"fmt"
	"strings"

	"github.com/casefort/LitIntel/internal/config"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// LeverageDetector finds opportunities to pressure the opposing party:
// their silence, missing protocol steps, missing evidence, blown deadlines,
// and absent disclosure.
type LeverageDetector struct {
	cfg config.AnalysisConfig
}

// NewLeverageDetector builds a LeverageDetector with the given thresholds.
func NewLeverageDetector(cfg config.AnalysisConfig) *LeverageDetector {
	return &LeverageDetector{cfg: cfg}
}

// Detect returns the leverage points in presentation order.  For claimant
// clinical-negligence cases, substantive-merit findings lead the list:
// they are the case, procedural gaps are only pressure on top of it.
func (d *LeverageDetector) Detect(in *Input) []insight.LeveragePoint {
	var points []insight.LeveragePoint

	if in.ClaimantClinNeg() && in.Merits != nil {
		points = append(points, meritLeverage(in.Merits)...)
	}

	if p := d.silenceLeverage(in); p != nil {
		points = append(points, *p)
	}
	if p := d.preActionLeverage(in); p != nil {
		points = append(points, *p)
	}
	points = append(points, d.missingEvidenceLeverage(in)...)
	points = append(points, d.overdueDeadlineLeverage(in)...)
	if p := d.disclosureLeverage(in); p != nil {
		points = append(points, *p)
	}
	return points
}

// meritLeverage converts detected substantive-merit components into
// high-priority leverage points.
func meritLeverage(m *insight.MeritsScore) []insight.LeveragePoint {
	var points []insight.LeveragePoint
	add := func(label string, comp insight.MeritsComponent, action string) {
		if !comp.Detected {
			return
		}
		sev := common.SeverityHigh
		if comp.Score >= 20 {
			sev = common.SeverityCritical
		}
		points = append(points, insight.LeveragePoint{
			Type:              insight.LeverageSubstantiveMerit,
			Severity:          sev,
			Evidence:          comp.Details,
			Rationale:         fmt.Sprintf("%s indicators scored %d from the case papers", label, comp.Score),
			RecommendedAction: action,
		})
	}
	add("Guideline breach", m.GuidelineBreach, "Put the breach to the opponent and press for a liability admission")
	add("Expert confirmation", m.ExpertConfirmation, "Serve or foreshadow the supportive expert evidence")
	add("Delay causation", m.DelayCausation, "Particularise the avoidable-delay case in correspondence")
	add("Serious harm", m.SeriousHarm, "Emphasise injury severity when framing quantum and settlement")
	return points
}

func (d *LeverageDetector) silenceLeverage(in *Input) *insight.LeveragePoint {
	silence := in.SilenceDays()
	if silence < d.cfg.SilenceHighDays {
		return nil
	}
	sev := common.SeverityHigh
	if silence >= d.cfg.SilenceCriticalDays {
		sev = common.SeverityCritical
	}
	return &insight.LeveragePoint{
		Type:     insight.LeverageLateResponse,
		Severity: sev,
		Evidence: []string{fmt.Sprintf("no opponent contact for %d days", silence)},
		Rationale: fmt.Sprintf("The opposing party has been silent for %d days, beyond the %d-day threshold",
			silence, d.cfg.SilenceHighDays),
		RecommendedAction: "Send a chasing letter noting the delay and setting a response deadline",
	}
}

// preActionLeverage applies to housing disrepair only: the pre-action
// protocol letter is the gating step there.
func (d *LeverageDetector) preActionLeverage(in *Input) *insight.LeveragePoint {
	if in.PracticeArea() != litigation.PracticeHousingDisrepair || in.File == nil {
		return nil
	}
	for i := range in.File.Letters {
		if in.File.Letters[i].IsPreAction() {
			return nil
		}
	}
	age := in.CaseAgeDays()
	if age <= d.cfg.PreActionOverdueDays {
		return nil
	}
	return &insight.LeveragePoint{
		Type:     insight.LeverageMissingPreAction,
		Severity: common.SeverityHigh,
		Evidence: []string{fmt.Sprintf("no pre-action protocol letter after %d days", age)},
		Rationale: fmt.Sprintf("The matter is %d days old with no pre-action protocol letter on file (threshold %d days)",
			age, d.cfg.PreActionOverdueDays),
		RecommendedAction: "Serve the pre-action protocol letter before the position hardens",
	}
}

func (d *LeverageDetector) missingEvidenceLeverage(in *Input) []insight.LeveragePoint {
	var points []insight.LeveragePoint
	for _, item := range in.Missing {
		if item.Requirement.Priority != common.SeverityCritical {
			continue
		}
		sev := common.SeverityCritical
		if in.Role.Role == litigation.RoleClaimant && item.Requirement.Administrative {
			// Housekeeping gaps are not case-weakening for the claimant.
			sev = common.SeverityMedium
		}
		points = append(points, insight.LeveragePoint{
			Type:              insight.LeverageMissingEvidence,
			Severity:          sev,
			Evidence:          []string{item.Label()},
			Rationale:         fmt.Sprintf("Critical evidence %q is not on file", item.Label()),
			RecommendedAction: fmt.Sprintf("Obtain or request %q", item.Label()),
		})
	}
	return points
}

func (d *LeverageDetector) overdueDeadlineLeverage(in *Input) []insight.LeveragePoint {
	if in.File == nil {
		return nil
	}
	var points []insight.LeveragePoint
	for i := range in.File.Deadlines {
		dl := &in.File.Deadlines[i]
		if !dl.IsOverdue(in.Now) {
			continue
		}
		overdue := dl.DaysOverdue(in.Now)
		sev := common.SeverityHigh
		if overdue > d.cfg.DeadlineCriticalDays {
			sev = common.SeverityCritical
		}
		points = append(points, insight.LeveragePoint{
			Type:              insight.LeverageOverdueDeadline,
			Severity:          sev,
			Evidence:          []string{fmt.Sprintf("%s overdue by %d days", dl.Title, overdue)},
			Rationale:         fmt.Sprintf("Deadline %q passed %d days ago and remains open", dl.Title, overdue),
			RecommendedAction: "Raise the default in correspondence and reserve the right to apply",
		})
	}
	return points
}

func (d *LeverageDetector) disclosureLeverage(in *Input) *insight.LeveragePoint {
	if in.File == nil || !in.File.Case.Issued() {
		return nil
	}
	days := in.File.Case.DaysSinceIssue(in.Now)
	if days < d.cfg.DisclosureOverdueDays {
		return nil
	}
	if hasDisclosureMaterial(in) {
		return nil
	}
	return &insight.LeveragePoint{
		Type:     insight.LeverageMissingDisclosure,
		Severity: common.SeverityHigh,
		Evidence: []string{fmt.Sprintf("no disclosure on file %d days after issue", days)},
		Rationale: fmt.Sprintf("Proceedings issued %d days ago with no disclosure received (threshold %d days)",
			days, d.cfg.DisclosureOverdueDays),
		RecommendedAction: "Chase disclosure and put the opponent on notice of an application",
	}
}

// hasDisclosureMaterial scans document names and text for disclosure
// artefacts.
func hasDisclosureMaterial(in *Input) bool {
	if in.File == nil {
		return false
	}
	lower := strings.ToLower(in.File.AllText())
	return strings.Contains(lower, "disclosure") || strings.Contains(lower, "list of documents")
}
