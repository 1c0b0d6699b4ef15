package detect

import (
	"fmt"
	"strings"

	"github.com/casefort/LitIntel/internal/config"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// WeakSpotDetector locates evidential vulnerabilities: contradictions,
// missing evidence, timeline gaps, and the housing-specific record
// failures.
type WeakSpotDetector struct {
	cfg config.AnalysisConfig
}

// NewWeakSpotDetector builds a WeakSpotDetector with the given thresholds.
func NewWeakSpotDetector(cfg config.AnalysisConfig) *WeakSpotDetector {
	return &WeakSpotDetector{cfg: cfg}
}

// Detect returns the weak spots found in the input snapshot.
func (d *WeakSpotDetector) Detect(in *Input) []insight.WeakSpot {
	var spots []insight.WeakSpot

	spots = append(spots, contradictionSpots(in)...)
	spots = append(spots, missingEvidenceSpots(in)...)
	spots = append(spots, d.timelineGapSpots(in)...)

	if in.PracticeArea() == litigation.PracticeHousingDisrepair {
		spots = append(spots, housingInversionSpots(in)...)
		if s := missingRepairRecordSpot(in); s != nil {
			spots = append(spots, *s)
		}
		if s := unansweredComplaintSpot(in); s != nil {
			spots = append(spots, *s)
		}
	}
	return spots
}

func contradictionSpots(in *Input) []insight.WeakSpot {
	var spots []insight.WeakSpot
	for _, c := range in.Contradictions {
		sev := common.SeverityMedium
		if c.Confidence == common.ConfidenceHigh {
			sev = common.SeverityHigh
		}
		spots = append(spots, insight.WeakSpot{
			Type:      insight.WeakSpotContradiction,
			Severity:  sev,
			Evidence:  []string{c.Description},
			Rationale: "The opposing account is internally inconsistent on this point",
		})
	}
	return spots
}

func missingEvidenceSpots(in *Input) []insight.WeakSpot {
	var spots []insight.WeakSpot
	for _, item := range in.Missing {
		if item.Requirement.Priority != common.SeverityCritical {
			continue
		}
		sev := common.SeverityCritical
		if in.Role.Role == litigation.RoleClaimant && item.Requirement.Administrative {
			sev = common.SeverityMedium
		}
		spots = append(spots, insight.WeakSpot{
			Type:      insight.WeakSpotMissingEvidence,
			Severity:  sev,
			Evidence:  []string{item.Label()},
			Rationale: fmt.Sprintf("No %q in the evidence gathered to date", item.Label()),
		})
	}
	return spots
}

func (d *WeakSpotDetector) timelineGapSpots(in *Input) []insight.WeakSpot {
	if in.File == nil {
		return nil
	}
	events := in.File.SortedTimeline()
	var spots []insight.WeakSpot
	for i := 1; i < len(events); i++ {
		gap := common.DaysBetween(events[i-1].Date, events[i].Date)
		if gap <= d.cfg.TimelineGapDays {
			continue
		}
		spots = append(spots, insight.WeakSpot{
			Type:     insight.WeakSpotTimelineGap,
			Severity: common.SeverityMedium,
			Evidence: []string{
				fmt.Sprintf("%d-day gap between %q and %q",
					gap, events[i-1].Description, events[i].Description),
			},
			Rationale: fmt.Sprintf("A %d-day unexplained gap in the account exceeds the %d-day threshold",
				gap, d.cfg.TimelineGapDays),
		})
	}
	return spots
}

// housingInversionSpots flags repairs recorded as completed before the
// defect was reported, a strong sign the records were reconstructed.
func housingInversionSpots(in *Input) []insight.WeakSpot {
	events := in.File.SortedTimeline()
	var spots []insight.WeakSpot
	for i, completed := range events {
		if !mentionsRepairCompletion(completed.Description) {
			continue
		}
		for _, reported := range events[i:] {
			if !mentionsReport(reported.Description) {
				continue
			}
			if completed.Date.Before(reported.Date) {
				spots = append(spots, insight.WeakSpot{
					Type:     insight.WeakSpotDateInversion,
					Severity: common.SeverityHigh,
					Evidence: []string{
						fmt.Sprintf("repair %q dated before report %q",
							completed.Description, reported.Description),
					},
					Rationale: "A repair is recorded as completed before the defect was reported",
				})
				break
			}
		}
	}
	return spots
}

func missingRepairRecordSpot(in *Input) *insight.WeakSpot {
	lower := strings.ToLower(in.File.AllText())
	for _, marker := range []string{"repair log", "repair record", "repair history", "works order"} {
		if strings.Contains(lower, marker) {
			return nil
		}
	}
	return &insight.WeakSpot{
		Type:      insight.WeakSpotMissingRepairRecord,
		Severity:  common.SeverityHigh,
		Evidence:  []string{"no repair log, works order, or repair history on file"},
		Rationale: "A landlord unable to produce repair records cannot evidence compliance",
	}
}

// unansweredComplaintSpot fires when the tenant complained repeatedly and
// the record shows no response after the last complaint.
func unansweredComplaintSpot(in *Input) *insight.WeakSpot {
	events := in.File.SortedTimeline()
	complaints := 0
	lastComplaint := -1
	for i, ev := range events {
		if mentionsReport(ev.Description) {
			complaints++
			lastComplaint = i
		}
	}
	if complaints < 2 {
		return nil
	}
	for _, ev := range events[lastComplaint+1:] {
		if mentionsResponse(ev.Description) {
			return nil
		}
	}
	return &insight.WeakSpot{
		Type:      insight.WeakSpotUnansweredComplaint,
		Severity:  common.SeverityHigh,
		Evidence:  []string{fmt.Sprintf("%d complaints with no recorded response after the last", complaints)},
		Rationale: "Repeated complaints with no recorded response undermine the opponent's conduct case",
	}
}

func mentionsRepairCompletion(desc string) bool {
	lower := strings.ToLower(desc)
	if !strings.Contains(lower, "repair") && !strings.Contains(lower, "works") {
		return false
	}
	for _, m := range []string{"completed", "carried out", "fixed", "remedied"} {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func mentionsReport(desc string) bool {
	lower := strings.ToLower(desc)
	for _, m := range []string{"reported", "complaint", "complained", "notified"} {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func mentionsResponse(desc string) bool {
	lower := strings.ToLower(desc)
	for _, m := range []string{"response", "replied", "acknowledged", "inspection arranged"} {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
