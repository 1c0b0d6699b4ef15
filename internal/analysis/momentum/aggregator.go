// Package momentum folds every signal into the single directional verdict:
// is this case getting stronger or weaker, and how sure are we.
package momentum

import (
	"fmt"
	"sort"
	"strings"

	"github.com/casefort/LitIntel/internal/analysis/detect"
	"github.com/casefort/LitIntel/internal/config"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// Caps on individual factor contributions.  Administrative gaps are bounded
// tightly for claimant cases: paperwork must never be able to sink a case
// with real substantive strength.
const (
	meritsCap         = 40
	silenceCap        = 20
	contradictionCap  = 15
	leverageCap       = 30
	adminGapCap       = 5
	substantiveGapCap = 30
	deadlineCap       = 15

	scoreFloor = -100
	scoreCeil  = 100
)

// Aggregator computes the case momentum verdict.
type Aggregator struct {
	cfg config.AnalysisConfig
}

// NewAggregator builds an Aggregator.
func NewAggregator(cfg config.AnalysisConfig) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// Aggregate folds the detector outputs into a CaseMomentum.  The score is
// clamped to [-100,100]; bands: >=30 strong, >=10 strong (medium
// confidence), <=-30 weak, <=-10 weak, otherwise balanced.  For claimant
// clinical-negligence cases with merits at or above the strong threshold
// and no non-administrative negative factor, the state is forced to strong.
func (a *Aggregator) Aggregate(in *detect.Input, leverage []insight.LeveragePoint) insight.CaseMomentum {
	shifts := a.collectShifts(in, leverage)

	score := insight.NetScore(shifts)
	if score > scoreCeil {
		score = scoreCeil
	}
	if score < scoreFloor {
		score = scoreFloor
	}

	state := bandFor(score)
	if a.forcedStrong(in, shifts) {
		state = insight.MomentumStrong
	}

	m := insight.CaseMomentum{
		State:       state,
		Score:       score,
		Shifts:      shifts,
		Confidence:  confidenceFor(score, len(shifts)),
		Explanation: explain(state, score, shifts),
	}
	if in.File != nil {
		m.CaseID = in.File.Case.ID
	}
	return m
}

func (a *Aggregator) collectShifts(in *detect.Input, leverage []insight.LeveragePoint) []insight.MomentumShift {
	var shifts []insight.MomentumShift

	if in.ClaimantClinNeg() && in.Merits != nil && in.Merits.TotalScore > 0 {
		w := in.Merits.TotalScore
		if w > meritsCap {
			w = meritsCap
		}
		shifts = append(shifts, insight.MomentumShift{
			Factor:      "substantive_merits",
			Description: fmt.Sprintf("substantive merits total %d", in.Merits.TotalScore),
			Weight:      w,
			Positive:    true,
		})
	}

	if silence := in.SilenceDays(); silence >= a.cfg.SilenceHighDays {
		w := 10
		if silence >= a.cfg.SilenceCriticalDays {
			w = silenceCap
		}
		shifts = append(shifts, insight.MomentumShift{
			Factor:      "opponent_silence",
			Description: fmt.Sprintf("opponent silent %d days", silence),
			Weight:      w,
			Positive:    true,
		})
	}

	if n := len(in.Contradictions); n > 0 {
		w := n * 5
		if w > contradictionCap {
			w = contradictionCap
		}
		shifts = append(shifts, insight.MomentumShift{
			Factor:      "contradictions",
			Description: fmt.Sprintf("%d contradictions in the opposing account", n),
			Weight:      w,
			Positive:    true,
		})
	}

	if w := leverageWeight(leverage); w > 0 {
		shifts = append(shifts, insight.MomentumShift{
			Factor:      "procedural_leverage",
			Description: fmt.Sprintf("%d leverage points against the opponent", len(leverage)),
			Weight:      w,
			Positive:    true,
		})
	}

	shifts = append(shifts, a.missingEvidenceShifts(in)...)

	if in.File != nil {
		if n := in.File.RecentDocumentCount(in.Now, 30); n >= 3 {
			shifts = append(shifts, insight.MomentumShift{
				Factor:      "recent_activity",
				Description: fmt.Sprintf("%d documents added in the last 30 days", n),
				Weight:      5,
				Positive:    true,
			})
		}
		if n := overdueCount(in); n > 0 {
			w := n * 5
			if w > deadlineCap {
				w = deadlineCap
			}
			shifts = append(shifts, insight.MomentumShift{
				Factor:      "overdue_deadlines",
				Description: fmt.Sprintf("%d deadlines overdue on the case", n),
				Weight:      w,
				Positive:    false,
			})
		}
		if a.housingHazard(in) {
			shifts = append(shifts, insight.MomentumShift{
				Factor:      "housing_hazard",
				Description: "hazard language present in the housing papers",
				Weight:      10,
				Positive:    in.Role.Role == litigation.RoleClaimant,
			})
		}
	}
	return shifts
}

// missingEvidenceShifts splits gaps into substantive and administrative for
// claimant cases, with very different caps.
func (a *Aggregator) missingEvidenceShifts(in *detect.Input) []insight.MomentumShift {
	if len(in.Missing) == 0 {
		return nil
	}
	splitAdmin := in.Role.Role == litigation.RoleClaimant

	substantive, admin := 0, 0
	for _, item := range in.Missing {
		if splitAdmin && item.Requirement.Administrative {
			admin++
		} else {
			substantive++
		}
	}

	var shifts []insight.MomentumShift
	if substantive > 0 {
		w := substantive * 10
		if w > substantiveGapCap {
			w = substantiveGapCap
		}
		shifts = append(shifts, insight.MomentumShift{
			Factor:      "missing_evidence",
			Description: fmt.Sprintf("%d substantive evidence gaps", substantive),
			Weight:      w,
			Positive:    false,
		})
	}
	if admin > 0 {
		w := admin * 2
		if w > adminGapCap {
			w = adminGapCap
		}
		shifts = append(shifts, insight.MomentumShift{
			Factor:         "administrative_gaps",
			Description:    fmt.Sprintf("%d administrative items outstanding", admin),
			Weight:         w,
			Positive:       false,
			Administrative: true,
		})
	}
	return shifts
}

// forcedStrong applies the substantive-strength override: merits at or
// above the strong threshold with only administrative negativity means the
// case is strong no matter what the arithmetic says.
func (a *Aggregator) forcedStrong(in *detect.Input, shifts []insight.MomentumShift) bool {
	if !in.ClaimantClinNeg() || in.Merits == nil {
		return false
	}
	if in.Merits.TotalScore < a.cfg.MeritsStrongThreshold {
		return false
	}
	for _, s := range shifts {
		if !s.Positive && !s.Administrative {
			return false
		}
	}
	return true
}

func bandFor(score int) insight.MomentumState {
	switch {
	case score >= 10:
		return insight.MomentumStrong
	case score <= -10:
		return insight.MomentumWeak
	default:
		return insight.MomentumBalanced
	}
}

func confidenceFor(score, factors int) common.Confidence {
	if factors < 2 {
		return common.ConfidenceLow
	}
	if (score >= 30 || score <= -30) && factors >= 3 {
		return common.ConfidenceHigh
	}
	return common.ConfidenceMedium
}

// explain names the top contributing factors in weight order.
func explain(state insight.MomentumState, score int, shifts []insight.MomentumShift) string {
	if len(shifts) == 0 {
		return fmt.Sprintf("Momentum is %s with no contributing factors detected", state)
	}
	ordered := make([]insight.MomentumShift, len(shifts))
	copy(ordered, shifts)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Weight > ordered[j].Weight })

	top := ordered
	if len(top) > 3 {
		top = top[:3]
	}
	names := make([]string, 0, len(top))
	for _, s := range top {
		names = append(names, strings.ReplaceAll(s.Factor, "_", " "))
	}
	return fmt.Sprintf("Momentum is %s (score %+d), driven by %s", state, score, strings.Join(names, ", "))
}

func leverageWeight(points []insight.LeveragePoint) int {
	w := 0
	for _, p := range points {
		switch p.Severity {
		case common.SeverityCritical:
			w += 10
		case common.SeverityHigh:
			w += 5
		}
	}
	if w > leverageCap {
		w = leverageCap
	}
	return w
}

func overdueCount(in *detect.Input) int {
	n := 0
	for i := range in.File.Deadlines {
		if in.File.Deadlines[i].IsOverdue(in.Now) {
			n++
		}
	}
	return n
}

// housingHazard reports hazard language on a housing case.
func (a *Aggregator) housingHazard(in *detect.Input) bool {
	if in.PracticeArea() != litigation.PracticeHousingDisrepair {
		return false
	}
	lower := strings.ToLower(in.File.AllText())
	for _, m := range []string{"damp", "mould", "hazard", "category 1"} {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
