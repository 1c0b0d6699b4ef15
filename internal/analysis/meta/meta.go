// Package meta attaches the explanatory annotation to every insight: why
// it was recommended, what triggered it, what ignoring it costs.  Dispatch
// is keyed by insight type with a generic fallback, so annotation can never
// fail to produce a result.
package meta

import (
	"fmt"
	"strings"

	"github.com/casefort/LitIntel/internal/domain/insight"
)

// Annotate fills Meta on every record in the analysis that does not
// already carry one.
func Annotate(a *insight.Analysis) {
	if a == nil {
		return
	}
	for i := range a.LeveragePoints {
		p := &a.LeveragePoints[i]
		if p.Meta == nil {
			p.Meta = ForLeverage(p)
		}
	}
	for i := range a.WeakSpots {
		w := &a.WeakSpots[i]
		if w.Meta == nil {
			w.Meta = ForWeakSpot(w)
		}
	}
	for i := range a.ComplianceIssues {
		c := &a.ComplianceIssues[i]
		if c.Meta == nil {
			c.Meta = generic(c.Description, c.Evidence, insight.StageIssue)
		}
	}
	for i := range a.TimePressure {
		p := &a.TimePressure[i]
		if p.Meta == nil {
			p.Meta = ForTimePressure(p)
		}
	}
	for i := range a.Behavior {
		b := &a.Behavior[i]
		if b.Meta == nil {
			b.Meta = generic(b.Rationale, []string{b.Action}, insight.StagePreAction)
		}
	}
	for i := range a.Vulnerabilities {
		v := &a.Vulnerabilities[i]
		if v.Meta == nil {
			v.Meta = generic(v.Description, v.Evidence, insight.StageDisclosure)
		}
	}
	for i := range a.Strategies {
		s := &a.Strategies[i]
		if s.Meta == nil {
			s.Meta = ForStrategy(s)
		}
	}
	for i := range a.Scenarios {
		s := &a.Scenarios[i]
		if s.Meta == nil {
			s.Meta = generic(s.Condition, s.Basis, insight.StageIssue)
		}
	}
	for i := range a.Judicial {
		j := &a.Judicial[i]
		if j.Meta == nil {
			j.Meta = ForJudicial(j)
		}
	}
}

// ForLeverage builds the annotation for a leverage point.
func ForLeverage(p *insight.LeveragePoint) *insight.StrategicInsightMeta {
	switch p.Type {
	case insight.LeverageLateResponse:
		return &insight.StrategicInsightMeta{
			WhyRecommended:    "Sustained opponent silence is on the record and directly attributable to them",
			TriggeringSignals: p.Evidence,
			AlternativeBranch: "Had they responded within protocol, a merits-led approach would lead instead",
			UnlockCondition:   "A substantive response resets this point",
			RiskIfIgnored:     "The delay record goes stale and loses its persuasive force",
			BestStage:         insight.StagePreAction,
			WinRationale:      "Courts penalise unexplained silence on conduct and costs",
		}
	case insight.LeverageMissingPreAction:
		return &insight.StrategicInsightMeta{
			WhyRecommended:    "The protocol step is overdue and the omission is procedurally unambiguous",
			TriggeringSignals: p.Evidence,
			AlternativeBranch: "With the letter served, attention shifts to the opponent's response deadline",
			UnlockCondition:   "Serving the protocol letter converts this into a response clock",
			RiskIfIgnored:     "Conduct criticism and costs exposure at any later hearing",
			BestStage:         insight.StagePreAction,
			WinRationale:      "Protocol compliance is a threshold question the court checks first",
		}
	case insight.LeverageMissingDisclosure:
		return &insight.StrategicInsightMeta{
			WhyRecommended:    "Disclosure is overdue post-issue; the default is theirs alone",
			TriggeringSignals: p.Evidence,
			AlternativeBranch: "With disclosure in, the analysis moves to its completeness",
			UnlockCondition:   "Service of their list restarts the assessment",
			RiskIfIgnored:     "The window for an unless order narrows as trial approaches",
			BestStage:         insight.StageDisclosure,
			WinRationale:      "Disclosure defaults convert cheaply into unless orders",
		}
	case insight.LeverageSubstantiveMerit:
		return &insight.StrategicInsightMeta{
			WhyRecommended:    "The case papers themselves evidence the substantive strength",
			TriggeringSignals: p.Evidence,
			AlternativeBranch: "Without these findings, procedural pressure would carry the case instead",
			UnlockCondition:   "Already available; served evidence makes it irreversible",
			RiskIfIgnored:     "The strongest material in the case goes unused in negotiation",
			BestStage:         insight.StageEvidence,
			WinRationale:      "Substantive merit converts to admissions and settlements at the best rates",
		}
	default:
		return generic(p.Rationale, p.Evidence, insight.StagePreAction)
	}
}

// ForWeakSpot builds the annotation for a weak spot.
func ForWeakSpot(w *insight.WeakSpot) *insight.StrategicInsightMeta {
	switch w.Type {
	case insight.WeakSpotContradiction:
		return &insight.StrategicInsightMeta{
			WhyRecommended:    "Internal inconsistency in the opposing account is independently verifiable",
			TriggeringSignals: w.Evidence,
			AlternativeBranch: "A consistent account would shift focus to record gaps instead",
			UnlockCondition:   "Put the inconsistency to them in a focused request",
			RiskIfIgnored:     "They reconcile the accounts before the inconsistency is pinned down",
			BestStage:         insight.StageDisclosure,
			WinRationale:      "Exposed contradictions undermine every statement the maker gives",
		}
	case insight.WeakSpotDateInversion:
		return &insight.StrategicInsightMeta{
			WhyRecommended:    "A repair recorded before its report is close to unanswerable",
			TriggeringSignals: w.Evidence,
			AlternativeBranch: "Clean records would push the case onto the complaint history instead",
			UnlockCondition:   "Obtain the underlying works orders to fix the dates",
			RiskIfIgnored:     "The records anomaly is explained away without scrutiny",
			BestStage:         insight.StageDisclosure,
			WinRationale:      "Reconstructed records taint the opponent's entire documentary case",
		}
	default:
		return generic(w.Rationale, w.Evidence, insight.StageDisclosure)
	}
}

// ForTimePressure builds the annotation for a time-pressure point.
func ForTimePressure(p *insight.TimePressurePoint) *insight.StrategicInsightMeta {
	switch p.Issue {
	case insight.PressureIdealWindow:
		return &insight.StrategicInsightMeta{
			WhyRecommended:    "The silence duration sits in the band where escalation lands hardest",
			TriggeringSignals: p.Evidence,
			AlternativeBranch: "Past the window, escalation still works but reads as delayed",
			UnlockCondition:   "Already open; the window closes as silence normalises",
			RiskIfIgnored:     "The tactical moment passes and the silence becomes the status quo",
			BestStage:         insight.StagePreAction,
			WinRationale:      "Well-timed escalation maximises both response odds and the conduct record",
		}
	default:
		return generic(p.Rationale, p.Evidence, insight.StagePreAction)
	}
}

// ForStrategy builds the annotation for a strategy route, keyed by route
// letter.
func ForStrategy(s *insight.StrategyPath) *insight.StrategicInsightMeta {
	switch s.Route {
	case "H":
		return &insight.StrategicInsightMeta{
			WhyRecommended:    "Multiple independent routes qualified; combined they compound",
			TriggeringSignals: []string{s.Approach},
			AlternativeBranch: "Any single component route can be run alone at lower cost",
			UnlockCondition:   "Requires capacity to manage parallel tracks",
			RiskIfIgnored:     "Sequential pressure gives the opponent recovery time between fronts",
			BestStage:         insight.StageIssue,
			WinRationale:      "Opponents concede fastest when no single response relieves the pressure",
		}
	case "S":
		return &insight.StrategicInsightMeta{
			WhyRecommended:    "No tactical signals qualified; compliant progress preserves every option",
			TriggeringSignals: []string{"no qualifying signals this run"},
			AlternativeBranch: "Any new detector finding replaces this with a targeted route",
			UnlockCondition:   "Re-analyse as the evidence picture develops",
			RiskIfIgnored:     "Drift, missed deadlines, and limitation risk",
			BestStage:         insight.StagePreAction,
			WinRationale:      "A compliant file is the platform every later tactic stands on",
		}
	default:
		return generic(s.Approach, append([]string{}, s.Pros...), insight.StageIssue)
	}
}

// ForJudicial builds the annotation for a judicial expectation.
func ForJudicial(j *insight.JudicialExpectation) *insight.StrategicInsightMeta {
	if j.Met {
		return &insight.StrategicInsightMeta{
			WhyRecommended:    fmt.Sprintf("The %s-stage expectation is currently satisfied", j.Stage),
			TriggeringSignals: j.Evidence,
			AlternativeBranch: "If the position degrades, this becomes a compliance risk",
			UnlockCondition:   "Maintained automatically while the file stays current",
			RiskIfIgnored:     "Satisfied expectations still need evidencing at hearings",
			BestStage:         j.Stage,
			WinRationale:      "Meeting expectations the opponent misses is itself a contrast the court notices",
		}
	}
	return &insight.StrategicInsightMeta{
		WhyRecommended:    fmt.Sprintf("The court will expect this at the %s stage and the file does not show it", j.Stage),
		TriggeringSignals: j.Evidence,
		AlternativeBranch: "Once remedied, the expectation flips to a satisfied contrast point",
		UnlockCondition:   "Remedy the underlying gap before the stage is reached",
		RiskIfIgnored:     "Judicial criticism directed at this side rather than the opponent",
		BestStage:         j.Stage,
		WinRationale:      "Anticipating the court's checklist avoids conceding easy ground",
	}
}

// generic is the fallback annotation for unrecognized types.
func generic(description string, signals []string, stage insight.Stage) *insight.StrategicInsightMeta {
	why := strings.TrimSpace(description)
	if why == "" {
		why = "Flagged by the analysis for this case's specific facts"
	}
	if len(signals) == 0 {
		signals = []string{"case papers"}
	}
	return &insight.StrategicInsightMeta{
		WhyRecommended:    why,
		TriggeringSignals: signals,
		AlternativeBranch: "Different supporting evidence would surface a different finding here",
		UnlockCondition:   "Revisit on the next analysis run",
		RiskIfIgnored:     "The finding loses force as the case moves on",
		BestStage:         stage,
		WinRationale:      "Acting on detected findings while they are fresh preserves their value",
	}
}
