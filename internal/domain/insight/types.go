// Package insight defines the typed records the analysis engine produces:
// leverage points, weak spots, compliance issues, time-pressure windows,
// behaviour predictions, strategies, scenario views, and the momentum
// verdict.  Every record is a pure function of the case data it was derived
// from and is never mutated after the engine hands it to the caller.
package insight

import (
	"time"

	"github.com/casefort/LitIntel/internal/domain/evidence"
	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// StrategicInsightMeta
// ─────────────────────────────────────────────────────────────────────────────

// StrategicInsightMeta is the explanatory annotation attached to each
// insight: why it was recommended for this case, what triggered it, what the
// alternative branch would have been, and what ignoring it costs.
type StrategicInsightMeta struct {
	WhyRecommended    string   `json:"why_recommended"`
	TriggeringSignals []string `json:"triggering_signals"`
	AlternativeBranch string   `json:"alternative_branch"`
	UnlockCondition   string   `json:"unlock_condition"`
	RiskIfIgnored     string   `json:"risk_if_ignored"`
	BestStage         Stage    `json:"best_stage"`
	WinRationale      string   `json:"win_rationale"`
}

// Stage identifies the litigation stage an insight is best deployed at.
type Stage string

const (
	StagePreAction  Stage = "pre_action"
	StageIssue      Stage = "issue"
	StageDisclosure Stage = "disclosure"
	StageEvidence   Stage = "evidence"
	StageTrial      Stage = "trial"
)

// ─────────────────────────────────────────────────────────────────────────────
// Leverage points
// ─────────────────────────────────────────────────────────────────────────────

// LeverageType categorizes a procedural or substantive leverage opportunity.
type LeverageType string

const (
	LeverageLateResponse      LeverageType = "LATE_RESPONSE"
	LeverageMissingPreAction  LeverageType = "MISSING_PRE_ACTION"
	LeverageMissingEvidence   LeverageType = "MISSING_EVIDENCE"
	LeverageOverdueDeadline   LeverageType = "OVERDUE_DEADLINE"
	LeverageMissingDisclosure LeverageType = "MISSING_DISCLOSURE"
	LeverageSubstantiveMerit  LeverageType = "SUBSTANTIVE_MERIT"
)

// LeveragePoint is an opportunity to pressure the opposing party.
type LeveragePoint struct {
	Type              LeverageType          `json:"type"`
	Severity          common.Severity       `json:"severity"`
	Evidence          []string              `json:"evidence"`
	Rationale         string                `json:"rationale"`
	RecommendedAction string                `json:"recommended_action"`
	Meta              *StrategicInsightMeta `json:"meta,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Weak spots
// ─────────────────────────────────────────────────────────────────────────────

// WeakSpotType categorizes an opponent's evidential vulnerability.
type WeakSpotType string

const (
	WeakSpotContradiction       WeakSpotType = "CONTRADICTION"
	WeakSpotMissingEvidence     WeakSpotType = "MISSING_EVIDENCE"
	WeakSpotTimelineGap         WeakSpotType = "TIMELINE_GAP"
	WeakSpotDateInversion       WeakSpotType = "DATE_INVERSION"
	WeakSpotMissingRepairRecord WeakSpotType = "MISSING_REPAIR_RECORDS"
	WeakSpotUnansweredComplaint WeakSpotType = "UNANSWERED_COMPLAINTS"
)

// WeakSpot is a located vulnerability in the opposing party's position.
type WeakSpot struct {
	Type      WeakSpotType          `json:"type"`
	Severity  common.Severity       `json:"severity"`
	Evidence  []string              `json:"evidence"`
	Rationale string                `json:"rationale"`
	Meta      *StrategicInsightMeta `json:"meta,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Procedural compliance
// ─────────────────────────────────────────────────────────────────────────────

// ApplicationType is the court application a compliance failure supports.
type ApplicationType string

const (
	ApplicationUnlessOrder        ApplicationType = "unless_order"
	ApplicationStrikeOut          ApplicationType = "strike_out"
	ApplicationFurtherInformation ApplicationType = "further_information"
	ApplicationCosts              ApplicationType = "costs"
	ApplicationDirection          ApplicationType = "direction"
)

// ComplianceRule identifies which deterministic procedural check fired.
type ComplianceRule string

const (
	RuleLateDisclosure         ComplianceRule = "LATE_DISCLOSURE"
	RuleMissingParticulars     ComplianceRule = "MISSING_PARTICULARS"
	RuleMissingPreAction       ComplianceRule = "MISSING_PRE_ACTION"
	RuleMissingTenancyAgreement ComplianceRule = "MISSING_TENANCY_AGREEMENT"
	RuleMissingMedicalEvidence ComplianceRule = "MISSING_MEDICAL_EVIDENCE"
	RuleMissingChronology      ComplianceRule = "MISSING_CHRONOLOGY"
	RuleMissingHazardAssessment ComplianceRule = "MISSING_HAZARD_ASSESSMENT"
)

// ComplianceIssue is one procedural-rule failure and the application it
// supports.
type ComplianceIssue struct {
	Rule                 ComplianceRule        `json:"rule"`
	Severity             common.Severity       `json:"severity"`
	Description          string                `json:"description"`
	Evidence             []string              `json:"evidence"`
	SuggestedApplication ApplicationType       `json:"suggested_application"`
	Meta                 *StrategicInsightMeta `json:"meta,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Time pressure
// ─────────────────────────────────────────────────────────────────────────────

// TimePressureIssue categorizes a tactical timing window.
type TimePressureIssue string

const (
	PressureOpponentSilence  TimePressureIssue = "OPPONENT_SILENCE"
	PressureIdealWindow      TimePressureIssue = "IDEAL_WINDOW"
	PressureUpcomingDeadline TimePressureIssue = "UPCOMING_DEADLINE"
	PressureElapsedDelay     TimePressureIssue = "ELAPSED_DELAY"
)

// TimePressurePoint is a timing window where delay or an approaching date
// creates tactical leverage.
type TimePressurePoint struct {
	Issue         TimePressureIssue     `json:"issue"`
	Severity      common.Severity       `json:"severity"`
	DaysElapsed   int                   `json:"days_elapsed,omitempty"`
	DaysRemaining int                   `json:"days_remaining,omitempty"`
	Evidence      []string              `json:"evidence"`
	Rationale     string                `json:"rationale"`
	Meta          *StrategicInsightMeta `json:"meta,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Behaviour predictions
// ─────────────────────────────────────────────────────────────────────────────

// BehaviorPrediction is an "if you take action X, expect response pattern Y"
// extrapolation from the opponent's historical response statistics.
type BehaviorPrediction struct {
	Action           string                `json:"action"`
	ExpectedResponse string                `json:"expected_response"`
	ExpectedDays     int                   `json:"expected_days,omitempty"`
	Confidence       common.Confidence     `json:"confidence"`
	Rationale        string                `json:"rationale"`
	Meta             *StrategicInsightMeta `json:"meta,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Vulnerabilities (aggregated taxonomy)
// ─────────────────────────────────────────────────────────────────────────────

// VulnerabilityType is the normalized taxonomy the aggregator remaps
// leverage, compliance, and weak-spot findings onto.
type VulnerabilityType string

const (
	VulnIncompleteDisclosure VulnerabilityType = "incomplete_disclosure"
	VulnDefectiveNotice      VulnerabilityType = "defective_notice"
	VulnMissingRecords       VulnerabilityType = "missing_records"
	VulnExpertNonCompliance  VulnerabilityType = "expert_non_compliance"
	VulnLateResponse         VulnerabilityType = "late_response"
	VulnMissingParticulars   VulnerabilityType = "missing_particulars"
	VulnIncorrectService     VulnerabilityType = "incorrect_service"
	VulnMissingPreAction     VulnerabilityType = "missing_pre_action"
)

// VulnerabilitySource records which detector produced the underlying finding.
type VulnerabilitySource string

const (
	SourceLeverage   VulnerabilitySource = "leverage"
	SourceCompliance VulnerabilitySource = "compliance"
	SourceWeakSpot   VulnerabilitySource = "weak_spot"
)

// Vulnerability is a normalized opponent vulnerability with the estimated
// cost to the opponent of being challenged on it.
type Vulnerability struct {
	Type          VulnerabilityType     `json:"type"`
	Severity      common.Severity       `json:"severity"`
	Description   string                `json:"description"`
	Evidence      []string              `json:"evidence"`
	EstimatedCost string                `json:"estimated_cost"`
	Source        VulnerabilitySource   `json:"source"`
	Meta          *StrategicInsightMeta `json:"meta,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Strategy paths
// ─────────────────────────────────────────────────────────────────────────────

// ProbabilityBand is a coarse success-likelihood estimate.
type ProbabilityBand string

const (
	ProbabilityHigh   ProbabilityBand = "high"
	ProbabilityMedium ProbabilityBand = "medium"
	ProbabilityLow    ProbabilityBand = "low"
)

// StrategyPath is one ranked litigation route.
type StrategyPath struct {
	// Route is the stable single-letter identifier ("A", "B", …, "H" for
	// the synthesized hybrid, "S" for the standard-pathway fallback).
	Route              string                `json:"route"`
	Title              string                `json:"title"`
	Approach           string                `json:"approach"`
	Pros               []string              `json:"pros"`
	Cons               []string              `json:"cons"`
	Timeframe          string                `json:"timeframe"`
	CostEstimate       string                `json:"cost_estimate"`
	SuccessProbability ProbabilityBand       `json:"success_probability"`
	TargetAudience     string                `json:"target_audience"`
	Hybrid             bool                  `json:"hybrid"`
	Meta               *StrategicInsightMeta `json:"meta,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Scenario and judicial views
// ─────────────────────────────────────────────────────────────────────────────

// ScenarioOutline is one "if-then" procedural scenario derived from the
// detector outputs.
type ScenarioOutline struct {
	Condition   string                `json:"condition"`
	Consequence string                `json:"consequence"`
	Basis       []string              `json:"basis"`
	Severity    common.Severity       `json:"severity"`
	Meta        *StrategicInsightMeta `json:"meta,omitempty"`
}

// JudicialExpectation is what a court will expect to see at a given stage
// and whether the case currently meets it.
type JudicialExpectation struct {
	Stage       Stage                 `json:"stage"`
	Expectation string                `json:"expectation"`
	Met         bool                  `json:"met"`
	Severity    common.Severity       `json:"severity"`
	Evidence    []string              `json:"evidence"`
	Meta        *StrategicInsightMeta `json:"meta,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Substantive merits
// ─────────────────────────────────────────────────────────────────────────────

// MeritsComponent is one of the five substantive-merit sub-scores.
type MeritsComponent struct {
	Detected bool     `json:"detected"`
	Score    int      `json:"score"`
	Details  []string `json:"details"`
}

// MeritsScore is the clinical-negligence substantive strength profile.
// Sub-scores are non-negative; TotalScore is their sum and is deliberately
// unbounded because it only feeds threshold comparisons.
type MeritsScore struct {
	GuidelineBreach     MeritsComponent `json:"guideline_breach"`
	DelayCausation      MeritsComponent `json:"delay_causation"`
	ExpertConfirmation  MeritsComponent `json:"expert_confirmation"`
	SeriousHarm         MeritsComponent `json:"serious_harm"`
	PsychologicalInjury MeritsComponent `json:"psychological_injury"`
	TotalScore          int             `json:"total_score"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Role classification result
// ─────────────────────────────────────────────────────────────────────────────

// RoleBasis distinguishes a scored classification from the claimant
// fallback applied on missing or failing data.
type RoleBasis string

const (
	// RoleBasisExplicit means the case record carried the role directly.
	RoleBasisExplicit RoleBasis = "explicit"
	// RoleBasisScored means the lexicon scorer resolved the role.
	RoleBasisScored RoleBasis = "scored"
	// RoleBasisDefaulted means classification could not run (missing or
	// failing data) and the claimant default was applied.
	RoleBasisDefaulted RoleBasis = "defaulted"
)

// RoleResult carries the resolved role together with how it was reached, so
// downstream consumers can distinguish "confidently claimant" from
// "classification failed, assumed claimant".
type RoleResult struct {
	Role           litigation.CaseRole `json:"role"`
	Basis          RoleBasis           `json:"basis"`
	ClaimantScore  int                 `json:"claimant_score"`
	DefendantScore int                 `json:"defendant_score"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Full analysis bundle
// ─────────────────────────────────────────────────────────────────────────────

// Analysis is the complete output of one engine invocation, already
// role-sanitized and meta-annotated.
type Analysis struct {
	CaseID       common.ID               `json:"case_id"`
	PracticeArea litigation.PracticeArea `json:"practice_area"`
	Role         RoleResult              `json:"role"`
	Merits       *MeritsScore            `json:"merits,omitempty"`

	LeveragePoints   []LeveragePoint       `json:"leverage_points"`
	WeakSpots        []WeakSpot            `json:"weak_spots"`
	ComplianceIssues []ComplianceIssue     `json:"compliance_issues"`
	TimePressure     []TimePressurePoint   `json:"time_pressure"`
	Behavior         []BehaviorPrediction  `json:"behavior"`
	Vulnerabilities  []Vulnerability       `json:"vulnerabilities"`
	Strategies       []StrategyPath        `json:"strategies"`
	Scenarios        []ScenarioOutline     `json:"scenarios"`
	Judicial         []JudicialExpectation `json:"judicial"`
	MissingEvidence  []evidence.MissingItem `json:"missing_evidence"`

	Momentum CaseMomentum `json:"momentum"`

	// DegradedSignals names the collaborators whose failures were absorbed
	// by fail-soft boundaries during this invocation.
	DegradedSignals []string `json:"degraded_signals,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}
