package insight

import (
	"context"
	"time"

	"github.com/casefort/LitIntel/pkg/types/common"
)

// KeyIssue is a compact issue reference used for snapshot comparison.
// Label is the identity used when diffing snapshots.
type KeyIssue struct {
	Type     string          `json:"type"`
	Label    string          `json:"label"`
	Severity common.Severity `json:"severity"`
}

// MissingEvidenceRef identifies a missing checklist requirement within a
// snapshot.  Category plus Label is the identity used when diffing, since
// requirements in different categories may share a label.
type MissingEvidenceRef struct {
	Category string `json:"category"`
	Label    string `json:"label"`
}

// AnalysisSnapshot is the persisted summary of one analysis run, kept so
// later runs can report what changed.
type AnalysisSnapshot struct {
	ID              common.ID            `json:"id"`
	CaseID          common.ID            `json:"case_id"`
	MomentumState   MomentumState        `json:"momentum_state"`
	MomentumScore   int                  `json:"momentum_score"`
	KeyIssues       []KeyIssue           `json:"key_issues"`
	MissingEvidence []MissingEvidenceRef `json:"missing_evidence"`
	TakenAt         time.Time            `json:"taken_at"`
}

// AnalysisDelta describes what changed between two consecutive snapshots of
// the same case.
type AnalysisDelta struct {
	CaseID common.ID `json:"case_id"`

	// FirstAnalysis is set when there was no previous snapshot to compare
	// against; all other change fields are empty in that case.
	FirstAnalysis bool `json:"first_analysis"`

	PreviousState MomentumState `json:"previous_state,omitempty"`
	CurrentState  MomentumState `json:"current_state,omitempty"`
	ScoreChange   int           `json:"score_change"`

	NewIssues      []KeyIssue `json:"new_issues,omitempty"`
	ResolvedIssues []KeyIssue `json:"resolved_issues,omitempty"`

	NewMissingEvidence      []MissingEvidenceRef `json:"new_missing_evidence,omitempty"`
	ResolvedMissingEvidence []MissingEvidenceRef `json:"resolved_missing_evidence,omitempty"`

	Notes []string `json:"notes"`
}

// SnapshotRepository persists and retrieves analysis snapshots.
type SnapshotRepository interface {
	// Save stores a snapshot.
	Save(ctx context.Context, snap *AnalysisSnapshot) error
	// Latest returns the most recent snapshot for the case, or a
	// not-found error when the case has never been analyzed.
	Latest(ctx context.Context, caseID common.ID) (*AnalysisSnapshot, error)
}
