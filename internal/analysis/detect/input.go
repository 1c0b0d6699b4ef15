// Package detect contains the five signal detectors.  Each detector is a
// pure function of an Input snapshot: the engine resolves every external
// collaborator (with its fail-soft boundary) before any detector runs, so
// detectors themselves never perform I/O and may run concurrently.
package detect

import (
	"time"

	"github.com/casefort/LitIntel/internal/domain/evidence"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// Input is the immutable snapshot every detector consumes.
type Input struct {
	File           *litigation.CaseFile
	Role           insight.RoleResult
	Merits         *insight.MeritsScore
	Activity       *litigation.OpponentActivity
	Contradictions []litigation.Contradiction
	Missing        []evidence.MissingItem
	Now            time.Time
}

// PracticeArea is a nil-safe accessor for the case's practice area.
func (in *Input) PracticeArea() litigation.PracticeArea {
	if in.File == nil {
		return litigation.PracticeOtherLitigation
	}
	return in.File.Case.PracticeArea
}

// ClaimantClinNeg reports whether the admin-gap downgrade and merits-first
// ordering rules apply: the client is the claimant in a clinical-negligence
// matter.
func (in *Input) ClaimantClinNeg() bool {
	return in.Role.Role == litigation.RoleClaimant &&
		in.PracticeArea() == litigation.PracticeClinicalNegligence
}

// SilenceDays is a nil-safe accessor for the opponent-silence duration.
// Zero when the activity snapshot was unavailable.
func (in *Input) SilenceDays() int {
	if in.Activity == nil {
		return 0
	}
	return in.Activity.SilenceDays
}

// CaseAgeDays is how long the matter has been open, from issue where
// issued, otherwise from intake.
func (in *Input) CaseAgeDays() int {
	if in.File == nil {
		return 0
	}
	if in.File.Case.IssuedAt != nil {
		return in.File.Case.DaysSinceIssue(in.Now)
	}
	if in.File.Case.CreatedAt.IsZero() {
		return 0
	}
	return common.DaysSince(in.File.Case.CreatedAt, in.Now)
}
