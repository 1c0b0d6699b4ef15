package litigation

import (
	"context"

	"github.com/casefort/LitIntel/pkg/types/common"
)

// Repository is the case-data store contract.  The analysis engine only
// reads; writes belong to upstream intake systems.
type Repository interface {
	// GetCase returns the case header or ErrCodeCaseNotFound.
	GetCase(ctx context.Context, id common.ID) (*Case, error)

	// GetCaseFile returns the full immutable snapshot for analysis:
	// documents (text hydrated where available), timeline, letters,
	// deadlines.
	GetCaseFile(ctx context.Context, id common.ID) (*CaseFile, error)
}

// OpponentActivityProvider builds the opposing party's correspondence
// profile for a case.  Failures degrade to a zero-activity profile at the
// engine's fail-soft boundary.
type OpponentActivityProvider interface {
	OpponentActivity(ctx context.Context, caseID common.ID) (*OpponentActivity, error)
}

// ContradictionFinder locates evidentiary inconsistencies across a document
// bundle.  Failures degrade to no contradictions.
type ContradictionFinder interface {
	FindContradictions(ctx context.Context, bundleID common.ID) ([]Contradiction, error)
}
