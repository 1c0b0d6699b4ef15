// Package testutil provides in-memory collaborator doubles and case-file
// builders shared by the analysis package tests.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/domain/litigation"
	apperrors "github.com/casefort/LitIntel/pkg/errors"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// InMemoryRepository serves case files from a map.  Setting Err makes every
// call fail, which the fail-soft tests rely on.
type InMemoryRepository struct {
	Files map[common.ID]*litigation.CaseFile
	Err   error
}

func (r *InMemoryRepository) GetCase(_ context.Context, id common.ID) (*litigation.Case, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if f, ok := r.Files[id]; ok {
		return &f.Case, nil
	}
	return nil, apperrors.New(apperrors.ErrCodeCaseNotFound, "case not found").WithDetail(string(id))
}

func (r *InMemoryRepository) GetCaseFile(_ context.Context, id common.ID) (*litigation.CaseFile, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if f, ok := r.Files[id]; ok {
		return f, nil
	}
	return nil, apperrors.New(apperrors.ErrCodeCaseNotFound, "case not found").WithDetail(string(id))
}

// StaticActivity returns a fixed opponent-activity profile.
type StaticActivity struct {
	Activity *litigation.OpponentActivity
	Err      error
}

func (s *StaticActivity) OpponentActivity(context.Context, common.ID) (*litigation.OpponentActivity, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Activity, nil
}

// StaticContradictions returns a fixed contradiction list.
type StaticContradictions struct {
	Items []litigation.Contradiction
	Err   error
}

func (s *StaticContradictions) FindContradictions(context.Context, common.ID) ([]litigation.Contradiction, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Items, nil
}

// InMemorySnapshots keeps per-case snapshot history in memory, newest last.
// SaveErr and LatestErr force failures for the fail-soft tests.
type InMemorySnapshots struct {
	mu        sync.Mutex
	ByCase    map[common.ID][]*insight.AnalysisSnapshot
	SaveErr   error
	LatestErr error
}

func (r *InMemorySnapshots) Save(_ context.Context, snap *insight.AnalysisSnapshot) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ByCase == nil {
		r.ByCase = make(map[common.ID][]*insight.AnalysisSnapshot)
	}
	r.ByCase[snap.CaseID] = append(r.ByCase[snap.CaseID], snap)
	return nil
}

func (r *InMemorySnapshots) Latest(_ context.Context, caseID common.ID) (*insight.AnalysisSnapshot, error) {
	if r.LatestErr != nil {
		return nil, r.LatestErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	history := r.ByCase[caseID]
	if len(history) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeSnapshotNotFound, "no snapshot for case").WithDetail(string(caseID))
	}
	return history[len(history)-1], nil
}

// NewCaseFile builds a minimal case file for the given practice area with
// one document carrying the supplied extracted text.
func NewCaseFile(area litigation.PracticeArea, text string) *litigation.CaseFile {
	now := time.Now().UTC()
	return &litigation.CaseFile{
		Case: litigation.Case{
			ID:           common.NewID(),
			PracticeArea: area,
			CreatedAt:    now,
		},
		Documents: []litigation.Document{{
			ID:            common.NewID(),
			Name:          "bundle.pdf",
			CreatedAt:     now,
			ExtractedText: text,
		}},
	}
}

// Issued stamps an issue date n days in the past and returns the file for
// chaining.
func Issued(f *litigation.CaseFile, daysAgo int) *litigation.CaseFile {
	t := time.Now().UTC().AddDate(0, 0, -daysAgo)
	f.Case.IssuedAt = &t
	return f
}

// WithRole sets an explicit role on the case record.
func WithRole(f *litigation.CaseFile, role litigation.CaseRole) *litigation.CaseFile {
	f.Case.Role = &role
	return f
}
