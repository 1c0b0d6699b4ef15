package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefort/LitIntel/internal/domain/evidence"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/internal/testutil"
	apperrors "github.com/casefort/LitIntel/pkg/errors"
	"github.com/casefort/LitIntel/pkg/types/common"
)

type failingChecklist struct{ err error }

func (f failingChecklist) Checklist(context.Context, litigation.PracticeArea) ([]evidence.Requirement, error) {
	return nil, f.err
}

type capturePublisher struct {
	err       error
	published []*insight.Analysis
}

func (p *capturePublisher) AnalysisCompleted(_ context.Context, a *insight.Analysis) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, a)
	return nil
}

func housingFile() *litigation.CaseFile {
	return testutil.NewCaseFile(litigation.PracticeHousingDisrepair,
		"Surveyor report records damp and mould in the bedroom. "+
			"The tenant reported disrepair to the landlord twice with no response. "+
			"Photograph of the affected wall enclosed.")
}

func newTestEngine(t *testing.T, deps Dependencies) *Engine {
	t.Helper()
	e, err := New(deps)
	require.NoError(t, err)
	return e
}

func TestNewRequiresRepository(t *testing.T) {
	_, err := New(Dependencies{})
	assert.Error(t, err)
}

func TestAnalyzeEndToEnd(t *testing.T) {
	file := housingFile()
	repo := &testutil.InMemoryRepository{
		Files: map[common.ID]*litigation.CaseFile{file.Case.ID: file},
	}
	snapshots := &testutil.InMemorySnapshots{}
	logger := testutil.NewMockLogger()

	e := newTestEngine(t, Dependencies{
		Repository: repo,
		Activity:   &testutil.StaticActivity{Activity: &litigation.OpponentActivity{SilenceDays: 45}},
		Contradictions: &testutil.StaticContradictions{Items: []litigation.Contradiction{
			{Description: "repair date conflicts with the surveyor visit", Confidence: common.ConfidenceHigh},
		}},
		Snapshots: snapshots,
		Logger:    logger,
	})

	result, err := e.Analyze(context.Background(), file.Case.ID)
	require.NoError(t, err)
	a := result.Analysis

	assert.Equal(t, file.Case.ID, a.CaseID)
	assert.Equal(t, litigation.PracticeHousingDisrepair, a.PracticeArea)
	assert.Equal(t, litigation.RoleClaimant, a.Role.Role)
	assert.Empty(t, a.DegradedSignals)

	// 45 days of silence is past the critical threshold.
	require.NotEmpty(t, a.LeveragePoints)
	var silence *insight.LeveragePoint
	for i := range a.LeveragePoints {
		if a.LeveragePoints[i].Type == insight.LeverageLateResponse {
			silence = &a.LeveragePoints[i]
		}
	}
	require.NotNil(t, silence)
	assert.Equal(t, common.SeverityCritical, silence.Severity)

	assert.NotEmpty(t, a.WeakSpots, "the high-confidence contradiction must surface")
	assert.NotEmpty(t, a.Strategies)
	assert.NotEmpty(t, a.MissingEvidence, "tenancy agreement is absent from the text")
	assert.True(t, a.Momentum.State.Valid())
	assert.NotEmpty(t, a.Momentum.Explanation)

	// Every finding carries its generated meta.
	for _, p := range a.LeveragePoints {
		assert.NotNil(t, p.Meta)
	}
	for _, w := range a.WeakSpots {
		assert.NotNil(t, w.Meta)
	}
	for _, s := range a.Strategies {
		assert.NotNil(t, s.Meta)
	}

	// First run: snapshot persisted, delta short-circuits.
	require.NotNil(t, result.Snapshot)
	require.NotNil(t, result.Delta)
	assert.True(t, result.Delta.FirstAnalysis)
	assert.Len(t, snapshots.ByCase[file.Case.ID], 1)
	assert.NotEmpty(t, result.Snapshot.KeyIssues)
}

func TestAnalyzeSecondRunDelta(t *testing.T) {
	file := housingFile()
	repo := &testutil.InMemoryRepository{
		Files: map[common.ID]*litigation.CaseFile{file.Case.ID: file},
	}
	snapshots := &testutil.InMemorySnapshots{}
	e := newTestEngine(t, Dependencies{Repository: repo, Snapshots: snapshots})

	_, err := e.Analyze(context.Background(), file.Case.ID)
	require.NoError(t, err)
	second, err := e.Analyze(context.Background(), file.Case.ID)
	require.NoError(t, err)

	require.NotNil(t, second.Delta)
	assert.False(t, second.Delta.FirstAnalysis)
	assert.Len(t, snapshots.ByCase[file.Case.ID], 2)

	// Identical inputs: nothing changed between runs.
	assert.Empty(t, second.Delta.NewIssues)
	assert.Empty(t, second.Delta.ResolvedIssues)
}

func TestAnalyzeFailSoftCollaborators(t *testing.T) {
	file := housingFile()
	repo := &testutil.InMemoryRepository{
		Files: map[common.ID]*litigation.CaseFile{file.Case.ID: file},
	}
	logger := testutil.NewMockLogger()
	boom := errors.New("connection refused")

	e := newTestEngine(t, Dependencies{
		Repository:     repo,
		Activity:       &testutil.StaticActivity{Err: boom},
		Contradictions: &testutil.StaticContradictions{Err: boom},
		Checklist:      failingChecklist{err: boom},
		Snapshots:      &testutil.InMemorySnapshots{LatestErr: boom, SaveErr: boom},
		Logger:         logger,
	})

	result, err := e.Analyze(context.Background(), file.Case.ID)
	require.NoError(t, err, "collaborator failures must never fail the analysis")
	a := result.Analysis

	assert.ElementsMatch(t, []string{
		"opponent_activity", "contradictions", "evidence_checklist",
		"snapshot_history", "snapshot_write",
	}, a.DegradedSignals)
	assert.Nil(t, result.Delta, "unknown history yields no delta")
	assert.Empty(t, a.MissingEvidence)
	assert.True(t, logger.HasMessage("warn", "collaborator degraded to default signal"))

	// Degraded signals still leave a complete analysis behind.
	assert.NotEmpty(t, a.Strategies)
	assert.True(t, a.Momentum.State.Valid())
}

func TestAnalyzeCaseNotFound(t *testing.T) {
	e := newTestEngine(t, Dependencies{Repository: &testutil.InMemoryRepository{}})

	_, err := e.Analyze(context.Background(), common.NewID())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAnalyzePublisher(t *testing.T) {
	file := housingFile()
	repo := &testutil.InMemoryRepository{
		Files: map[common.ID]*litigation.CaseFile{file.Case.ID: file},
	}

	pub := &capturePublisher{}
	e := newTestEngine(t, Dependencies{Repository: repo, Publisher: pub})
	result, err := e.Analyze(context.Background(), file.Case.ID)
	require.NoError(t, err)
	require.Len(t, pub.published, 1)
	assert.Equal(t, result.Analysis, pub.published[0])
	assert.Empty(t, result.Analysis.DegradedSignals)

	failing := &capturePublisher{err: errors.New("broker unavailable")}
	e = newTestEngine(t, Dependencies{Repository: repo, Publisher: failing})
	result, err = e.Analyze(context.Background(), file.Case.ID)
	require.NoError(t, err)
	assert.Contains(t, result.Analysis.DegradedSignals, "event_publish")
}

func TestMomentumHelper(t *testing.T) {
	file := housingFile()
	repo := &testutil.InMemoryRepository{
		Files: map[common.ID]*litigation.CaseFile{file.Case.ID: file},
	}
	e := newTestEngine(t, Dependencies{Repository: repo})

	m, err := e.Momentum(context.Background(), file.Case.ID)
	require.NoError(t, err)
	assert.Equal(t, file.Case.ID, m.CaseID)
	assert.True(t, m.State.Valid())
}

func TestExplicitDefendantRoleFlowsThrough(t *testing.T) {
	file := testutil.WithRole(housingFile(), litigation.RoleDefendant)
	repo := &testutil.InMemoryRepository{
		Files: map[common.ID]*litigation.CaseFile{file.Case.ID: file},
	}
	e := newTestEngine(t, Dependencies{Repository: repo})

	result, err := e.Analyze(context.Background(), file.Case.ID)
	require.NoError(t, err)
	assert.Equal(t, litigation.RoleDefendant, result.Analysis.Role.Role)
	assert.Equal(t, insight.RoleBasisExplicit, result.Analysis.Role.Basis)
}
