package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefort/LitIntel/internal/config"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/infrastructure/database/postgres"
	apperrors "github.com/casefort/LitIntel/pkg/errors"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// integrationPool connects to the database named by LITINTEL_* environment
// variables, or skips the test when integration runs are not enabled.
func integrationPool(t *testing.T) *postgres.Pool {
	t.Helper()
	if os.Getenv("LITINTEL_INTEGRATION_TEST") == "" {
		t.Skip("set LITINTEL_INTEGRATION_TEST to run against a live database")
	}

	cfg, err := config.LoadFromEnv()
	require.NoError(t, err)
	if cfg.Database.MigrationPath == "" {
		// go test runs from this package directory, not the repo root.
		cfg.Database.MigrationPath = "../migrations"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := postgres.Connect(ctx, cfg.Database, nil)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.NewMigrator(cfg.Database).Up())
	return pool
}

func TestCaseRepositoryIntegration(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	caseID := common.NewID()

	_, err := pool.Pool().Exec(ctx, `
		INSERT INTO cases (id, practice_area, role, created_at)
		VALUES ($1, 'housing_disrepair', 'claimant', now())`, caseID)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Pool().Exec(ctx, `DELETE FROM cases WHERE id = $1`, caseID)
	})

	_, err = pool.Pool().Exec(ctx, `
		INSERT INTO documents (id, case_id, name, extracted_text, created_at)
		VALUES ($1, $2, 'letter of claim', 'damp and mould reported', now())`,
		common.NewID(), caseID)
	require.NoError(t, err)

	repo := NewCaseRepository(pool.Pool(), nil, nil, nil)

	c, err := repo.GetCase(ctx, caseID)
	require.NoError(t, err)
	assert.Equal(t, "housing_disrepair", string(c.PracticeArea))
	require.NotNil(t, c.Role)
	assert.Equal(t, "claimant", string(*c.Role))

	file, err := repo.GetCaseFile(ctx, caseID)
	require.NoError(t, err)
	require.Len(t, file.Documents, 1)
	assert.Equal(t, "damp and mould reported", file.Documents[0].ExtractedText)

	_, err = repo.GetCase(ctx, common.NewID())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSnapshotRepositoryIntegration(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	caseID := common.NewID()

	_, err := pool.Pool().Exec(ctx, `
		INSERT INTO cases (id, practice_area, created_at)
		VALUES ($1, 'clinical_negligence', now())`, caseID)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Pool().Exec(ctx, `DELETE FROM cases WHERE id = $1`, caseID)
	})

	repo := NewSnapshotRepository(pool.Pool())

	_, err = repo.Latest(ctx, caseID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSnapshotNotFound))

	first := &insight.AnalysisSnapshot{
		CaseID:        caseID,
		MomentumState: insight.MomentumBalanced,
		MomentumScore: 12,
		KeyIssues:     []insight.KeyIssue{{Type: "leverage", Label: "silence window"}},
		TakenAt:       time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, repo.Save(ctx, first))

	second := &insight.AnalysisSnapshot{
		CaseID:        caseID,
		MomentumState: insight.MomentumStrong,
		MomentumScore: 45,
		TakenAt:       time.Now().UTC(),
	}
	require.NoError(t, repo.Save(ctx, second))

	latest, err := repo.Latest(ctx, caseID)
	require.NoError(t, err)
	assert.Equal(t, insight.MomentumStrong, latest.MomentumState)
	assert.Equal(t, 45, latest.MomentumScore)
}
