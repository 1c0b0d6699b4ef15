package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casefort/LitIntel/internal/domain/insight"
	apperrors "github.com/casefort/LitIntel/pkg/errors"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// SnapshotRepository implements insight.SnapshotRepository over PostgreSQL.
// Snapshots are append-only; Latest reads the most recent per case.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository builds the repository.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Save implements insight.SnapshotRepository.
func (r *SnapshotRepository) Save(ctx context.Context, snap *insight.AnalysisSnapshot) error {
	if snap == nil {
		return apperrors.InvalidParam("snapshot must not be nil")
	}
	if snap.ID == "" {
		snap.ID = common.NewID()
	}

	issues, err := toJSON(snap.KeyIssues)
	if err != nil {
		return err
	}
	missing, err := toJSON(snap.MissingEvidence)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO analysis_snapshots
			(id, case_id, momentum_state, momentum_score, key_issues, missing_evidence, taken_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.pool.Exec(ctx, query,
		snap.ID, snap.CaseID, string(snap.MomentumState), snap.MomentumScore,
		issues, missing, snap.TakenAt)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "save snapshot failed")
	}
	return nil
}

// Latest implements insight.SnapshotRepository.  Returns
// ErrCodeSnapshotNotFound when the case has no history.
func (r *SnapshotRepository) Latest(ctx context.Context, caseID common.ID) (*insight.AnalysisSnapshot, error) {
	const query = `
		SELECT id, case_id, momentum_state, momentum_score, key_issues, missing_evidence, taken_at
		FROM analysis_snapshots
		WHERE case_id = $1
		ORDER BY taken_at DESC, id DESC
		LIMIT 1`

	var (
		snap    insight.AnalysisSnapshot
		state   string
		issues  []byte
		missing []byte
	)
	err := r.pool.QueryRow(ctx, query, caseID).Scan(
		&snap.ID, &snap.CaseID, &state, &snap.MomentumScore, &issues, &missing, &snap.TakenAt)
	if err != nil {
		return nil, mapQueryError(err, apperrors.ErrCodeSnapshotNotFound, "load latest snapshot")
	}
	snap.MomentumState = insight.MomentumState(state)
	if err := fromJSON(issues, &snap.KeyIssues); err != nil {
		return nil, err
	}
	if err := fromJSON(missing, &snap.MissingEvidence); err != nil {
		return nil, err
	}
	return &snap, nil
}
