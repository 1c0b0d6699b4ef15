package repositories

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefort/LitIntel/internal/domain/insight"
	apperrors "github.com/casefort/LitIntel/pkg/errors"
	"github.com/casefort/LitIntel/pkg/types/common"
)

func TestMapQueryErrorNil(t *testing.T) {
	assert.NoError(t, mapQueryError(nil, apperrors.ErrCodeCaseNotFound, "get case"))
}

func TestMapQueryErrorNoRows(t *testing.T) {
	err := mapQueryError(pgx.ErrNoRows, apperrors.ErrCodeSnapshotNotFound, "load latest snapshot")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSnapshotNotFound))
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMapQueryErrorOther(t *testing.T) {
	err := mapQueryError(errors.New("connection reset"), apperrors.ErrCodeCaseNotFound, "load documents")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDatabaseError))
	assert.False(t, apperrors.IsNotFound(err))
}

func TestJSONRoundTrip(t *testing.T) {
	issues := []insight.KeyIssue{
		{Type: "leverage", Label: "LATE_RESPONSE", Severity: common.SeverityCritical},
		{Type: "compliance", Label: "LATE_DISCLOSURE", Severity: common.SeverityHigh},
	}

	data, err := toJSON(issues)
	require.NoError(t, err)

	var decoded []insight.KeyIssue
	require.NoError(t, fromJSON(data, &decoded))
	assert.Equal(t, issues, decoded)
}

func TestJSONNullHandling(t *testing.T) {
	data, err := toJSON(nil)
	require.NoError(t, err)
	assert.Nil(t, data)

	var decoded []string
	require.NoError(t, fromJSON(nil, &decoded))
	assert.Nil(t, decoded)
}
