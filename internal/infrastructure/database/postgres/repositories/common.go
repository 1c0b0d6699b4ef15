// Package repositories provides the PostgreSQL-backed implementations of the
// litigation case store and the analysis snapshot store.
package repositories

import (
	"encoding/json"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/casefort/LitIntel/pkg/errors"
)

// mapQueryError converts a pgx error into the platform error type, mapping
// pgx.ErrNoRows onto the supplied not-found code.
func mapQueryError(err error, notFoundCode apperrors.ErrorCode, operation string) error {
	if err == nil {
		return nil
	}
	if apperrors.Is(err, pgx.ErrNoRows) {
		return apperrors.New(notFoundCode, operation+": no matching row")
	}
	return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, operation+" failed")
}

// toJSON marshals v for a jsonb column.  A nil value stores SQL NULL.
func toJSON(v interface{}) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to encode jsonb value")
	}
	return data, nil
}

// fromJSON unmarshals a jsonb column into dst, tolerating NULL.
func fromJSON(data []byte, dst interface{}) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to decode jsonb value")
	}
	return nil
}
