package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/logging"
	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/casefort/LitIntel/pkg/errors"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// TextStore fetches extracted document text from object storage.  The minio
// adapter implements it; tests substitute a map.
type TextStore interface {
	FetchText(ctx context.Context, key string) (string, error)
}

// CaseRepository implements litigation.Repository over PostgreSQL.  Document
// text hydration from the object store is fail-soft: a missing or unreadable
// object leaves ExtractedText empty rather than failing the load.
type CaseRepository struct {
	pool    *pgxpool.Pool
	texts   TextStore
	logger  logging.Logger
	metrics *prometheus.EngineMetrics
}

// NewCaseRepository builds the repository.  texts and metrics may be nil.
func NewCaseRepository(pool *pgxpool.Pool, texts TextStore, logger logging.Logger, metrics *prometheus.EngineMetrics) *CaseRepository {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &CaseRepository{pool: pool, texts: texts, logger: logger.Named("case_repo"), metrics: metrics}
}

// GetCase implements litigation.Repository.
func (r *CaseRepository) GetCase(ctx context.Context, id common.ID) (*litigation.Case, error) {
	const query = `
		SELECT id, practice_area, role, issued_at, created_at
		FROM cases
		WHERE id = $1`

	var (
		c    litigation.Case
		area string
		role *string
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &area, &role, &c.IssuedAt, &c.CreatedAt)
	if err != nil {
		return nil, mapQueryError(err, apperrors.ErrCodeCaseNotFound, "get case")
	}
	c.PracticeArea = litigation.NormalizePracticeArea(area)
	if role != nil {
		cr := litigation.CaseRole(*role)
		if cr.Valid() {
			c.Role = &cr
		}
	}
	return &c, nil
}

// GetCaseFile implements litigation.Repository.
func (r *CaseRepository) GetCaseFile(ctx context.Context, id common.ID) (*litigation.CaseFile, error) {
	c, err := r.GetCase(ctx, id)
	if err != nil {
		return nil, err
	}

	file := &litigation.CaseFile{Case: *c}
	if file.Documents, err = r.loadDocuments(ctx, id); err != nil {
		return nil, err
	}
	if file.Timeline, err = r.loadTimeline(ctx, id); err != nil {
		return nil, err
	}
	if file.Letters, err = r.loadLetters(ctx, id); err != nil {
		return nil, err
	}
	if file.Deadlines, err = r.loadDeadlines(ctx, id); err != nil {
		return nil, err
	}
	r.hydrateText(ctx, file)
	return file, nil
}

func (r *CaseRepository) loadDocuments(ctx context.Context, caseID common.ID) ([]litigation.Document, error) {
	const query = `
		SELECT id, name, extracted_text, text_object_key, extraction, created_at
		FROM documents
		WHERE case_id = $1
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, mapQueryError(err, apperrors.ErrCodeCaseNotFound, "load documents")
	}
	defer rows.Close()

	var docs []litigation.Document
	for rows.Next() {
		var (
			d          litigation.Document
			text       *string
			objectKey  *string
			extraction []byte
		)
		if err := rows.Scan(&d.ID, &d.Name, &text, &objectKey, &extraction, &d.CreatedAt); err != nil {
			return nil, mapQueryError(err, apperrors.ErrCodeCaseNotFound, "scan document")
		}
		if text != nil {
			d.ExtractedText = *text
		}
		if objectKey != nil {
			d.TextObjectKey = *objectKey
		}
		if err := fromJSON(extraction, &d.Extraction); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, mapQueryError(rows.Err(), apperrors.ErrCodeCaseNotFound, "iterate documents")
}

func (r *CaseRepository) loadTimeline(ctx context.Context, caseID common.ID) ([]litigation.TimelineEvent, error) {
	const query = `
		SELECT event_date, description
		FROM timeline_events
		WHERE case_id = $1
		ORDER BY event_date`

	rows, err := r.pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, mapQueryError(err, apperrors.ErrCodeCaseNotFound, "load timeline")
	}
	defer rows.Close()

	var events []litigation.TimelineEvent
	for rows.Next() {
		var ev litigation.TimelineEvent
		if err := rows.Scan(&ev.Date, &ev.Description); err != nil {
			return nil, mapQueryError(err, apperrors.ErrCodeCaseNotFound, "scan timeline event")
		}
		events = append(events, ev)
	}
	return events, mapQueryError(rows.Err(), apperrors.ErrCodeCaseNotFound, "iterate timeline")
}

func (r *CaseRepository) loadLetters(ctx context.Context, caseID common.ID) ([]litigation.Letter, error) {
	const query = `
		SELECT id, template_id, created_at
		FROM letters
		WHERE case_id = $1
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, mapQueryError(err, apperrors.ErrCodeCaseNotFound, "load letters")
	}
	defer rows.Close()

	var letters []litigation.Letter
	for rows.Next() {
		var (
			l        litigation.Letter
			template *string
		)
		if err := rows.Scan(&l.ID, &template, &l.CreatedAt); err != nil {
			return nil, mapQueryError(err, apperrors.ErrCodeCaseNotFound, "scan letter")
		}
		if template != nil {
			l.TemplateID = *template
		}
		letters = append(letters, l)
	}
	return letters, mapQueryError(rows.Err(), apperrors.ErrCodeCaseNotFound, "iterate letters")
}

func (r *CaseRepository) loadDeadlines(ctx context.Context, caseID common.ID) ([]litigation.Deadline, error) {
	const query = `
		SELECT id, title, due_date, status
		FROM deadlines
		WHERE case_id = $1
		ORDER BY due_date`

	rows, err := r.pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, mapQueryError(err, apperrors.ErrCodeCaseNotFound, "load deadlines")
	}
	defer rows.Close()

	var deadlines []litigation.Deadline
	for rows.Next() {
		var (
			d      litigation.Deadline
			status string
		)
		if err := rows.Scan(&d.ID, &d.Title, &d.DueDate, &status); err != nil {
			return nil, mapQueryError(err, apperrors.ErrCodeCaseNotFound, "scan deadline")
		}
		d.Status = litigation.DeadlineStatus(status)
		deadlines = append(deadlines, d)
	}
	return deadlines, mapQueryError(rows.Err(), apperrors.ErrCodeCaseNotFound, "iterate deadlines")
}

// hydrateText fills ExtractedText from the object store for documents that
// only carry an object key.  Hydration failures are logged and skipped; the
// analysis runs on whatever text is available.
func (r *CaseRepository) hydrateText(ctx context.Context, file *litigation.CaseFile) {
	if r.texts == nil {
		return
	}
	for i := range file.Documents {
		d := &file.Documents[i]
		if d.ExtractedText != "" || d.TextObjectKey == "" {
			continue
		}
		text, err := r.texts.FetchText(ctx, d.TextObjectKey)
		r.metrics.RecordTextHydration(err)
		if err != nil {
			r.logger.Warn("document text hydration failed",
				logging.String("case_id", string(file.Case.ID)),
				logging.String("document_id", string(d.ID)),
				logging.String("object_key", d.TextObjectKey),
				logging.Err(err))
			continue
		}
		d.ExtractedText = text
	}
}
