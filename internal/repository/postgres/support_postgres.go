package postgres

import (
	"context"
	"database/sql"

	"parkgate/internal/model"
	"parkgate/internal/repository"
)

// SupportPostgres is a PostgreSQL implementation of repository.SupportRepository.
type SupportPostgres struct {
	db *sql.DB
}

// NewSupportPostgres creates a new SupportPostgres repository.
func NewSupportPostgres(db *sql.DB) *SupportPostgres {
	return &SupportPostgres{db: db}
}

var _ repository.SupportRepository = (*SupportPostgres)(nil)

func scanSupport(row scanner) (*model.SupportRequest, error) {
	var (
		s          model.SupportRequest
		residentID sql.NullInt64
	)
	if err := row.Scan(&s.ID, &residentID, &s.Content, &s.Status, &s.CreatedAt); err != nil {
		return nil, err
	}
	if residentID.Valid {
		id := residentID.Int64
		s.ResidentID = &id
	}
	return &s, nil
}

// Create stores a support request.
func (r *SupportPostgres) Create(ctx context.Context, s *model.SupportRequest) (*model.SupportRequest, error) {
	const q = `
		INSERT INTO support_requests (resident_id, content, status)
		VALUES ($1, $2, $3)
		RETURNING id, resident_id, content, status, created_at
	`
	var residentID sql.NullInt64
	if s.ResidentID != nil {
		residentID = sql.NullInt64{Int64: *s.ResidentID, Valid: true}
	}
	return scanSupport(r.db.QueryRowContext(ctx, q, residentID, s.Content, s.Status))
}

// ListRecent returns the newest support requests first.
func (r *SupportPostgres) ListRecent(ctx context.Context, limit int) ([]model.SupportRequest, error) {
	const q = `
		SELECT id, resident_id, content, status, created_at
		FROM support_requests
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.SupportRequest, 0)
	for rows.Next() {
		s, err := scanSupport(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
