package postgres

import (
	"context"
	"database/sql"
	"time"

	"parkgate/internal/model"
	"parkgate/internal/repository"
)

// ParkingLogPostgres is a PostgreSQL implementation of repository.ParkingLogRepository.
type ParkingLogPostgres struct {
	db *sql.DB
}

// NewParkingLogPostgres creates a new ParkingLogPostgres repository.
func NewParkingLogPostgres(db *sql.DB) *ParkingLogPostgres {
	return &ParkingLogPostgres{db: db}
}

var _ repository.ParkingLogRepository = (*ParkingLogPostgres)(nil)

// Create appends a gate event.
func (r *ParkingLogPostgres) Create(ctx context.Context, l *model.ParkingLog) error {
	const q = `
		INSERT INTO parking_logs (event_time, event_type, user_type, resident_id, plate)
		VALUES ($1, $2, $3, $4, $5)
	`
	var plate sql.NullString
	if l.Plate != "" {
		plate = sql.NullString{String: l.Plate, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, q, l.EventTime, l.EventType, l.UserType, l.ResidentID, plate)
	return err
}

// Count returns the number of events of eventType within [from, to).
func (r *ParkingLogPostgres) Count(ctx context.Context, eventType string, from, to time.Time) (int, error) {
	const q = `
		SELECT COUNT(*)
		FROM parking_logs
		WHERE event_type = $1 AND event_time >= $2 AND event_time < $3
	`
	var n int
	if err := r.db.QueryRowContext(ctx, q, eventType, from, to).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
