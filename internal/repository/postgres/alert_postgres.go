package postgres

import (
	"context"
	"database/sql"
	"time"

	"parkgate/internal/model"
	"parkgate/internal/repository"
)

// TicketAttemptPostgres is a PostgreSQL implementation of repository.TicketAttemptRepository.
type TicketAttemptPostgres struct {
	db *sql.DB
}

// NewTicketAttemptPostgres creates a new TicketAttemptPostgres repository.
func NewTicketAttemptPostgres(db *sql.DB) *TicketAttemptPostgres {
	return &TicketAttemptPostgres{db: db}
}

var _ repository.TicketAttemptRepository = (*TicketAttemptPostgres)(nil)

// RecordMiss upserts the counter so concurrent misses from one source never lose a count.
func (r *TicketAttemptPostgres) RecordMiss(ctx context.Context, source, ticketCode string, at time.Time) (int, error) {
	const q = `
		INSERT INTO guest_ticket_attempts (source, wrong_count, last_ticket, last_attempt_at)
		VALUES ($1, 1, $2, $3)
		ON CONFLICT (source) DO UPDATE
		SET wrong_count = guest_ticket_attempts.wrong_count + 1,
		    last_ticket = EXCLUDED.last_ticket,
		    last_attempt_at = EXCLUDED.last_attempt_at
		RETURNING wrong_count
	`
	var n int
	if err := r.db.QueryRowContext(ctx, q, source, ticketCode, at).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Clear deletes the counter of source. Clearing an unknown source is not an error.
func (r *TicketAttemptPostgres) Clear(ctx context.Context, source string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM guest_ticket_attempts WHERE source = $1`, source)
	return err
}

// NotificationPostgres is a PostgreSQL implementation of repository.NotificationRepository.
type NotificationPostgres struct {
	db *sql.DB
}

// NewNotificationPostgres creates a new NotificationPostgres repository.
func NewNotificationPostgres(db *sql.DB) *NotificationPostgres {
	return &NotificationPostgres{db: db}
}

var _ repository.NotificationRepository = (*NotificationPostgres)(nil)

func scanNotification(row scanner) (*model.Notification, error) {
	var n model.Notification
	if err := row.Scan(&n.ID, &n.Level, &n.Title, &n.Message, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create stores a notification.
func (r *NotificationPostgres) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	const q = `
		INSERT INTO admin_notifications (level, title, message)
		VALUES ($1, $2, $3)
		RETURNING id, level, title, message, created_at
	`
	return scanNotification(r.db.QueryRowContext(ctx, q, n.Level, n.Title, n.Message))
}

// ListRecent returns the newest notifications first.
func (r *NotificationPostgres) ListRecent(ctx context.Context, limit int) ([]model.Notification, error) {
	const q = `
		SELECT id, level, title, message, created_at
		FROM admin_notifications
		ORDER BY id DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
