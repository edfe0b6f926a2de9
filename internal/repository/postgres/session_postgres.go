package postgres

import (
	"context"
	"database/sql"
	"time"

	"parkgate/internal/model"
	"parkgate/internal/repository"
)

// GuestSessionPostgres is a PostgreSQL implementation of repository.GuestSessionRepository.
type GuestSessionPostgres struct {
	db *sql.DB
}

// NewGuestSessionPostgres creates a new GuestSessionPostgres repository.
func NewGuestSessionPostgres(db *sql.DB) *GuestSessionPostgres {
	return &GuestSessionPostgres{db: db}
}

var _ repository.GuestSessionRepository = (*GuestSessionPostgres)(nil)

const sessionColumns = `id, plate, ticket_code, checkin_time, checkout_time, fee, status, entry_image_key, exit_image_key`

func scanSession(row scanner) (*model.GuestSession, error) {
	var (
		s        model.GuestSession
		checkout sql.NullTime
		fee      sql.NullInt64
	)
	if err := row.Scan(
		&s.ID,
		&s.Plate,
		&s.TicketCode,
		&s.CheckinTime,
		&checkout,
		&fee,
		&s.Status,
		&s.EntryImageKey,
		&s.ExitImageKey,
	); err != nil {
		return nil, err
	}
	if checkout.Valid {
		t := checkout.Time
		s.CheckoutTime = &t
	}
	if fee.Valid {
		f := fee.Int64
		s.Fee = &f
	}
	return &s, nil
}

// Create opens a guest session.
func (r *GuestSessionPostgres) Create(ctx context.Context, s *model.GuestSession) (*model.GuestSession, error) {
	const q = `
		INSERT INTO guest_sessions (plate, ticket_code, checkin_time, status, entry_image_key)
		VALUES ($1, $2, $3, 'open', $4)
		RETURNING ` + sessionColumns
	out, err := scanSession(r.db.QueryRowContext(ctx, q,
		s.Plate,
		s.TicketCode,
		s.CheckinTime,
		s.EntryImageKey,
	))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// FindOpenByTicket returns the open session holding ticketCode.
func (r *GuestSessionPostgres) FindOpenByTicket(ctx context.Context, ticketCode string) (*model.GuestSession, error) {
	const q = `SELECT ` + sessionColumns + ` FROM guest_sessions WHERE ticket_code = $1 AND status = 'open'`
	return scanSession(r.db.QueryRowContext(ctx, q, ticketCode))
}

// Close settles an open session. The status guard keeps a ticket from being paid twice.
func (r *GuestSessionPostgres) Close(ctx context.Context, id int64, checkoutTime time.Time, fee int64, exitImageKey string) error {
	const q = `
		UPDATE guest_sessions
		SET checkout_time = $1, fee = $2, exit_image_key = $3, status = 'closed'
		WHERE id = $4 AND status = 'open'
	`
	res, err := r.db.ExecContext(ctx, q, checkoutTime, fee, exitImageKey, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Stats counts sessions checked in within [from, to) and sums their fees.
func (r *GuestSessionPostgres) Stats(ctx context.Context, from, to time.Time) (repository.GuestStats, error) {
	const q = `
		SELECT COUNT(*), COALESCE(SUM(fee), 0)
		FROM guest_sessions
		WHERE checkin_time >= $1 AND checkin_time < $2
	`
	var st repository.GuestStats
	if err := r.db.QueryRowContext(ctx, q, from, to).Scan(&st.Count, &st.Revenue); err != nil {
		return repository.GuestStats{}, err
	}
	return st, nil
}

// ListCheckedIn returns sessions checked in within [from, to), oldest first.
func (r *GuestSessionPostgres) ListCheckedIn(ctx context.Context, from, to time.Time) ([]model.GuestSession, error) {
	const q = `
		SELECT ` + sessionColumns + `
		FROM guest_sessions
		WHERE checkin_time >= $1 AND checkin_time < $2
		ORDER BY checkin_time ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

// ListOpen returns sessions still waiting for checkout, oldest first.
func (r *GuestSessionPostgres) ListOpen(ctx context.Context) ([]model.GuestSession, error) {
	const q = `
		SELECT ` + sessionColumns + `
		FROM guest_sessions
		WHERE status = 'open'
		ORDER BY checkin_time ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

func collectSessions(rows *sql.Rows) ([]model.GuestSession, error) {
	defer rows.Close()

	items := make([]model.GuestSession, 0)
	for rows.Next() {
		s, err := scanSession(rows)
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
