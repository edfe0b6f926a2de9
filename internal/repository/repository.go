package repository

import (
	"context"
	"errors"
	"time"

	"parkgate/internal/model"
)

// ErrConflict is returned when a write violates a uniqueness constraint.
var ErrConflict = errors.New("conflicting record")

// ResidentRepository persists residents and their backup codes.
type ResidentRepository interface {
	Create(ctx context.Context, r *model.Resident) (*model.Resident, error)

	// FindByID returns sql.ErrNoRows when the resident does not exist.
	FindByID(ctx context.Context, id int64) (*model.Resident, error)

	List(ctx context.Context, pq PageQuery) (*PageResult[model.Resident], error)

	// Update overwrites every mutable column of r.
	Update(ctx context.Context, r *model.Resident) error

	// FindByBackupCode returns the active resident owning an active code.
	FindByBackupCode(ctx context.Context, code string) (*model.Resident, error)

	// ReplaceBackupCode deactivates the resident's current codes and stores code as the only active one.
	ReplaceBackupCode(ctx context.Context, residentID int64, code string) (*model.BackupCode, error)
}

// GuestSessionRepository persists guest parking sessions.
type GuestSessionRepository interface {
	// Create opens a session. It returns ErrConflict when the ticket code is already open.
	Create(ctx context.Context, s *model.GuestSession) (*model.GuestSession, error)

	FindOpenByTicket(ctx context.Context, ticketCode string) (*model.GuestSession, error)

	// Close marks an open session closed. It returns sql.ErrNoRows when the session was not open.
	Close(ctx context.Context, id int64, checkoutTime time.Time, fee int64, exitImageKey string) error

	// Stats counts sessions checked in within [from, to) and sums their fees.
	Stats(ctx context.Context, from, to time.Time) (GuestStats, error)

	// ListCheckedIn returns sessions checked in within [from, to), oldest first.
	ListCheckedIn(ctx context.Context, from, to time.Time) ([]model.GuestSession, error)

	// ListOpen returns every session still waiting for checkout, oldest first.
	ListOpen(ctx context.Context) ([]model.GuestSession, error)
}

// GuestStats aggregates guest sessions over a period.
type GuestStats struct {
	Count   int
	Revenue int64
}

// ParkingLogRepository persists resident gate events.
type ParkingLogRepository interface {
	Create(ctx context.Context, l *model.ParkingLog) error

	// Count returns the number of events of eventType within [from, to).
	Count(ctx context.Context, eventType string, from, to time.Time) (int, error)
}

// AdminRepository persists operator accounts.
type AdminRepository interface {
	// Create returns ErrConflict when the username is taken.
	Create(ctx context.Context, u *model.AdminUser) (*model.AdminUser, error)
	FindByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	// CreateFirst stores u only while no operator exists. It returns
	// sql.ErrNoRows when the table is already populated.
	CreateFirst(ctx context.Context, u *model.AdminUser) (*model.AdminUser, error)
}

// SupportRepository persists resident support requests.
type SupportRepository interface {
	Create(ctx context.Context, r *model.SupportRequest) (*model.SupportRequest, error)
	ListRecent(ctx context.Context, limit int) ([]model.SupportRequest, error)
}

// TicketAttemptRepository counts wrong ticket codes entered from one source.
type TicketAttemptRepository interface {
	// RecordMiss adds one miss for source and returns its running count.
	RecordMiss(ctx context.Context, source, ticketCode string, at time.Time) (int, error)

	// Clear forgets the misses of source.
	Clear(ctx context.Context, source string) error
}

// NotificationRepository persists operator alerts.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	ListRecent(ctx context.Context, limit int) ([]model.Notification, error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
