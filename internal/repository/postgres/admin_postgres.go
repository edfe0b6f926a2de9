package postgres

import (
	"context"
	"database/sql"

	"parkgate/internal/model"
	"parkgate/internal/repository"
)

// AdminPostgres is a PostgreSQL implementation of repository.AdminRepository.
type AdminPostgres struct {
	db *sql.DB
}

// NewAdminPostgres creates a new AdminPostgres repository.
func NewAdminPostgres(db *sql.DB) *AdminPostgres {
	return &AdminPostgres{db: db}
}

var _ repository.AdminRepository = (*AdminPostgres)(nil)

// Create stores an operator account.
func (r *AdminPostgres) Create(ctx context.Context, u *model.AdminUser) (*model.AdminUser, error) {
	const q = `
		INSERT INTO admin_users (username, password_hash, full_name)
		VALUES ($1, $2, $3)
		RETURNING id, username, password_hash, full_name, created_at
	`
	var out model.AdminUser
	if err := r.db.QueryRowContext(ctx, q, u.Username, u.PasswordHash, u.FullName).Scan(
		&out.ID,
		&out.Username,
		&out.PasswordHash,
		&out.FullName,
		&out.CreatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// CreateFirst inserts the bootstrap operator. The table lock serializes
// concurrent installs so only one of them sees an empty table.
func (r *AdminPostgres) CreateFirst(ctx context.Context, u *model.AdminUser) (*model.AdminUser, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `LOCK TABLE admin_users IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO admin_users (username, password_hash, full_name)
		SELECT $1, $2, $3
		WHERE NOT EXISTS (SELECT 1 FROM admin_users)
		RETURNING id, username, password_hash, full_name, created_at
	`
	var out model.AdminUser
	if err := tx.QueryRowContext(ctx, q, u.Username, u.PasswordHash, u.FullName).Scan(
		&out.ID,
		&out.Username,
		&out.PasswordHash,
		&out.FullName,
		&out.CreatedAt,
	); err != nil {
		return nil, translate(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByUsername fetches an operator account.
func (r *AdminPostgres) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	const q = `SELECT id, username, password_hash, full_name, created_at FROM admin_users WHERE username = $1`
	var u model.AdminUser
	if err := r.db.QueryRowContext(ctx, q, username).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.FullName,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
