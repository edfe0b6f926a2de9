package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"parkgate/internal/model"
	"parkgate/internal/repository"
)

// ResidentPostgres is a PostgreSQL implementation of repository.ResidentRepository.
type ResidentPostgres struct {
	db *sql.DB
}

// NewResidentPostgres creates a new ResidentPostgres repository.
func NewResidentPostgres(db *sql.DB) *ResidentPostgres {
	return &ResidentPostgres{db: db}
}

var _ repository.ResidentRepository = (*ResidentPostgres)(nil)

const residentColumns = `id, full_name, floor, room, national_id, email, phone, status, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanResident(row scanner) (*model.Resident, error) {
	var r model.Resident
	if err := row.Scan(
		&r.ID,
		&r.FullName,
		&r.Floor,
		&r.Room,
		&r.NationalID,
		&r.Email,
		&r.Phone,
		&r.Status,
		&r.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserts a resident and returns the stored row.
func (r *ResidentPostgres) Create(ctx context.Context, res *model.Resident) (*model.Resident, error) {
	const q = `
		INSERT INTO residents (full_name, floor, room, national_id, email, phone, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + residentColumns
	row := r.db.QueryRowContext(ctx, q,
		res.FullName,
		res.Floor,
		res.Room,
		res.NationalID,
		res.Email,
		res.Phone,
		res.Status,
	)
	out, err := scanResident(row)
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// FindByID fetches a single resident.
func (r *ResidentPostgres) FindByID(ctx context.Context, id int64) (*model.Resident, error) {
	const q = `SELECT ` + residentColumns + ` FROM residents WHERE id = $1`
	return scanResident(r.db.QueryRowContext(ctx, q, id))
}

// List returns residents newest first with a total count.
func (r *ResidentPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Resident], error) {
	const qCount = `SELECT COUNT(*) FROM residents`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `SELECT ` + residentColumns + ` FROM residents ORDER BY id DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Resident, 0)
	for rows.Next() {
		res, err := scanResident(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Resident]{Items: items, Total: total}, nil
}

// Update overwrites the mutable columns of a resident.
func (r *ResidentPostgres) Update(ctx context.Context, res *model.Resident) error {
	const q = `
		UPDATE residents
		SET full_name = $1, floor = $2, room = $3, national_id = $4, email = $5, phone = $6, status = $7
		WHERE id = $8
	`
	result, err := r.db.ExecContext(ctx, q,
		res.FullName,
		res.Floor,
		res.Room,
		res.NationalID,
		res.Email,
		res.Phone,
		res.Status,
		res.ID,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindByBackupCode resolves an active backup code to its active resident.
func (r *ResidentPostgres) FindByBackupCode(ctx context.Context, code string) (*model.Resident, error) {
	const q = `
		SELECT r.id, r.full_name, r.floor, r.room, r.national_id, r.email, r.phone, r.status, r.created_at
		FROM resident_backup_codes b
		JOIN residents r ON r.id = b.resident_id
		WHERE b.backup_code = $1 AND b.is_active AND r.status = 'active'
	`
	return scanResident(r.db.QueryRowContext(ctx, q, code))
}

// ReplaceBackupCode rotates a resident's backup code inside one transaction.
func (r *ResidentPostgres) ReplaceBackupCode(ctx context.Context, residentID int64, code string) (*model.BackupCode, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const qDeactivate = `UPDATE resident_backup_codes SET is_active = FALSE WHERE resident_id = $1 AND is_active`
	if _, err := tx.ExecContext(ctx, qDeactivate, residentID); err != nil {
		return nil, err
	}

	const qInsert = `
		INSERT INTO resident_backup_codes (resident_id, backup_code, is_active)
		VALUES ($1, $2, TRUE)
		RETURNING id, resident_id, backup_code, is_active, created_at
	`
	var bc model.BackupCode
	if err := tx.QueryRowContext(ctx, qInsert, residentID, code).Scan(
		&bc.ID,
		&bc.ResidentID,
		&bc.Code,
		&bc.Active,
		&bc.CreatedAt,
	); err != nil {
		return nil, translate(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &bc, nil
}
