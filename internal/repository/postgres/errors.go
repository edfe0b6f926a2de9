package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"parkgate/internal/repository"
)

const uniqueViolation = "23505"

// translate maps driver errors onto repository sentinels.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrConflict
	}
	return err
}
