// Package database opens the parking PostgreSQL database.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"parkgate/internal/config"
)

var sqlOpen = sql.Open

const connectTimeout = 5 * time.Second

// ErrIncompleteConfig is returned when host, port, user or database name is unset.
var ErrIncompleteConfig = errors.New("database config incomplete")

// BuildPostgresDSN renders c as a postgres:// URL. Sessions are tagged with the
// application name and pinned to the gate's time zone so timestamps read back
// from psql match the daily report.
func BuildPostgresDSN(c config.DatabaseConfig) (string, error) {
	var missing []string
	for _, f := range []struct{ name, v string }{
		{"host", c.Host}, {"port", c.Port}, {"user", c.User}, {"name", c.Name},
	} {
		if f.v == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: missing %v", ErrIncompleteConfig, missing)
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   c.Host + ":" + c.Port,
		Path:   c.Name,
		User:   url.User(c.User),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}

	q := url.Values{}
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	if c.AppName != "" {
		q.Set("application_name", c.AppName)
	}
	if c.TimeZone != "" {
		q.Set("timezone", c.TimeZone)
	}
	q.Set("connect_timeout", strconv.Itoa(int(connectTimeout/time.Second)))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// NewPostgres opens the database through pgx wrapped by otelsql, applies the pool
// limits and pings it.
func NewPostgres(ctx context.Context, c config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := BuildPostgresDSN(c)
	if err != nil {
		return nil, err
	}

	driverName, err := otelsql.Register("pgx",
		otelsql.WithAttributes(
			semconv.DBSystemPostgreSQL,
			semconv.DBName(c.Name),
			attribute.String("db.user", c.User),
		),
		otelsql.WithSQLCommenter(true),
		otelsql.WithSpanOptions(otelsql.SpanOptions{OmitConnResetSession: true, OmitRows: true}),
	)
	if err != nil {
		return nil, fmt.Errorf("register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	applyPool(db, c)

	if err := Ping(ctx, db, connectTimeout); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func applyPool(db *sql.DB, c config.DatabaseConfig) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		idle := c.MaxIdleConns
		if c.MaxOpenConns > 0 && idle > c.MaxOpenConns {
			idle = c.MaxOpenConns
		}
		db.SetMaxIdleConns(idle)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}
}

// Ping checks connectivity within timeout.
func Ping(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	if db == nil {
		return fmt.Errorf("db ping: no database configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	return nil
}
