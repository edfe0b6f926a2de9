package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_residents",
		SQL: `CREATE TABLE IF NOT EXISTS residents (
  id          BIGSERIAL   PRIMARY KEY,
  full_name   TEXT        NOT NULL,
  floor       INTEGER     NOT NULL DEFAULT 0,
  room        TEXT        NOT NULL DEFAULT '',
  national_id TEXT        NOT NULL DEFAULT '',
  email       TEXT        NOT NULL DEFAULT '',
  phone       TEXT        NOT NULL DEFAULT '',
  status      TEXT        NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive')),
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_resident_backup_codes",
		SQL: `CREATE TABLE IF NOT EXISTS resident_backup_codes (
  id          BIGSERIAL   PRIMARY KEY,
  resident_id BIGINT      NOT NULL REFERENCES residents (id),
  backup_code TEXT        NOT NULL,
  is_active   BOOLEAN     NOT NULL DEFAULT TRUE,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_backup_codes_active",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS idx_backup_codes_active ON resident_backup_codes (backup_code) WHERE is_active;`,
	},
	{
		Name: "create_table_guest_sessions",
		SQL: `CREATE TABLE IF NOT EXISTS guest_sessions (
  id              BIGSERIAL   PRIMARY KEY,
  plate           TEXT        NOT NULL DEFAULT '',
  ticket_code     TEXT        NOT NULL,
  checkin_time    TIMESTAMPTZ NOT NULL,
  checkout_time   TIMESTAMPTZ,
  fee             BIGINT      CHECK (fee >= 0),
  status          TEXT        NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
  entry_image_key TEXT        NOT NULL DEFAULT '',
  exit_image_key  TEXT        NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_index_guest_sessions_open_ticket",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS idx_guest_sessions_open_ticket ON guest_sessions (ticket_code) WHERE status = 'open';`,
	},
	{
		Name: "create_index_guest_sessions_checkin_time",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_guest_sessions_checkin_time ON guest_sessions (checkin_time);`,
	},
	{
		Name: "create_table_parking_logs",
		SQL: `CREATE TABLE IF NOT EXISTS parking_logs (
  id          BIGSERIAL   PRIMARY KEY,
  event_time  TIMESTAMPTZ NOT NULL,
  event_type  TEXT        NOT NULL CHECK (event_type IN ('resident_in', 'resident_out')),
  user_type   TEXT        NOT NULL DEFAULT 'resident',
  resident_id BIGINT      REFERENCES residents (id),
  plate       TEXT
);`,
	},
	{
		Name: "create_index_parking_logs_event_time",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_parking_logs_event_time ON parking_logs (event_time);`,
	},
	{
		Name: "create_table_admin_users",
		SQL: `CREATE TABLE IF NOT EXISTS admin_users (
  id            BIGSERIAL   PRIMARY KEY,
  username      TEXT        NOT NULL UNIQUE,
  password_hash TEXT        NOT NULL,
  full_name     TEXT        NOT NULL DEFAULT '',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_support_requests",
		SQL: `CREATE TABLE IF NOT EXISTS support_requests (
  id          BIGSERIAL   PRIMARY KEY,
  resident_id BIGINT      REFERENCES residents (id),
  content     TEXT        NOT NULL,
  status      TEXT        NOT NULL DEFAULT 'new',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_guest_ticket_attempts",
		SQL: `CREATE TABLE IF NOT EXISTS guest_ticket_attempts (
  id              BIGSERIAL   PRIMARY KEY,
  source          TEXT        NOT NULL UNIQUE,
  wrong_count     INTEGER     NOT NULL DEFAULT 0,
  last_ticket     TEXT        NOT NULL DEFAULT '',
  last_attempt_at TIMESTAMPTZ NOT NULL,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_admin_notifications",
		SQL: `CREATE TABLE IF NOT EXISTS admin_notifications (
  id         BIGSERIAL   PRIMARY KEY,
  level      TEXT        NOT NULL DEFAULT 'info' CHECK (level IN ('info', 'success', 'warning', 'danger')),
  title      TEXT        NOT NULL,
  message    TEXT        NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
}

// sentinelTable is created by the last step. Every step is idempotent, so an
// older schema missing it is brought forward by rerunning the list.
const sentinelTable = "admin_notifications"

// EnsureMigrated checks if the sentinel table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log zerolog.Logger, dbHost string) error {
	start := time.Now()
	log = log.With().Str("component", "database").Str("db_host", dbHost).Logger()

	log.Info().Str("event", "db_migration_check").Str("status", "starting").Send()

	var exists bool
	query := "SELECT to_regclass('public." + sentinelTable + "') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error().
			Str("event", "db_migration_failed").
			Str("status", "error").
			Str("error_message", fmt.Sprintf("failed to check sentinel table: %v", err)).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Send()
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info().
			Str("event", "db_migration_skip").
			Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
		return nil
	}

	log.Info().Str("event", "db_migration_start").Str("status", "in_progress").Send()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().
				Str("event", "db_migration_failed").
				Str("status", "error").
				Str("migration_step", step.Name).
				Str("error_message", err.Error()).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Send()
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info().
			Str("event", "db_migration_step").
			Str("status", "success").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Send()
	}

	log.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Send()

	return nil
}
