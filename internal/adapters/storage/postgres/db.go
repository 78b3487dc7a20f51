package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// Open abre un pool a Postgres con el driver pgx (database/sql) envuelto en sqlx
// y asegura que el esquema exista.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// seq conserva el orden de inserción; pet_id no tiene FK porque borrar una
// mascota no debe tocar sus solicitudes.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS pets (
		seq         BIGSERIAL UNIQUE,
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		species     TEXT NOT NULL,
		breed       TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL,
		age         INTEGER NOT NULL DEFAULT 0,
		sex         TEXT NOT NULL DEFAULT '',
		size        TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		image_url   TEXT NOT NULL DEFAULT '',
		date_added  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS adoption_requests (
		seq                  BIGSERIAL UNIQUE,
		id                   TEXT PRIMARY KEY,
		pet_id               TEXT NOT NULL,
		pet_name             TEXT NOT NULL,
		applicant_name       TEXT NOT NULL,
		applicant_email      TEXT NOT NULL DEFAULT '',
		applicant_phone      TEXT NOT NULL DEFAULT '',
		applicant_address    TEXT NOT NULL DEFAULT '',
		applicant_experience TEXT NOT NULL DEFAULT '',
		applicant_reason     TEXT NOT NULL DEFAULT '',
		status               TEXT NOT NULL,
		submitted_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS adoption_requests_pet_id_idx ON adoption_requests (pet_id)`,
}

func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
