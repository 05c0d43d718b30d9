package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS animals (
	id             BIGSERIAL PRIMARY KEY,
	farm_id        BIGINT NOT NULL,
	name           TEXT NOT NULL,
	visual_code    TEXT NOT NULL DEFAULT '',
	category_id    BIGINT,
	breed_id       BIGINT,
	paddock_id     BIGINT,
	batch_id       BIGINT,
	sex            TEXT NOT NULL DEFAULT '',
	birth_date     DATE,
	current_weight DOUBLE PRECISION,
	height         DOUBLE PRECISION,
	current_status TEXT NOT NULL DEFAULT '',
	mother_id      BIGINT,
	father_id      BIGINT,
	observations   TEXT NOT NULL DEFAULT '',
	image          TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS animals_farm_idx ON animals (farm_id);

CREATE TABLE IF NOT EXISTS animal_weights (
	animal_id   BIGINT NOT NULL REFERENCES animals(id) ON DELETE CASCADE,
	weight      DOUBLE PRECISION NOT NULL,
	date        DATE NOT NULL,
	user_id     BIGINT,
	recorded_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS animal_movements (
	id               BIGSERIAL PRIMARY KEY,
	animal_id        BIGINT NOT NULL REFERENCES animals(id) ON DELETE CASCADE,
	movement_type_id BIGINT NOT NULL,
	to_paddock_id    BIGINT NOT NULL,
	date             DATE NOT NULL,
	observations     TEXT NOT NULL DEFAULT '',
	user_id          BIGINT,
	recorded_at      TIMESTAMPTZ NOT NULL
);
`

// Migrate crea las tablas del stub si no existen.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
