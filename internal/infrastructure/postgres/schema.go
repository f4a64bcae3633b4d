package postgres

import (
	"context"
)

// schemaStatements DDL idempotente del motor de entregas.
// Las cantidades tienen CHECK >= 0 como última barrera; la validación real ocurre antes de escribir.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS equipment_stock (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL DEFAULT '',
		has_variants       BOOLEAN NOT NULL DEFAULT FALSE,
		quantity_on_hand   BIGINT NOT NULL DEFAULT 0 CHECK (quantity_on_hand >= 0),
		reorder_threshold  BIGINT NOT NULL DEFAULT 0,
		critical_threshold BIGINT NOT NULL DEFAULT 0,
		version            BIGINT NOT NULL DEFAULT 1,
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS equipment_variants (
		equipment_id       TEXT NOT NULL REFERENCES equipment_stock(id) ON DELETE CASCADE,
		variant_id         TEXT NOT NULL,
		label              TEXT NOT NULL DEFAULT '',
		quantity_on_hand   BIGINT NOT NULL DEFAULT 0 CHECK (quantity_on_hand >= 0),
		reorder_threshold  BIGINT NOT NULL DEFAULT 0,
		critical_threshold BIGINT NOT NULL DEFAULT 0,
		PRIMARY KEY (equipment_id, variant_id)
	)`,
	`CREATE TABLE IF NOT EXISTS deliveries (
		id            TEXT PRIMARY KEY,
		worker_id     TEXT NOT NULL DEFAULT '',
		worker_name   TEXT NOT NULL DEFAULT '',
		area          TEXT NOT NULL DEFAULT '',
		position      TEXT NOT NULL DEFAULT '',
		delivery_date TIMESTAMPTZ NOT NULL,
		authorized_by TEXT NOT NULL DEFAULT '',
		notes         TEXT NOT NULL DEFAULT '',
		total_amount  NUMERIC(18,2) NOT NULL DEFAULT 0,
		version       BIGINT NOT NULL DEFAULT 1,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_deliveries_worker_date ON deliveries (worker_id, delivery_date DESC)`,
	`CREATE TABLE IF NOT EXISTS delivery_items (
		delivery_id  TEXT NOT NULL REFERENCES deliveries(id) ON DELETE CASCADE,
		line_no      INT NOT NULL,
		equipment_id TEXT NOT NULL,
		variant_id   TEXT NOT NULL DEFAULT '',
		quantity     BIGINT NOT NULL CHECK (quantity > 0),
		unit_cost    NUMERIC(18,2) NOT NULL DEFAULT 0,
		PRIMARY KEY (delivery_id, line_no)
	)`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
		id            TEXT PRIMARY KEY,
		delivery_id   TEXT NOT NULL,
		equipment_id  TEXT NOT NULL,
		variant_id    TEXT NOT NULL DEFAULT '',
		type          TEXT NOT NULL,
		delta         BIGINT NOT NULL,
		balance_after BIGINT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_by    TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_movements_equipment ON stock_movements (equipment_id, created_at DESC)`,
}

// EnsureSchema crea tablas e índices si no existen. Seguro de ejecutar en cada arranque.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return wrapErr("ensure schema", err)
		}
	}
	return nil
}
