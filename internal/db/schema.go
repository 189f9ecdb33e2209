package db

import (
	"context"
	"fmt"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id                 TEXT PRIMARY KEY,
	title              VARCHAR(200) NOT NULL,
	description        VARCHAR(2000) NOT NULL,
	category           TEXT NOT NULL,
	priority           TEXT NOT NULL,
	status             TEXT NOT NULL DEFAULT 'pending',
	assigned_to        VARCHAR(100),
	due_date           TIMESTAMPTZ,
	extracted_entities JSONB NOT NULL DEFAULT '{}'::jsonb,
	suggested_actions  JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(category);
CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks(priority);
CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at);

CREATE TABLE IF NOT EXISTS task_history (
	id          TEXT PRIMARY KEY,
	task_id     TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	action      TEXT NOT NULL,
	old_value   JSONB,
	new_value   JSONB,
	changed_by  TEXT,
	changed_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_task_history_task_id ON task_history(task_id, changed_at DESC);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id                 TEXT PRIMARY KEY,
	title              TEXT NOT NULL,
	description        TEXT NOT NULL,
	category           TEXT NOT NULL,
	priority           TEXT NOT NULL,
	status             TEXT NOT NULL DEFAULT 'pending',
	assigned_to        TEXT,
	due_date           TEXT,
	extracted_entities TEXT NOT NULL DEFAULT '{}',
	suggested_actions  TEXT NOT NULL DEFAULT '[]',
	created_at         TEXT NOT NULL,
	updated_at         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(category);
CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks(priority);
CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at);

CREATE TABLE IF NOT EXISTS task_history (
	id          TEXT PRIMARY KEY,
	task_id     TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	action      TEXT NOT NULL,
	old_value   TEXT,
	new_value   TEXT,
	changed_by  TEXT,
	changed_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_task_history_task_id ON task_history(task_id, changed_at);
`

// Migrate creates the tables if they don't exist.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.ExecContext(ctx, d.Dialect.Schema()); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
