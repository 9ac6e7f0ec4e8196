// Package sqlite is the test and local-development Store backend. It uses
// modernc.org/sqlite, a pure-Go driver, so package tests run without cgo or
// an external Postgres instance.
package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Open creates (or opens) a SQLite database at path and ensures the schema
// exists. Use ":memory:" for ephemeral test databases.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // avoid SQLITE_BUSY across the pure-Go driver's connections
	if err := ensureSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schemaSQL)
	return err
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS messages (
	id                     INTEGER PRIMARY KEY AUTOINCREMENT,
	text                   TEXT NOT NULL,
	text_encrypted         INTEGER NOT NULL DEFAULT 0,
	source                 TEXT NOT NULL,
	split                  TEXT NOT NULL DEFAULT '',
	true_label             TEXT NOT NULL DEFAULT '',
	status                 TEXT NOT NULL,
	created_at             DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	last_model_version_id  INTEGER,
	consumed               INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_messages_source_split ON messages (source, split);
CREATE INDEX IF NOT EXISTS idx_messages_status ON messages (status);
CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages (created_at);

CREATE TABLE IF NOT EXISTS model_versions (
	id                   INTEGER PRIMARY KEY AUTOINCREMENT,
	version              INTEGER NOT NULL,
	train_template       TEXT NOT NULL,
	train_set_size       INTEGER NOT NULL DEFAULT 0,
	gold_included_count  INTEGER NOT NULL DEFAULT 0,
	validation_set_size  INTEGER NOT NULL DEFAULT 0,
	accuracy             REAL NOT NULL DEFAULT 0,
	"precision"          REAL NOT NULL DEFAULT 0,
	recall               REAL NOT NULL DEFAULT 0,
	f1                   REAL NOT NULL DEFAULT 0,
	threshold_allow      REAL NOT NULL DEFAULT 0.30,
	threshold_block      REAL NOT NULL DEFAULT 0.70,
	artifact_path        TEXT NOT NULL,
	created_at           DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	is_active            INTEGER NOT NULL DEFAULT 0
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_model_versions_version ON model_versions (version);

CREATE TABLE IF NOT EXISTS predictions (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	message_id        INTEGER NOT NULL REFERENCES messages (id),
	model_version_id  INTEGER NOT NULL REFERENCES model_versions (id),
	p_spam            REAL NOT NULL,
	decision          TEXT NOT NULL,
	created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_predictions_message_id ON predictions (message_id);

CREATE TABLE IF NOT EXISTS reviews (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	message_id    INTEGER NOT NULL REFERENCES messages (id),
	label         TEXT NOT NULL,
	reviewed_by   TEXT NOT NULL,
	reviewed_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	note          TEXT NOT NULL DEFAULT ''
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_message_id ON reviews (message_id);

CREATE TABLE IF NOT EXISTS system_settings (
	id                          INTEGER PRIMARY KEY CHECK (id = 1),
	active_model_version_id     INTEGER,
	threshold_allow             REAL NOT NULL DEFAULT 0.30,
	threshold_block             REAL NOT NULL DEFAULT 0.70,
	retrain_gold_threshold      INTEGER NOT NULL DEFAULT 100,
	new_gold_since_last_train   INTEGER NOT NULL DEFAULT 0,
	auto_retrain_enabled        INTEGER NOT NULL DEFAULT 1,
	last_retrain_at             DATETIME
);
INSERT OR IGNORE INTO system_settings (id) VALUES (1);
`
